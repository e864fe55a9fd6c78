package insight

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vendorops/insights/application/port/inbound"
	"github.com/vendorops/insights/application/port/outbound"
	"github.com/vendorops/insights/domain"
	"github.com/vendorops/insights/domain/entity"
	"github.com/vendorops/insights/domain/valueobject"
)

const tenant = "tenant-a"

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	uc          *InsightUseCase
	products    *MockProductRepository
	competitors *MockCompetitorRepository
	inventory   *MockInventoryRepository
	locker      *MockEntityLocker
	store       *memoryStore
}

func newFixture(concurrency int) *fixture {
	f := &fixture{
		products:    new(MockProductRepository),
		competitors: new(MockCompetitorRepository),
		inventory:   new(MockInventoryRepository),
		locker:      new(MockEntityLocker),
		store:       newMemoryStore(),
	}
	f.uc = newInsightUseCase(Dependencies{
		Products:    f.products,
		Competitors: f.competitors,
		Inventory:   f.inventory,
		UnitOfWork:  f.store,
		Locker:      f.locker,
		Logger:      testLogger(),
	}, Options{
		MaxConcurrency: concurrency,
		Now:            func() time.Time { return fixedNow },
	})
	return f
}

// stockedProduct registers a product with enough sales and competitor data to
// be admitted without any rule firing.
func (f *fixture) stockedProduct(id string) {
	f.products.On("FindByID", mock.Anything, tenant, id).Return(&entity.Product{
		ID: id, TenantID: tenant, SKU: "SKU-" + id, Price: 10, BaseCost: 5,
		TargetMarginLow: 20, TargetMarginHigh: 60,
	}, nil)
	f.products.On("CountSales", mock.Anything, tenant, id, mock.Anything, mock.Anything).Return(60, nil)
	f.competitors.On("ListPrices", mock.Anything, tenant, id, mock.Anything, mock.Anything).Return([]float64{9, 10, 11}, nil)
}

func TestUnauthorizedWithoutTenant(t *testing.T) {
	f := newFixture(1)
	ctx := context.Background()

	_, err := f.uc.ListPricingInsights(ctx, "", 30)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = f.uc.ListInventoryInsights(ctx, "", 30)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = f.uc.ApplyPrice(ctx, "", inbound.ApplyPriceRequest{ProductID: "p1", NewPrice: 10})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = f.uc.CreatePurchaseOrder(ctx, "", inbound.CreatePurchaseOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = f.uc.ImportCompetitorPrices(ctx, "", inbound.ImportCompetitorPricesRequest{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = f.uc.ListPriceHistory(ctx, "", "p1", 10)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	f.products.AssertNotCalled(t, "ListIDs", mock.Anything, mock.Anything)
	assert.Zero(t, f.store.commits)
}

func TestListPricingInsights_SkipsNoSignalAndMissingEntities(t *testing.T) {
	f := newFixture(2)
	f.products.On("ListIDs", mock.Anything, tenant).Return([]string{"p1", "p2", "p3"}, nil)
	f.stockedProduct("p1")

	f.products.On("FindByID", mock.Anything, tenant, "p2").Return(&entity.Product{ID: "p2", TenantID: tenant, Price: 8, BaseCost: 3}, nil)
	f.products.On("CountSales", mock.Anything, tenant, "p2", mock.Anything, mock.Anything).Return(0, nil)
	f.competitors.On("ListPrices", mock.Anything, tenant, "p2", mock.Anything, mock.Anything).Return([]float64{}, nil)

	f.products.On("FindByID", mock.Anything, tenant, "p3").Return(nil, domain.ErrEntityNotFound)

	recs, err := f.uc.ListPricingInsights(context.Background(), tenant, 30)

	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "p1", recs[0].EntityID)
	assert.Equal(t, domain.InsightDomainPricing, recs[0].Domain)
	assert.Equal(t, 80, recs[0].Confidence)
	assert.Equal(t, 10.0, recs[0].ProposedValue)
	require.NotNil(t, recs[0].Pricing)
	assert.False(t, recs[0].Pricing.ApplyPrice)
}

func TestListPricingInsights_FiltersLowConfidence(t *testing.T) {
	f := newFixture(1)
	f.products.On("ListIDs", mock.Anything, tenant).Return([]string{"p1"}, nil)
	f.products.On("FindByID", mock.Anything, tenant, "p1").Return(&entity.Product{ID: "p1", TenantID: tenant, Price: 10, BaseCost: 5}, nil)
	f.products.On("CountSales", mock.Anything, tenant, "p1", mock.Anything, mock.Anything).Return(3, nil)
	f.competitors.On("ListPrices", mock.Anything, tenant, "p1", mock.Anything, mock.Anything).Return(nil, nil)

	recs, err := f.uc.ListPricingInsights(context.Background(), tenant, 7)

	require.NoError(t, err)
	assert.Empty(t, recs, "60 - 10 for missing competitors is not above the admission threshold")
	assert.NotNil(t, recs)
}

func TestListPricingInsights_KeepsRepositoryOrder(t *testing.T) {
	f := newFixture(3)
	ids := []string{"p5", "p1", "p4", "p2", "p3", "p9", "p7"}
	f.products.On("ListIDs", mock.Anything, tenant).Return(ids, nil)
	for _, id := range ids {
		f.stockedProduct(id)
	}

	recs, err := f.uc.ListPricingInsights(context.Background(), tenant, 90)

	require.NoError(t, err)
	got := make([]string, 0, len(recs))
	for _, r := range recs {
		got = append(got, r.EntityID)
	}
	assert.Equal(t, ids, got)
}

func TestListPricingInsights_UsesWindowBounds(t *testing.T) {
	f := newFixture(1)
	since := fixedNow.AddDate(0, 0, -7)
	f.products.On("ListIDs", mock.Anything, tenant).Return([]string{"p1"}, nil)
	f.products.On("FindByID", mock.Anything, tenant, "p1").Return(&entity.Product{ID: "p1", TenantID: tenant, Price: 10, BaseCost: 5}, nil)
	f.products.On("CountSales", mock.Anything, tenant, "p1", since, fixedNow).Return(60, nil).Once()
	f.competitors.On("ListPrices", mock.Anything, tenant, "p1", since, fixedNow).Return([]float64{10}, nil).Once()

	_, err := f.uc.ListPricingInsights(context.Background(), tenant, 7)

	require.NoError(t, err)
	f.products.AssertExpectations(t)
	f.competitors.AssertExpectations(t)
}

func TestListPricingInsights_RejectsUnsupportedWindow(t *testing.T) {
	f := newFixture(1)

	_, err := f.uc.ListPricingInsights(context.Background(), tenant, 14)

	assert.ErrorIs(t, err, valueobject.ErrInvalidWindow)
	f.products.AssertNotCalled(t, "ListIDs", mock.Anything, mock.Anything)
}

func TestListPricingInsights_PropagatesRepositoryFailure(t *testing.T) {
	f := newFixture(2)
	boom := errors.New("connection reset")
	f.products.On("ListIDs", mock.Anything, tenant).Return([]string{"p1"}, nil)
	f.products.On("FindByID", mock.Anything, tenant, "p1").Return(&entity.Product{ID: "p1", TenantID: tenant, Price: 10, BaseCost: 5}, nil)
	f.products.On("CountSales", mock.Anything, tenant, "p1", mock.Anything, mock.Anything).Return(0, boom)

	recs, err := f.uc.ListPricingInsights(context.Background(), tenant, 30)

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, recs)
}

func TestListInventoryInsights_ReorderScenario(t *testing.T) {
	f := newFixture(2)
	f.inventory.On("ListIDs", mock.Anything, tenant).Return([]string{"i1"}, nil)
	f.inventory.On("FindByID", mock.Anything, tenant, "i1").Return(&entity.InventoryItem{
		ID: "i1", TenantID: tenant, QuantityOnHand: 5, ReorderPoint: 10, LeadTimeDays: 7, LastPaidUnitCost: 1.5,
	}, nil)
	// 14 units over a 7 day window is a run rate of 2/day
	f.inventory.On("ConsumedUnits", mock.Anything, tenant, "i1", mock.Anything, mock.Anything).Return(14.0, nil)
	f.inventory.On("ListOffers", mock.Anything, tenant, "i1").Return([]entity.SupplierOffer{}, nil)

	recs, err := f.uc.ListInventoryInsights(context.Background(), tenant, 7)

	require.NoError(t, err)
	require.Len(t, recs, 1)
	rec := recs[0]
	assert.Equal(t, 16.0, rec.ProposedValue)
	assert.Equal(t, 90, rec.Confidence)
	assert.InDelta(t, 64.29, rec.Metric, 0.001)
	assert.Contains(t, rec.Rationale, "below reorder point")
	require.NotNil(t, rec.Inventory)
	assert.True(t, rec.Inventory.CreatePO)
	assert.Equal(t, 24.0, rec.Inventory.EstimatedCost)
}

func TestAssembleInventorySignal_PicksCheapestValidOffer(t *testing.T) {
	f := newFixture(1)
	expired := fixedNow.AddDate(0, 0, -1)
	f.inventory.On("FindByID", mock.Anything, tenant, "i1").Return(&entity.InventoryItem{
		ID: "i1", TenantID: tenant, QuantityOnHand: 30, LeadTimeDays: 5, LastPaidUnitCost: 4,
	}, nil)
	f.inventory.On("ConsumedUnits", mock.Anything, tenant, "i1", mock.Anything, mock.Anything).Return(0.0, nil)
	f.inventory.On("ListOffers", mock.Anything, tenant, "i1").Return([]entity.SupplierOffer{
		{ID: "old", UnitCost: 1, ValidFrom: fixedNow.AddDate(0, -2, 0), ValidTo: &expired},
		{ID: "future", UnitCost: 1, ValidFrom: fixedNow.AddDate(0, 0, 3)},
		{ID: "plain", UnitCost: 3.2, PackSize: 6, ValidFrom: fixedNow.AddDate(0, -1, 0)},
		{ID: "bulk", UnitCost: 3.5, BulkBreakQty: 100, BulkBreakCost: 3.0, ValidFrom: fixedNow.AddDate(0, -1, 0)},
	}, nil)

	sig, err := f.uc.AssembleInventorySignal(context.Background(), tenant, "i1", 30)

	require.NoError(t, err)
	require.NotNil(t, sig.BestOffer)
	assert.Equal(t, "bulk", sig.BestOffer.OfferID)
	assert.Equal(t, 1.0, sig.DailyRunRate, "no consumption falls back to quantity/30")
}

func TestAssembleInventorySignal_UntrackedItemHasNoSignal(t *testing.T) {
	f := newFixture(1)
	f.inventory.On("FindByID", mock.Anything, tenant, "i1").Return(&entity.InventoryItem{ID: "i1", TenantID: tenant}, nil)
	f.inventory.On("ConsumedUnits", mock.Anything, tenant, "i1", mock.Anything, mock.Anything).Return(0.0, nil)
	f.inventory.On("ListOffers", mock.Anything, tenant, "i1").Return(nil, nil)

	_, err := f.uc.AssembleInventorySignal(context.Background(), tenant, "i1", 30)

	assert.ErrorIs(t, err, domain.ErrNoSignal)
}

func TestAssemblePricingSignal_ForeignProductIsNotFound(t *testing.T) {
	f := newFixture(1)
	f.products.On("FindByID", mock.Anything, tenant, "p1").Return(&entity.Product{ID: "p1", TenantID: "tenant-b", Price: 10}, nil)

	_, err := f.uc.AssemblePricingSignal(context.Background(), tenant, "p1", 30)

	assert.ErrorIs(t, err, domain.ErrEntityNotFound)
}

func TestApplyPrice_WritesPriceAndAudit(t *testing.T) {
	f := newFixture(1)
	f.store.prices[tenant+"/p1"] = storedPrice{price: 10, version: 3}
	f.locker.On("Acquire", mock.Anything, "price:tenant-a:p1", defaultLockTTL).Return(nil)

	resp, err := f.uc.ApplyPrice(context.Background(), tenant, inbound.ApplyPriceRequest{ProductID: "p1", NewPrice: 10.999, Reason: "rule 1"})

	require.NoError(t, err)
	assert.Equal(t, 10.0, resp.Previous)
	assert.Equal(t, 11.0, resp.New)
	assert.Equal(t, storedPrice{price: 11, version: 4}, f.store.prices[tenant+"/p1"])
	require.Len(t, f.store.audit, 1)
	entry := f.store.audit[0]
	assert.Equal(t, domain.ActorEngine, entry.Actor)
	assert.Equal(t, "rule 1", entry.Reason)
	assert.Equal(t, resp.AuditID, entry.ID)
	assert.Equal(t, fixedNow, entry.CreatedAt)
	assert.Equal(t, int32(1), f.locker.released.Load())
}

func TestApplyPrice_UnknownProductWritesNoAudit(t *testing.T) {
	f := newFixture(1)
	f.locker.On("Acquire", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := f.uc.ApplyPrice(context.Background(), tenant, inbound.ApplyPriceRequest{ProductID: "missing", NewPrice: 12})

	assert.ErrorIs(t, err, domain.ErrEntityNotFound)
	assert.Empty(t, f.store.audit)
	assert.Equal(t, int32(1), f.locker.released.Load())
}

func TestApplyPrice_AuditFailureRollsBackPrice(t *testing.T) {
	f := newFixture(1)
	f.store.prices[tenant+"/p1"] = storedPrice{price: 10, version: 1}
	f.store.failOn = "audit"
	f.locker.On("Acquire", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := f.uc.ApplyPrice(context.Background(), tenant, inbound.ApplyPriceRequest{ProductID: "p1", NewPrice: 12})

	assert.ErrorIs(t, err, errStoreUnavailable)
	assert.Equal(t, storedPrice{price: 10, version: 1}, f.store.prices[tenant+"/p1"])
	assert.Empty(t, f.store.audit)
}

func TestApplyPrice_RejectsNonPositivePrice(t *testing.T) {
	// 0.004 rounds to 0.00 cents and must be rejected like zero
	for _, price := range []float64{0, -1, 0.004} {
		t.Run(fmt.Sprintf("%v", price), func(t *testing.T) {
			f := newFixture(1)
			f.store.prices[tenant+"/p1"] = storedPrice{price: 10, version: 1}

			_, err := f.uc.ApplyPrice(context.Background(), tenant, inbound.ApplyPriceRequest{ProductID: "p1", NewPrice: price})

			assert.ErrorIs(t, err, domain.ErrInvalidPrice)
			f.locker.AssertNotCalled(t, "Acquire", mock.Anything, mock.Anything, mock.Anything)
			assert.Equal(t, 10.0, f.store.prices[tenant+"/p1"].price)
			assert.Empty(t, f.store.audit)
		})
	}
}

func TestApplyPrice_LockNotAcquired(t *testing.T) {
	f := newFixture(1)
	f.store.prices[tenant+"/p1"] = storedPrice{price: 10, version: 1}
	f.locker.On("Acquire", mock.Anything, mock.Anything, mock.Anything).Return(outbound.ErrLockNotAcquired)

	_, err := f.uc.ApplyPrice(context.Background(), tenant, inbound.ApplyPriceRequest{ProductID: "p1", NewPrice: 12})

	assert.ErrorIs(t, err, outbound.ErrLockNotAcquired)
	assert.Zero(t, f.store.commits)
}

func TestApplyPrice_ConcurrentAppliesChainAuditTrail(t *testing.T) {
	f := newFixture(1)
	f.store.prices[tenant+"/p1"] = storedPrice{price: 10, version: 0}
	f.locker.On("Acquire", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.uc.ApplyPrice(context.Background(), tenant, inbound.ApplyPriceRequest{ProductID: "p1", NewPrice: 10 + float64(i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	require.Len(t, f.store.audit, 20)
	previous := 10.0
	for _, entry := range f.store.audit {
		assert.Equal(t, previous, entry.PreviousPrice)
		previous = entry.NewPrice
	}
	assert.Equal(t, previous, f.store.prices[tenant+"/p1"].price)
	assert.Equal(t, int64(20), f.store.prices[tenant+"/p1"].version)
}

func TestCreatePurchaseOrder_TotalsLines(t *testing.T) {
	f := newFixture(1)
	f.inventory.On("OwnedIDs", mock.Anything, tenant, []string{"i1", "i2"}).Return(map[string]bool{"i1": true, "i2": true}, nil)

	resp, err := f.uc.CreatePurchaseOrder(context.Background(), tenant, inbound.CreatePurchaseOrderRequest{
		Lines: []inbound.PurchaseOrderLineRequest{
			{ItemID: "i1", Quantity: 10, UnitCostEstimate: 2.5},
			{ItemID: "i2", Quantity: 4, UnitCostEstimate: 1.0},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 29.0, resp.TotalCost)
	assert.Equal(t, 2, resp.LineCount)
	assert.Equal(t, "draft", resp.Status)
	require.Len(t, f.store.orders, 1)
	order := f.store.orders[0]
	assert.Equal(t, resp.OrderID, order.ID)
	assert.Equal(t, domain.PurchaseOrderStatusDraft, order.Status)
	assert.Len(t, order.Lines, 2)
}

func TestCreatePurchaseOrder_IsNotIdempotent(t *testing.T) {
	f := newFixture(1)
	f.inventory.On("OwnedIDs", mock.Anything, tenant, []string{"i1"}).Return(map[string]bool{"i1": true}, nil)
	req := inbound.CreatePurchaseOrderRequest{Lines: []inbound.PurchaseOrderLineRequest{{ItemID: "i1", Quantity: 1, UnitCostEstimate: 1}}}

	first, err := f.uc.CreatePurchaseOrder(context.Background(), tenant, req)
	require.NoError(t, err)
	second, err := f.uc.CreatePurchaseOrder(context.Background(), tenant, req)
	require.NoError(t, err)

	assert.NotEqual(t, first.OrderID, second.OrderID)
	assert.Len(t, f.store.orders, 2)
}

func TestCreatePurchaseOrder_InvalidLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []inbound.PurchaseOrderLineRequest
	}{
		{name: "no lines"},
		{name: "zero quantity", lines: []inbound.PurchaseOrderLineRequest{{ItemID: "i1", Quantity: 0, UnitCostEstimate: 1}}},
		{name: "negative cost", lines: []inbound.PurchaseOrderLineRequest{
			{ItemID: "i1", Quantity: 1, UnitCostEstimate: 1},
			{ItemID: "i2", Quantity: 2, UnitCostEstimate: -3},
		}},
		{name: "missing item", lines: []inbound.PurchaseOrderLineRequest{{Quantity: 1, UnitCostEstimate: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(1)

			_, err := f.uc.CreatePurchaseOrder(context.Background(), tenant, inbound.CreatePurchaseOrderRequest{Lines: tt.lines})

			assert.ErrorIs(t, err, domain.ErrInvalidLine)
			assert.Empty(t, f.store.orders)
			f.inventory.AssertNotCalled(t, "OwnedIDs", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCreatePurchaseOrder_ForeignItemIsNotFound(t *testing.T) {
	f := newFixture(1)
	f.inventory.On("OwnedIDs", mock.Anything, tenant, []string{"i1", "other"}).Return(map[string]bool{"i1": true}, nil)

	_, err := f.uc.CreatePurchaseOrder(context.Background(), tenant, inbound.CreatePurchaseOrderRequest{
		Lines: []inbound.PurchaseOrderLineRequest{
			{ItemID: "i1", Quantity: 1, UnitCostEstimate: 1},
			{ItemID: "other", Quantity: 1, UnitCostEstimate: 1},
		},
	})

	assert.ErrorIs(t, err, domain.ErrEntityNotFound)
	assert.Empty(t, f.store.orders)
}

func TestCreatePurchaseOrder_StoreFailureLeavesNoDraft(t *testing.T) {
	f := newFixture(1)
	f.store.failOn = "orders"
	f.inventory.On("OwnedIDs", mock.Anything, tenant, []string{"i1"}).Return(map[string]bool{"i1": true}, nil)

	_, err := f.uc.CreatePurchaseOrder(context.Background(), tenant, inbound.CreatePurchaseOrderRequest{
		Lines: []inbound.PurchaseOrderLineRequest{{ItemID: "i1", Quantity: 3, UnitCostEstimate: 2}},
	})

	assert.ErrorIs(t, err, errStoreUnavailable)
	assert.Empty(t, f.store.orders)
}

func TestImportCompetitorPrices_MatchesSKUsCaseInsensitively(t *testing.T) {
	f := newFixture(1)
	observedAt := fixedNow.AddDate(0, 0, -2)
	f.products.On("MatchSKUs", mock.Anything, tenant, []string{"ABC-1", "XYZ-9", "DEF-2"}).
		Return(map[string]string{"ABC-1": "p1", "DEF-2": "p2"}, nil)
	f.competitors.On("Upsert", mock.Anything, tenant, mock.MatchedBy(func(obs []domain.CompetitorObservation) bool {
		return len(obs) == 2 &&
			obs[0].ProductID == "p1" && obs[0].Competitor == "MegaMart" && obs[0].ObservedAt.Equal(observedAt) &&
			obs[1].ProductID == "p1" && obs[1].ObservedAt.Equal(fixedNow)
	})).Return(2, nil)

	resp, err := f.uc.ImportCompetitorPrices(context.Background(), tenant, inbound.ImportCompetitorPricesRequest{
		Observations: []inbound.CompetitorObservationRequest{
			{SKU: " abc-1 ", Competitor: "MegaMart ", Price: 11.5, ObservedAt: observedAt},
			{SKU: "xyz-9", Competitor: "MegaMart", Price: 4},
			{SKU: "ABC-1", Competitor: "CornerShop", Price: 12},
			{SKU: "def-2", Competitor: "MegaMart", Price: 0},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Matched)
	assert.Equal(t, 2, resp.Unmatched)
	assert.Equal(t, 2, resp.Written)
	assert.Equal(t, []string{"xyz-9", "def-2"}, resp.UnmatchedSKUs)
}

func TestImportCompetitorPrices_NothingMatchedSkipsUpsert(t *testing.T) {
	f := newFixture(1)
	f.products.On("MatchSKUs", mock.Anything, tenant, []string{"NOPE"}).Return(map[string]string{}, nil)

	resp, err := f.uc.ImportCompetitorPrices(context.Background(), tenant, inbound.ImportCompetitorPricesRequest{
		Observations: []inbound.CompetitorObservationRequest{{SKU: "nope", Competitor: "A", Price: 3}},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Unmatched)
	f.competitors.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestListPriceHistory_ClampsLimit(t *testing.T) {
	tests := []struct {
		requested int
		expected  int
	}{
		{0, DefaultHistoryLimit},
		{25, 25},
		{1000, MaxHistoryLimit},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.requested), func(t *testing.T) {
			f := newFixture(1)
			f.products.On("FindByID", mock.Anything, tenant, "p1").Return(&entity.Product{ID: "p1", TenantID: tenant}, nil)
			f.products.On("ListPriceHistory", mock.Anything, tenant, "p1", tt.expected).Return([]domain.AuditEntry{{ID: "a1"}}, nil)

			entries, err := f.uc.ListPriceHistory(context.Background(), tenant, "p1", tt.requested)

			require.NoError(t, err)
			assert.Len(t, entries, 1)
			f.products.AssertExpectations(t)
		})
	}
}

func TestListPriceHistory_UnknownProduct(t *testing.T) {
	f := newFixture(1)
	f.products.On("FindByID", mock.Anything, tenant, "p1").Return(nil, domain.ErrEntityNotFound)

	_, err := f.uc.ListPriceHistory(context.Background(), tenant, "p1", 10)

	assert.ErrorIs(t, err, domain.ErrEntityNotFound)
	f.products.AssertNotCalled(t, "ListPriceHistory", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
