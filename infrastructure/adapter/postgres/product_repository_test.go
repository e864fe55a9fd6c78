package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendorops/insights/domain"
)

var productColumns = []string{
	"id", "tenant_id", "sku", "name", "price", "base_cost", "target_margin_low", "target_margin_high",
	"min_price", "max_price", "price_version", "updated_at",
}

func TestProductRepository_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM products")).WithArgs("t1", "p1").
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow("p1", "t1", "SKU-1", "Widget", 10.0, 5.0, 20.0, 40.0, nil, 14.0, int64(2), now))

	product, err := NewProductRepositoryAdapter(db).FindByID(context.Background(), "t1", "p1")

	require.NoError(t, err)
	assert.Equal(t, "SKU-1", product.SKU)
	assert.Nil(t, product.MinPrice)
	require.NotNil(t, product.MaxPrice)
	assert.Equal(t, 14.0, *product.MaxPrice)
	assert.Equal(t, int64(2), product.PriceVersion)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_FindByIDScopedToTenant(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM products")).WithArgs("t2", "p1").
		WillReturnRows(sqlmock.NewRows(productColumns))

	_, err = NewProductRepositoryAdapter(db).FindByID(context.Background(), "t2", "p1")

	assert.ErrorIs(t, err, domain.ErrEntityNotFound)
}

func TestProductRepository_CountSales(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	until := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	since := until.AddDate(0, 0, -30)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sales")).WithArgs("t1", "p1", since, until).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(int64(42)))

	units, err := NewProductRepositoryAdapter(db).CountSales(context.Background(), "t1", "p1", since, until)

	require.NoError(t, err)
	assert.Equal(t, 42, units)
}

func TestProductRepository_MatchSKUs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("upper(btrim(sku)) = ANY($2)")).WithArgs("t1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"sku", "id"}).AddRow("ABC-1", "p1"))

	matched, err := NewProductRepositoryAdapter(db).MatchSKUs(context.Background(), "t1", []string{"ABC-1", "NOPE"})

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"ABC-1": "p1"}, matched)
}

func TestProductRepository_ListPriceHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM price_audit")).WithArgs("t1", "p1", 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "product_id", "previous_price", "new_price", "actor", "reason", "created_at"}).
			AddRow("a2", "t1", "p1", 11.0, 12.0, "engine", "", now).
			AddRow("a1", "t1", "p1", 10.0, 11.0, "human", "manual", now.Add(-time.Hour)))

	entries, err := NewProductRepositoryAdapter(db).ListPriceHistory(context.Background(), "t1", "p1", 2)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.ActorEngine, entries[0].Actor)
	assert.Equal(t, "manual", entries[1].Reason)
}

func TestCompetitorPriceRepository_UpsertInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	observed := time.Date(2026, 2, 27, 15, 30, 0, 0, time.UTC)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO competitor_prices"))
	prep.ExpectExec().WithArgs("t1", "p1", "MegaMart", 11.5, "2026-02-27", observed).WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs("t1", "p2", "MegaMart", 4.0, "2026-02-27", observed).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	written, err := NewCompetitorPriceRepositoryAdapter(db).Upsert(context.Background(), "t1", []domain.CompetitorObservation{
		{ProductID: "p1", Competitor: "MegaMart", Price: 11.5, ObservedAt: observed},
		{ProductID: "p2", Competitor: "MegaMart", Price: 4, ObservedAt: observed},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, written)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryRepository_ListOffersReadsOpenEndedValidity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 6, 0)

	mock.ExpectQuery(regexp.QuoteMeta("FROM supplier_offers")).WithArgs("t1", "i1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "item_id", "supplier_name", "unit_cost", "pack_size", "bulk_break_qty", "bulk_break_cost", "valid_from", "valid_to"}).
			AddRow("o1", "i1", "Acme", 2.5, int64(12), int64(0), 0.0, from, nil).
			AddRow("o2", "i1", "Bolt", 2.0, int64(1), int64(100), 1.8, from, to))

	offers, err := NewInventoryRepositoryAdapter(db).ListOffers(context.Background(), "t1", "i1")

	require.NoError(t, err)
	require.Len(t, offers, 2)
	assert.Nil(t, offers[0].ValidTo)
	assert.Equal(t, 12, offers[0].PackSize)
	require.NotNil(t, offers[1].ValidTo)
	assert.Equal(t, to, *offers[1].ValidTo)
}

func TestInventoryRepository_ListOffersReadsLargeBulkBreak(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// integer columns arrive from lib/pq as int64
	mock.ExpectQuery(regexp.QuoteMeta("FROM supplier_offers")).WithArgs("t1", "i1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "item_id", "supplier_name", "unit_cost", "pack_size", "bulk_break_qty", "bulk_break_cost", "valid_from", "valid_to"}).
			AddRow("o1", "i1", "Acme", 0.02, int64(5000), int64(1000000), 0.015, from, nil))

	offers, err := NewInventoryRepositoryAdapter(db).ListOffers(context.Background(), "t1", "i1")

	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, 5000, offers[0].PackSize)
	assert.Equal(t, 1000000, offers[0].BulkBreakQty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryRepository_OwnedIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("id = ANY($2)")).WithArgs("t1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("i1"))

	owned, err := NewInventoryRepositoryAdapter(db).OwnedIDs(context.Background(), "t1", []string{"i1", "i9"})

	require.NoError(t, err)
	assert.True(t, owned["i1"])
	assert.False(t, owned["i9"])
}
