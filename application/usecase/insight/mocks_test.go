package insight

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/vendorops/insights/application/port/outbound"
	"github.com/vendorops/insights/domain"
	"github.com/vendorops/insights/domain/entity"
	"github.com/vendorops/insights/infrastructure/service/logger"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) ListIDs(ctx context.Context, tenantID string) ([]string, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, tenantID, productID string) (*entity.Product, error) {
	args := m.Called(ctx, tenantID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) CountSales(ctx context.Context, tenantID, productID string, since, until time.Time) (int, error) {
	args := m.Called(ctx, tenantID, productID, since, until)
	return args.Int(0), args.Error(1)
}

func (m *MockProductRepository) MatchSKUs(ctx context.Context, tenantID string, skus []string) (map[string]string, error) {
	args := m.Called(ctx, tenantID, skus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockProductRepository) ListPriceHistory(ctx context.Context, tenantID, productID string, limit int) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, tenantID, productID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

type MockCompetitorRepository struct {
	mock.Mock
}

func (m *MockCompetitorRepository) ListPrices(ctx context.Context, tenantID, productID string, since, until time.Time) ([]float64, error) {
	args := m.Called(ctx, tenantID, productID, since, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}

func (m *MockCompetitorRepository) Upsert(ctx context.Context, tenantID string, observations []domain.CompetitorObservation) (int, error) {
	args := m.Called(ctx, tenantID, observations)
	return args.Int(0), args.Error(1)
}

type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) ListIDs(ctx context.Context, tenantID string) ([]string, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockInventoryRepository) FindByID(ctx context.Context, tenantID, itemID string) (*entity.InventoryItem, error) {
	args := m.Called(ctx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) ConsumedUnits(ctx context.Context, tenantID, itemID string, since, until time.Time) (float64, error) {
	args := m.Called(ctx, tenantID, itemID, since, until)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockInventoryRepository) ListOffers(ctx context.Context, tenantID, itemID string) ([]entity.SupplierOffer, error) {
	args := m.Called(ctx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SupplierOffer), args.Error(1)
}

func (m *MockInventoryRepository) OwnedIDs(ctx context.Context, tenantID string, ids []string) (map[string]bool, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

type MockEntityLocker struct {
	mock.Mock
	released atomic.Int32
}

func (m *MockEntityLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(ctx context.Context) error, error) {
	args := m.Called(ctx, key, ttl)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func(context.Context) error {
		m.released.Add(1)
		return nil
	}, nil
}

type storedPrice struct {
	price   float64
	version int64
}

// memoryStore is a transactional in-memory store: writes made inside Do are
// staged and only become visible when fn returns nil.
type memoryStore struct {
	mu      sync.Mutex
	prices  map[string]storedPrice
	audit   []domain.AuditEntry
	orders  []domain.PurchaseOrderDraft
	failOn  string
	commits int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{prices: map[string]storedPrice{}}
}

func (s *memoryStore) Do(ctx context.Context, fn func(ctx context.Context, tx outbound.TxRepositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{store: s, prices: map[string]storedPrice{}}
	for k, v := range s.prices {
		tx.prices[k] = v
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	s.prices = tx.prices
	s.audit = append(s.audit, tx.audit...)
	s.orders = append(s.orders, tx.orders...)
	s.commits++
	return nil
}

type memoryTx struct {
	store  *memoryStore
	prices map[string]storedPrice
	audit  []domain.AuditEntry
	orders []domain.PurchaseOrderDraft
}

func (t *memoryTx) Prices() outbound.PriceWriter                 { return t }
func (t *memoryTx) Audit() outbound.AuditWriter                  { return auditWriter{t} }
func (t *memoryTx) PurchaseOrders() outbound.PurchaseOrderWriter { return orderWriter{t} }

func (t *memoryTx) LockPrice(_ context.Context, tenantID, productID string) (float64, int64, error) {
	p, ok := t.prices[tenantID+"/"+productID]
	if !ok {
		return 0, 0, domain.ErrEntityNotFound
	}
	return p.price, p.version, nil
}

func (t *memoryTx) UpdatePrice(_ context.Context, tenantID, productID string, price float64, expectedVersion int64) error {
	key := tenantID + "/" + productID
	p, ok := t.prices[key]
	if !ok {
		return domain.ErrEntityNotFound
	}
	if p.version != expectedVersion {
		return domain.ErrVersionConflict
	}
	t.prices[key] = storedPrice{price: price, version: p.version + 1}
	return nil
}

type auditWriter struct{ tx *memoryTx }

func (w auditWriter) Append(_ context.Context, entry *domain.AuditEntry) error {
	if w.tx.store.failOn == "audit" {
		return errStoreUnavailable
	}
	w.tx.audit = append(w.tx.audit, *entry)
	return nil
}

type orderWriter struct{ tx *memoryTx }

func (w orderWriter) CreateDraft(_ context.Context, order *domain.PurchaseOrderDraft) error {
	if w.tx.store.failOn == "orders" {
		return errStoreUnavailable
	}
	w.tx.orders = append(w.tx.orders, *order)
	return nil
}

var errStoreUnavailable = domain.NewDomainError("store unavailable")

func testLogger() logger.Logger {
	return logger.NewStructuredLogger(logger.LoggerConfig{Level: "error", Output: io.Discard, ServiceName: "insights-test"})
}
