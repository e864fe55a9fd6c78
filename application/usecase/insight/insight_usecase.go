package insight

import (
	"time"

	"github.com/vendorops/insights/application/port/inbound"
	"github.com/vendorops/insights/application/port/outbound"
	"github.com/vendorops/insights/domain/engine"
	"github.com/vendorops/insights/infrastructure/service/logger"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
	defaultConcurrency  = 4
	defaultLockTTL      = 10 * time.Second
)

// Options tunes the usecase. Zero values fall back to defaults.
type Options struct {
	// MaxConcurrency bounds how many entities a listing evaluates at once.
	// It should not exceed the database connection budget.
	MaxConcurrency int
	LockTTL        time.Duration
	Now            func() time.Time
}

type Dependencies struct {
	Products    outbound.ProductRepository
	Competitors outbound.CompetitorPriceRepository
	Inventory   outbound.InventoryRepository
	UnitOfWork  outbound.UnitOfWork
	Locker      outbound.EntityLocker
	Metrics     outbound.InsightMetrics
	Logger      logger.Logger
}

type InsightUseCase struct {
	products    outbound.ProductRepository
	competitors outbound.CompetitorPriceRepository
	inventory   outbound.InventoryRepository
	uow         outbound.UnitOfWork
	locker      outbound.EntityLocker
	metrics     outbound.InsightMetrics
	logger      logger.Logger
	engine      *engine.Engine

	maxConcurrency int
	lockTTL        time.Duration
	now            func() time.Time
}

func NewInsightUseCase(deps Dependencies, opts Options) inbound.InsightUseCase {
	return newInsightUseCase(deps, opts)
}

func newInsightUseCase(deps Dependencies, opts Options) *InsightUseCase {
	uc := &InsightUseCase{
		products:       deps.Products,
		competitors:    deps.Competitors,
		inventory:      deps.Inventory,
		uow:            deps.UnitOfWork,
		locker:         deps.Locker,
		metrics:        deps.Metrics,
		logger:         deps.Logger,
		engine:         engine.New(nil),
		maxConcurrency: opts.MaxConcurrency,
		lockTTL:        opts.LockTTL,
		now:            opts.Now,
	}
	if uc.maxConcurrency <= 0 {
		uc.maxConcurrency = defaultConcurrency
	}
	if uc.lockTTL <= 0 {
		uc.lockTTL = defaultLockTTL
	}
	if uc.now == nil {
		uc.now = func() time.Time { return time.Now().UTC() }
	}
	if uc.metrics == nil {
		uc.metrics = noopMetrics{}
	}
	return uc
}

type noopMetrics struct{}

func (noopMetrics) ObserveEvaluation(string, string)     {}
func (noopMetrics) ObserveListing(string, time.Duration) {}
func (noopMetrics) ObserveCommit(string, string)         {}
