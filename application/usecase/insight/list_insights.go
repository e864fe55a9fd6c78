package insight

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vendorops/insights/application/port/outbound"
	"github.com/vendorops/insights/domain"
	"github.com/vendorops/insights/domain/valueobject"
	"github.com/vendorops/insights/infrastructure/service/logger"
)

type listIDsFunc func(ctx context.Context, tenantID string) ([]string, error)

type assembleFunc func(ctx context.Context, tenantID, id string, window valueobject.TrailingWindow) (domain.Signal, error)

func (uc *InsightUseCase) ListPricingInsights(ctx context.Context, tenantID string, windowDays int) ([]domain.Recommendation, error) {
	return uc.listInsights(ctx, tenantID, windowDays, domain.InsightDomainPricing, uc.products.ListIDs,
		func(ctx context.Context, tenantID, id string, window valueobject.TrailingWindow) (domain.Signal, error) {
			sig, err := uc.assemblePricing(ctx, tenantID, id, window)
			if err != nil {
				return nil, err
			}
			return *sig, nil
		})
}

func (uc *InsightUseCase) ListInventoryInsights(ctx context.Context, tenantID string, windowDays int) ([]domain.Recommendation, error) {
	return uc.listInsights(ctx, tenantID, windowDays, domain.InsightDomainInventory, uc.inventory.ListIDs,
		func(ctx context.Context, tenantID, id string, window valueobject.TrailingWindow) (domain.Signal, error) {
			sig, err := uc.assembleInventory(ctx, tenantID, id, window)
			if err != nil {
				return nil, err
			}
			return *sig, nil
		})
}

// listInsights evaluates every entity of the tenant on a bounded pool and
// returns the admitted recommendations in repository order. Entities without
// enough data, or deleted while the listing runs, are skipped.
func (uc *InsightUseCase) listInsights(
	ctx context.Context,
	tenantID string,
	windowDays int,
	insightDomain domain.InsightDomain,
	listIDs listIDsFunc,
	assemble assembleFunc,
) ([]domain.Recommendation, error) {
	if tenantID == "" {
		return nil, domain.ErrUnauthorized
	}
	window, err := valueobject.NewTrailingWindow(windowDays, uc.now())
	if err != nil {
		return nil, err
	}

	started := time.Now()
	label := string(insightDomain)

	ids, err := listIDs(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s entities: %w", label, err)
	}

	slots := make([]*domain.Recommendation, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.maxConcurrency)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			sig, err := assemble(gctx, tenantID, id, window)
			switch {
			case errors.Is(err, domain.ErrNoSignal):
				uc.metrics.ObserveEvaluation(label, outbound.OutcomeNoSignal)
				return nil
			case errors.Is(err, domain.ErrEntityNotFound):
				uc.logger.Debug(gctx, "Entity disappeared during listing", map[string]interface{}{
					"domain":    label,
					"entity_id": id,
				})
				return nil
			case err != nil:
				uc.metrics.ObserveEvaluation(label, outbound.OutcomeError)
				return fmt.Errorf("%s %s: %w", label, id, err)
			}

			rec, admitted, err := uc.engine.Evaluate(sig)
			if err != nil {
				uc.metrics.ObserveEvaluation(label, outbound.OutcomeError)
				return err
			}
			if !admitted {
				uc.metrics.ObserveEvaluation(label, outbound.OutcomeFiltered)
				return nil
			}
			uc.metrics.ObserveEvaluation(label, outbound.OutcomeSurfaced)
			slots[i] = &rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		uc.logger.Error(ctx, "Insight listing failed", err, map[string]interface{}{
			"domain":      label,
			"window_days": window.Days(),
		})
		return nil, err
	}

	results := make([]domain.Recommendation, 0, len(ids))
	for _, rec := range slots {
		if rec != nil {
			results = append(results, *rec)
		}
	}

	elapsed := time.Since(started)
	uc.metrics.ObserveListing(label, elapsed)
	logger.LogPerformance(ctx, uc.logger, "list_"+label+"_insights", elapsed, map[string]interface{}{
		"domain":      label,
		"window_days": window.Days(),
		"evaluated":   len(ids),
		"surfaced":    len(results),
	})
	return results, nil
}
