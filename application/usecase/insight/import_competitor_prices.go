package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/vendorops/insights/application/port/inbound"
	"github.com/vendorops/insights/domain"
)

// ImportCompetitorPrices matches a competitor feed to the tenant's catalog by
// SKU and upserts the matched observations. Rows with an unknown SKU, a
// missing competitor or a non-positive price count as unmatched.
func (uc *InsightUseCase) ImportCompetitorPrices(ctx context.Context, tenantID string, req inbound.ImportCompetitorPricesRequest) (*inbound.ImportCompetitorPricesResponse, error) {
	if tenantID == "" {
		return nil, domain.ErrUnauthorized
	}

	resp := &inbound.ImportCompetitorPricesResponse{UnmatchedSKUs: []string{}}
	if len(req.Observations) == 0 {
		return resp, nil
	}

	skus := make([]string, 0, len(req.Observations))
	queued := make(map[string]bool, len(req.Observations))
	for _, obs := range req.Observations {
		key := domain.NormalizeSKU(obs.SKU)
		if key != "" && !queued[key] {
			queued[key] = true
			skus = append(skus, key)
		}
	}

	matched, err := uc.products.MatchSKUs(ctx, tenantID, skus)
	if err != nil {
		return nil, fmt.Errorf("failed to match skus: %w", err)
	}

	observations := make([]domain.CompetitorObservation, 0, len(req.Observations))
	reported := make(map[string]bool)
	for _, obs := range req.Observations {
		key := domain.NormalizeSKU(obs.SKU)
		competitor := strings.TrimSpace(obs.Competitor)
		productID, ok := matched[key]
		if !ok || competitor == "" || obs.Price <= 0 {
			resp.Unmatched++
			if !reported[key] {
				reported[key] = true
				resp.UnmatchedSKUs = append(resp.UnmatchedSKUs, obs.SKU)
			}
			continue
		}

		observedAt := obs.ObservedAt
		if observedAt.IsZero() {
			observedAt = uc.now()
		}
		observations = append(observations, domain.CompetitorObservation{
			ProductID:  productID,
			SKU:        key,
			Competitor: competitor,
			Price:      obs.Price,
			ObservedAt: observedAt.UTC(),
		})
		resp.Matched++
	}

	if len(observations) > 0 {
		written, err := uc.competitors.Upsert(ctx, tenantID, observations)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert competitor prices: %w", err)
		}
		resp.Written = written
	}

	uc.logger.Info(ctx, "Competitor prices imported", map[string]interface{}{
		"matched":   resp.Matched,
		"unmatched": resp.Unmatched,
		"written":   resp.Written,
	})
	return resp, nil
}
