package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/vendorops/insights/application/port/inbound"
	apperror "github.com/vendorops/insights/domain/error"
	"github.com/vendorops/insights/infrastructure/http/response"
	"github.com/vendorops/insights/infrastructure/service/logger"
)

// RateLimitMiddleware caps state-changing requests per tenant. It must run
// after RequireTenant.
type RateLimitMiddleware struct {
	rateLimitService inbound.RateLimitService
	logger           logger.Logger
	limit            int
	window           time.Duration
}

func NewRateLimitMiddleware(rateLimitService inbound.RateLimitService, log logger.Logger, limit int, window time.Duration) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		rateLimitService: rateLimitService,
		logger:           log,
		limit:            limit,
		window:           window,
	}
}

func (m *RateLimitMiddleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if m.rateLimitService == nil || m.limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		key := fmt.Sprintf("write:tenant:%s", TenantID(ctx))

		allowed, err := m.rateLimitService.CheckLimit(ctx, key, m.limit, m.window)
		if err != nil {
			// fail open: the limiter protects capacity, not correctness
			m.logger.Error(ctx, "Failed to check rate limit", err, map[string]interface{}{"key": key})
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			logger.LogSecurityEvent(ctx, m.logger, "rate_limit_exceeded", "MEDIUM", map[string]interface{}{
				"path": r.URL.Path,
				"key":  key,
			})
			w.Header().Set("Retry-After", strconv.Itoa(int(m.window.Seconds())))
			response.AppError(w, apperror.ErrRateLimitExceeded(m.limit, m.window.String()))
			return
		}

		if err := m.rateLimitService.Increment(ctx, key, m.window); err != nil {
			m.logger.Error(ctx, "Failed to increment rate limit", err, map[string]interface{}{"key": key})
		}
		next.ServeHTTP(w, r)
	})
}
