package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vendorops/insights/application/port/inbound"
	apperror "github.com/vendorops/insights/domain/error"
	"github.com/vendorops/insights/infrastructure/http/response"
	"github.com/vendorops/insights/infrastructure/service/logger"
)

type contextKey string

const authClaimsKey contextKey = "auth_claims"

type AuthMiddleware struct {
	tokenService inbound.TokenService
	logger       logger.Logger
}

func NewAuthMiddleware(tokenService inbound.TokenService, log logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		logger:       log,
	}
}

// RequireTenant rejects requests without a valid bearer token naming a tenant.
func (m *AuthMiddleware) RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header required")
			return
		}

		// Extract Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.tokenService.ValidateToken(parts[1])
		if err != nil || claims == nil || claims.TenantID == "" {
			logger.LogSecurityEvent(r.Context(), m.logger, "token_rejected", "LOW", map[string]interface{}{
				"path":   r.URL.Path,
				"reason": reasonOf(err),
			})
			response.AppError(w, apperror.ErrInvalidToken(""))
			return
		}

		ctx := context.WithValue(r.Context(), authClaimsKey, claims)
		ctx = logger.WithTenantID(ctx, claims.TenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func reasonOf(err error) string {
	if err == nil {
		return "missing tenant"
	}
	return err.Error()
}

// GetClaims retrieves token claims from context
func GetClaims(ctx context.Context) *inbound.TokenClaims {
	if claims, ok := ctx.Value(authClaimsKey).(*inbound.TokenClaims); ok {
		return claims
	}
	return nil
}

// TenantID returns the authenticated tenant, or "" outside RequireTenant.
func TenantID(ctx context.Context) string {
	if claims := GetClaims(ctx); claims != nil {
		return claims.TenantID
	}
	return ""
}
