package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vendorops/insights/application/port/inbound"
)

// JWTService validates HS256 access tokens issued by the platform auth service.
// Every token must carry a tenant_id claim; the engine never infers the tenant.
type JWTService struct {
	hmacSecret []byte
	now        func() time.Time
}

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenExpired  = errors.New("token expired")
	ErrMissingTenant = errors.New("token has no tenant")
	ErrMissingSecret = errors.New("jwt secret is required")
)

func NewJWTService(secret string) (*JWTService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &JWTService{
		hmacSecret: []byte(secret),
		now:        time.Now,
	}, nil
}

var _ inbound.TokenService = (*JWTService)(nil)

// GenerateAccessToken signs a token for claims. The service only mints tokens
// for local tooling and tests; production tokens come from the auth service.
func (s *JWTService) GenerateAccessToken(claims inbound.TokenClaims, ttl time.Duration) (string, error) {
	now := s.now()
	tokenClaims := jwt.MapClaims{
		"user_id":   claims.UserID,
		"tenant_id": claims.TenantID,
		"role":      claims.Role,
		"exp":       now.Add(ttl).Unix(),
		"iat":       now.Unix(),
		"type":      "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims)
	tokenString, err := token.SignedString(s.hmacSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return tokenString, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*inbound.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.hmacSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, s.handleValidationError(err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "access" {
		return nil, ErrInvalidToken
	}

	tenantID, _ := claims["tenant_id"].(string)
	if tenantID == "" {
		return nil, ErrMissingTenant
	}
	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)

	return &inbound.TokenClaims{
		UserID:   userID,
		TenantID: tenantID,
		Role:     role,
	}, nil
}

func (s *JWTService) handleValidationError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrTokenExpired
	}
	return ErrInvalidToken
}
