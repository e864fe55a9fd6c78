package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/vendorops/insights/application/port/inbound"
)

type counterClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// rateLimitService is a fixed-window counter in Redis
type rateLimitService struct {
	redisClient counterClient
	logger      *logrus.Logger
	prefix      string
}

// NewRateLimitService returns a no-op limiter when client is nil so a
// deployment without Redis still serves requests.
func NewRateLimitService(client *redis.Client, logger *logrus.Logger) inbound.RateLimitService {
	if client == nil {
		logger.Info("Rate limiting disabled")
		return &noopRateLimitService{}
	}
	return &rateLimitService{
		redisClient: client,
		logger:      logger,
		prefix:      "insights:ratelimit:",
	}
}

// CheckLimit reports whether key is still under limit in the current window
func (s *rateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := s.redisClient.Get(ctx, s.prefix+key).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to get rate limit counter")
		return false, fmt.Errorf("failed to get attempts: %w", err)
	}

	under := count < limit
	s.logger.WithContext(ctx).WithFields(logrus.Fields{
		"key":         key,
		"current":     count,
		"limit":       limit,
		"under_limit": under,
	}).Debug("Rate limit check")
	return under, nil
}

// Increment bumps the counter, starting the window on the first hit
func (s *rateLimitService) Increment(ctx context.Context, key string, window time.Duration) error {
	count, err := s.redisClient.Incr(ctx, s.prefix+key).Result()
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to increment rate limit counter")
		return fmt.Errorf("failed to increment rate limit: %w", err)
	}
	if count == 1 {
		if err := s.redisClient.Expire(ctx, s.prefix+key, window).Err(); err != nil {
			return fmt.Errorf("failed to start rate limit window: %w", err)
		}
	}

	s.logger.WithContext(ctx).WithFields(logrus.Fields{
		"key":    key,
		"count":  count,
		"window": window,
	}).Debug("Rate limit incremented")
	return nil
}

type noopRateLimitService struct{}

func (n *noopRateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return true, nil
}

func (n *noopRateLimitService) Increment(ctx context.Context, key string, window time.Duration) error {
	return nil
}
