package ratelimit

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimitService_WithoutRedisAllowsEverything(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	svc := NewRateLimitService(nil, log)

	for i := 0; i < 100; i++ {
		require.NoError(t, svc.Increment(context.Background(), "apply:t1", time.Minute))
	}
	ok, err := svc.CheckLimit(context.Background(), "apply:t1", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

type MockCounterClient struct {
	mock.Mock
}

func (m *MockCounterClient) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	return redis.NewStringResult(args.String(0), args.Error(1))
}

func (m *MockCounterClient) Incr(ctx context.Context, key string) *redis.IntCmd {
	args := m.Called(ctx, key)
	return redis.NewIntResult(args.Get(0).(int64), args.Error(1))
}

func (m *MockCounterClient) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	args := m.Called(ctx, key, expiration)
	return redis.NewBoolResult(args.Bool(0), args.Error(1))
}

func newTestService(client counterClient) *rateLimitService {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &rateLimitService{redisClient: client, logger: log, prefix: "insights:ratelimit:"}
}

func TestRateLimitService_CheckLimit(t *testing.T) {
	tests := []struct {
		name    string
		stored  string
		getErr  error
		limit   int
		under   bool
		wantErr bool
	}{
		{name: "missing key starts at zero", getErr: redis.Nil, limit: 1, under: true},
		{name: "below limit", stored: "4", limit: 5, under: true},
		{name: "at limit", stored: "5", limit: 5, under: false},
		{name: "redis failure", getErr: errors.New("i/o timeout"), limit: 5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockCounterClient)
			client.On("Get", mock.Anything, "insights:ratelimit:apply:t1").Return(tt.stored, tt.getErr)

			under, err := newTestService(client).CheckLimit(context.Background(), "apply:t1", tt.limit, time.Minute)

			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, under)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.under, under)
		})
	}
}

func TestRateLimitService_IncrementStartsWindowOnFirstHit(t *testing.T) {
	client := new(MockCounterClient)
	client.On("Incr", mock.Anything, "insights:ratelimit:apply:t1").Return(int64(1), nil).Once()
	client.On("Expire", mock.Anything, "insights:ratelimit:apply:t1", time.Minute).Return(true, nil).Once()
	client.On("Incr", mock.Anything, "insights:ratelimit:apply:t1").Return(int64(2), nil).Once()
	svc := newTestService(client)

	require.NoError(t, svc.Increment(context.Background(), "apply:t1", time.Minute))
	require.NoError(t, svc.Increment(context.Background(), "apply:t1", time.Minute))

	client.AssertNumberOfCalls(t, "Expire", 1)
	client.AssertExpectations(t)
}
