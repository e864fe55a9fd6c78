package outbound

import (
	"context"
	"fmt"
	"time"

	"github.com/vendorops/insights/domain"
)

var ErrLockNotAcquired = fmt.Errorf("entity lock not acquired: %w", domain.ErrEntityLocked)

// EntityLocker serializes writers of the same entity across instances.
type EntityLocker interface {
	// Acquire blocks until the lock is held, ctx is done, or the wait budget
	// runs out (ErrLockNotAcquired). The returned release must be called.
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(ctx context.Context) error, err error)
}
