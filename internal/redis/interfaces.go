package redis

import (
	"context"
	"time"

	"naklos/internal/domain"
)

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireDriverLock(ctx context.Context, driverID string, ttl time.Duration) (bool, error)
	ReleaseDriverLock(ctx context.Context, driverID string) error
	AcquireInvoiceLock(ctx context.Context, clientID string, ttl time.Duration) (bool, error)
	ReleaseInvoiceLock(ctx context.Context, clientID string) error
}

// CacheStoreInterface defines the interface for warning feed caching.
type CacheStoreInterface interface {
	GetWarnings(ctx context.Context) ([]domain.Warning, error)
	SetWarnings(ctx context.Context, warnings []domain.Warning) error
	InvalidateWarnings(ctx context.Context) error
}

// Ensure concrete types implement interfaces.
var (
	_ LockStoreInterface  = (*LockStore)(nil)
	_ CacheStoreInterface = (*CacheStore)(nil)
)
