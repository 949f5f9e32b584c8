package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCacheMiss = errors.New("cache: key not found")
)

// Service defines cache operations interface.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, keys ...string) (bool, error)
	MSet(ctx context.Context, values map[string]interface{}, expiration time.Duration) error
}

// StoreStats reports key count and memory usage of the backing store.
type StoreStats struct {
	TotalKeys        int64
	UsedMemoryHuman  string
	ConnectedClients int64
}

// StatsReporter is implemented by stores that can report usage statistics.
type StatsReporter interface {
	Stats(ctx context.Context) (*StoreStats, error)
}
