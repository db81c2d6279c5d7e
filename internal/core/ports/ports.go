package ports

import (
	"context"

	"eviction-cache/internal/store"
	"eviction-cache/internal/store/policy"
)

// CacheService maps incoming requests to business logic
type CacheService interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	SetPolicy(ctx context.Context, name string) error
	Snapshot(ctx context.Context) (store.RenderEvent[string, string], error)
}

// Storage defines the interface for the bounded in-memory store
type Storage interface {
	Get(key string) (string, bool)
	Put(key, value string)
	Delete(key string) bool
	SetPolicy(kind policy.Kind) error
	Snapshot() store.RenderEvent[string, string]
}
