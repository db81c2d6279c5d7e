package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"eviction-cache/internal/core/ports"
	"eviction-cache/internal/observability"
	"eviction-cache/internal/store"
	"eviction-cache/internal/store/policy"
)

// ensure implementation
var (
	_ ports.CacheService = (*ServiceImpl)(nil)
	_ ports.Storage      = (*store.Store[string, string])(nil)
)

// ErrNotFound is returned by Get for a key that is not cached.
var ErrNotFound = errors.New("key not found")

// Operation labels used for metrics
const (
	opGet       = "get"
	opPut       = "put"
	opDelete    = "delete"
	opSetPolicy = "set_policy"
)

type ServiceImpl struct {
	store  ports.Storage
	logger *slog.Logger
}

// Option configures a ServiceImpl.
type Option func(*ServiceImpl)

// WithLogger sets the logger for service-level records such as policy
// switches. Records are discarded by default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *ServiceImpl) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func New(store ports.Storage, opts ...Option) *ServiceImpl {
	s := &ServiceImpl{
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ServiceImpl) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	defer observe(opGet, time.Now())

	val, found := s.store.Get(key)
	if !found {
		observability.CacheMissesTotal.Inc()
		observability.CacheOperationsTotal.WithLabelValues(opGet, "miss").Inc()
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	observability.CacheHitsTotal.Inc()
	observability.CacheOperationsTotal.WithLabelValues(opGet, "success").Inc()
	return val, nil
}

func (s *ServiceImpl) Put(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer observe(opPut, time.Now())

	s.store.Put(key, value)
	observability.CacheOperationsTotal.WithLabelValues(opPut, "success").Inc()
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *ServiceImpl) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer observe(opDelete, time.Now())

	status := "success"
	if !s.store.Delete(key) {
		status = "noop"
	}
	observability.CacheOperationsTotal.WithLabelValues(opDelete, status).Inc()
	return nil
}

func (s *ServiceImpl) SetPolicy(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer observe(opSetPolicy, time.Now())

	kind, err := policy.ParseKind(name)
	if err == nil {
		err = s.store.SetPolicy(kind)
	}
	if err != nil {
		observability.CacheOperationsTotal.WithLabelValues(opSetPolicy, "error").Inc()
		return fmt.Errorf("set policy: %w", err)
	}
	observability.CacheOperationsTotal.WithLabelValues(opSetPolicy, "success").Inc()
	s.logger.InfoContext(ctx, "SET POLICY "+string(kind),
		observability.Op("SET_POLICY"),
		observability.Policy(string(kind)),
	)
	return nil
}

func (s *ServiceImpl) Snapshot(ctx context.Context) (store.RenderEvent[string, string], error) {
	if err := ctx.Err(); err != nil {
		return store.RenderEvent[string, string]{}, err
	}
	return s.store.Snapshot(), nil
}

func observe(op string, start time.Time) {
	observability.CacheDurationSeconds.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
