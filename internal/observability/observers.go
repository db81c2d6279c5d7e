package observability

import (
	"context"
	"log/slog"

	"eviction-cache/internal/store"
)

// LogObserver writes one structured record per cache operation.
type LogObserver[K comparable, V any] struct {
	logger *slog.Logger
}

// NewLogObserver creates a log observer. A nil logger uses slog.Default.
func NewLogObserver[K comparable, V any](logger *slog.Logger) *LogObserver[K, V] {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver[K, V]{logger: logger.With(slog.String("component", "cache"))}
}

// OnRender logs the shape of the new state at debug level.
func (o *LogObserver[K, V]) OnRender(ev store.RenderEvent[K, V]) {
	o.logger.LogAttrs(context.Background(), slog.LevelDebug, "cache state",
		Policy(ev.Policy.String()),
		slog.Int("entries", len(ev.Entries)),
	)
}

// OnLog logs the operation line with its fields as attributes.
func (o *LogObserver[K, V]) OnLog(ev store.LogEvent[K, V]) {
	attrs := []slog.Attr{Op(string(ev.Op)), Key(ev.Key)}
	switch ev.Op {
	case store.OpPut:
		attrs = append(attrs, Value(ev.Value))
	case store.OpGet:
		attrs = append(attrs, slog.Bool("found", ev.Found))
	}
	o.logger.LogAttrs(context.Background(), slog.LevelInfo, ev.String(), attrs...)
}

// MetricsObserver feeds engine-level events into the prometheus collectors.
// Request-level counters (operations, hits, misses, latency) are recorded by
// the service.
type MetricsObserver[K comparable, V any] struct{}

// NewMetricsObserver creates a metrics observer.
func NewMetricsObserver[K comparable, V any]() *MetricsObserver[K, V] {
	return &MetricsObserver[K, V]{}
}

func (MetricsObserver[K, V]) OnRender(ev store.RenderEvent[K, V]) {
	CacheEntries.Set(float64(len(ev.Entries)))
	CachePolicyRendersTotal.WithLabelValues(ev.Policy.String()).Inc()
}

func (MetricsObserver[K, V]) OnLog(ev store.LogEvent[K, V]) {
	if ev.Op == store.OpEvict {
		CacheEvictionsTotal.Inc()
	}
}
