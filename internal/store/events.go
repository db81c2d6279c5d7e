package store

import (
	"fmt"

	"eviction-cache/internal/store/policy"
)

// Op names the operation a LogEvent describes.
type Op string

const (
	OpGet    Op = "GET"
	OpPut    Op = "PUT"
	OpDelete Op = "DELETE"
	OpEvict  Op = "EVICT"
)

// Entry is one cached key with its value and current access count.
type Entry[K comparable, V any] struct {
	Key       K
	Value     V
	Frequency int
}

// RenderEvent carries the full cache state in the active policy's order:
// least recently used first for LRU, ascending frequency for LFU.
type RenderEvent[K comparable, V any] struct {
	Policy  policy.Kind
	Entries []Entry[K, V]
}

// Keys returns the keys of the rendered entries in order.
func (r RenderEvent[K, V]) Keys() []K {
	keys := make([]K, len(r.Entries))
	for i, e := range r.Entries {
		keys[i] = e.Key
	}
	return keys
}

// LogEvent describes a single completed operation.
// Value is set for PUT only; Found is meaningful for GET only.
type LogEvent[K comparable, V any] struct {
	Op    Op
	Key   K
	Value V
	Found bool
}

// String formats the event as an operation log line, e.g. "PUT a: 1".
func (e LogEvent[K, V]) String() string {
	switch e.Op {
	case OpGet:
		if e.Found {
			return fmt.Sprintf("GET %v: Found", e.Key)
		}
		return fmt.Sprintf("GET %v: Not Found", e.Key)
	case OpPut:
		return fmt.Sprintf("PUT %v: %v", e.Key, e.Value)
	default:
		return fmt.Sprintf("%s %v", e.Op, e.Key)
	}
}

// Observer receives notifications after each operation completes.
// Calls happen synchronously while the store is locked, so an observer must
// not call back into the store.
type Observer[K comparable, V any] interface {
	OnRender(RenderEvent[K, V])
	OnLog(LogEvent[K, V])
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs[K comparable, V any] struct {
	Render func(RenderEvent[K, V])
	Log    func(LogEvent[K, V])
}

func (f ObserverFuncs[K, V]) OnRender(ev RenderEvent[K, V]) {
	if f.Render != nil {
		f.Render(ev)
	}
}

func (f ObserverFuncs[K, V]) OnLog(ev LogEvent[K, V]) {
	if f.Log != nil {
		f.Log(ev)
	}
}
