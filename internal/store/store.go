// Package store implements a bounded in-memory cache whose eviction victim is
// chosen by a swappable LRU or LFU policy.
//
// Recency order and frequency counters are kept side by side for every key
// regardless of the active policy. SetPolicy only swaps the strategy that
// interprets them, so after a switch the new policy works from bookkeeping
// gathered under the old one: counters stay at 1 for keys read only while LRU
// was active, and the recency order reflects insertion order for keys read
// only under LFU. Switching does not rebuild either structure.
package store

import (
	"errors"
	"fmt"
	"sync"

	"eviction-cache/internal/store/policy"
)

// ErrInvalidCapacity is returned by New for a non-positive MaxSize.
var ErrInvalidCapacity = errors.New("cache capacity must be positive")

// Config holds the required construction options.
type Config struct {
	MaxSize int
	Policy  policy.Kind
}

// Store is a thread-safe bounded cache
type Store[K comparable, V any] struct {
	mu        sync.Mutex
	maxSize   int
	policy    policy.EvictionPolicy[K]
	items     map[K]V
	state     *policy.State[K]
	observers []Observer[K, V]
}

// New creates a new Store
func New[K comparable, V any](cfg Config, observers ...Observer[K, V]) (*Store[K, V], error) {
	if cfg.MaxSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, cfg.MaxSize)
	}
	p, err := policy.New[K](cfg.Policy)
	if err != nil {
		return nil, err
	}

	return &Store[K, V]{
		maxSize:   cfg.MaxSize,
		policy:    p,
		items:     make(map[K]V, cfg.MaxSize),
		state:     policy.NewState[K](),
		observers: observers,
	}, nil
}

// Subscribe registers an observer for all subsequent operations.
func (s *Store[K, V]) Subscribe(o Observer[K, V]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Get returns the value for a key and whether it was found.
// A hit counts as an access for the active policy; a miss changes nothing.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	val, found := s.items[key]
	if !found {
		s.emitLog(LogEvent[K, V]{Op: OpGet, Key: key})
		return val, false
	}

	s.policy.OnAccess(s.state, key)
	s.emitLog(LogEvent[K, V]{Op: OpGet, Key: key, Found: true})
	s.emitRender()
	return val, true
}

// Put adds or updates a key. Overwriting counts as an access. Adding a new
// key to a full store evicts exactly one entry first.
func (s *Store[K, V]) Put(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.items[key]; found {
		s.items[key] = value
		s.policy.OnAccess(s.state, key)
	} else {
		if len(s.items) >= s.maxSize {
			s.evict()
		}
		s.items[key] = value
		s.state.Insert(key)
	}

	s.emitRender()
	s.emitLog(LogEvent[K, V]{Op: OpPut, Key: key, Value: value})
}

// Delete removes a key and reports whether it was present.
// Deleting an absent key emits nothing.
func (s *Store[K, V]) Delete(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.items[key]; !found {
		return false
	}
	s.remove(key)
	s.emitRender()
	s.emitLog(LogEvent[K, V]{Op: OpDelete, Key: key})
	return true
}

// SetPolicy swaps the active strategy. Bookkeeping is kept as-is, capacity is
// not re-checked and nothing is evicted; observers get a fresh render.
func (s *Store[K, V]) SetPolicy(kind policy.Kind) error {
	p, err := policy.New[K](kind)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.policy = p
	s.emitRender()
	return nil
}

// Policy returns the active policy tag.
func (s *Store[K, V]) Policy() policy.Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy.Kind()
}

// Len returns the number of cached entries.
func (s *Store[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Cap returns the configured capacity.
func (s *Store[K, V]) Cap() int {
	return s.maxSize
}

// Frequency returns the access count of a cached key without touching it.
func (s *Store[K, V]) Frequency(key K) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Frequency(key)
}

// Snapshot returns the current state in render order without notifying
// observers.
func (s *Store[K, V]) Snapshot() RenderEvent[K, V] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.render()
}

// evict removes the policy's victim. It is a no-op on an empty store.
func (s *Store[K, V]) evict() {
	victim, ok := s.policy.SelectVictim(s.state)
	if !ok {
		return
	}
	s.remove(victim)
	s.emitLog(LogEvent[K, V]{Op: OpEvict, Key: victim})
}

func (s *Store[K, V]) remove(key K) {
	delete(s.items, key)
	s.state.Remove(key)
}

func (s *Store[K, V]) render() RenderEvent[K, V] {
	keys := s.policy.Order(s.state)
	entries := make([]Entry[K, V], 0, len(keys))
	for _, k := range keys {
		freq, _ := s.state.Frequency(k)
		entries = append(entries, Entry[K, V]{Key: k, Value: s.items[k], Frequency: freq})
	}
	return RenderEvent[K, V]{Policy: s.policy.Kind(), Entries: entries}
}

func (s *Store[K, V]) emitRender() {
	if len(s.observers) == 0 {
		return
	}
	ev := s.render()
	for _, o := range s.observers {
		o.OnRender(ev)
	}
}

func (s *Store[K, V]) emitLog(ev LogEvent[K, V]) {
	for _, o := range s.observers {
		o.OnLog(ev)
	}
}
