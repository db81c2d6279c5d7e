package policy

import "container/list"

// Count pairs a key with its access frequency.
type Count[K comparable] struct {
	Key       K
	Frequency int
}

// counter is the element stored in the frequency list.
type counter[K comparable] struct {
	key K
	n   int
}

// State is the bookkeeping shared by every policy: a recency order and an
// insertion-ordered frequency counter. It is owned by the store, so swapping
// the active policy keeps it intact.
//
// State is not safe for concurrent use; the store guards it together with
// its value map.
type State[K comparable] struct {
	// recency runs from least recently used (front) to most recently used (back).
	recency    *list.List
	recencyIdx map[K]*list.Element

	// counts keeps keys in insertion order; increments never move elements.
	counts   *list.List
	countIdx map[K]*list.Element
}

// NewState creates empty bookkeeping.
func NewState[K comparable]() *State[K] {
	return &State[K]{
		recency:    list.New(),
		recencyIdx: make(map[K]*list.Element),
		counts:     list.New(),
		countIdx:   make(map[K]*list.Element),
	}
}

// Insert tracks a new key as most recently used with frequency 1.
// Inserting a key that is already tracked is a no-op.
func (s *State[K]) Insert(key K) {
	if _, ok := s.recencyIdx[key]; ok {
		return
	}
	s.recencyIdx[key] = s.recency.PushBack(key)
	s.countIdx[key] = s.counts.PushBack(&counter[K]{key: key, n: 1})
}

// Remove forgets a key in both structures.
func (s *State[K]) Remove(key K) {
	if elem, ok := s.recencyIdx[key]; ok {
		s.recency.Remove(elem)
		delete(s.recencyIdx, key)
	}
	if elem, ok := s.countIdx[key]; ok {
		s.counts.Remove(elem)
		delete(s.countIdx, key)
	}
}

// Touch moves key to the most recently used end.
func (s *State[K]) Touch(key K) {
	if elem, ok := s.recencyIdx[key]; ok {
		s.recency.MoveToBack(elem)
	}
}

// Increment adds one to the key's frequency and returns the new count.
// It returns 0 for untracked keys.
func (s *State[K]) Increment(key K) int {
	elem, ok := s.countIdx[key]
	if !ok {
		return 0
	}
	c := elem.Value.(*counter[K])
	c.n++
	return c.n
}

// Frequency returns the access count of key.
func (s *State[K]) Frequency(key K) (int, bool) {
	elem, ok := s.countIdx[key]
	if !ok {
		return 0, false
	}
	return elem.Value.(*counter[K]).n, true
}

// Oldest returns the least recently used key.
func (s *State[K]) Oldest() (K, bool) {
	elem := s.recency.Front()
	if elem == nil {
		var zero K
		return zero, false
	}
	return elem.Value.(K), true
}

// Recency returns tracked keys from least to most recently used.
func (s *State[K]) Recency() []K {
	keys := make([]K, 0, s.recency.Len())
	for elem := s.recency.Front(); elem != nil; elem = elem.Next() {
		keys = append(keys, elem.Value.(K))
	}
	return keys
}

// Counts returns frequencies in counter insertion order.
func (s *State[K]) Counts() []Count[K] {
	out := make([]Count[K], 0, s.counts.Len())
	for elem := s.counts.Front(); elem != nil; elem = elem.Next() {
		c := elem.Value.(*counter[K])
		out = append(out, Count[K]{Key: c.key, Frequency: c.n})
	}
	return out
}

// Contains reports whether key is tracked.
func (s *State[K]) Contains(key K) bool {
	_, ok := s.recencyIdx[key]
	return ok
}

// Len returns the number of tracked keys.
func (s *State[K]) Len() int {
	return s.recency.Len()
}
