package policy

import "slices"

// LFUPolicy implements the Least Frequently Used (LFU) eviction strategy.
//
// Ties are broken by the frequency counter's insertion order: among keys
// sharing the minimum count, the one inserted first is evicted first.
type LFUPolicy[K comparable] struct{}

// NewLFU creates a new LFU policy instance.
func NewLFU[K comparable]() *LFUPolicy[K] {
	return &LFUPolicy[K]{}
}

func (p *LFUPolicy[K]) Kind() Kind { return LFU }

// OnAccess bumps the key's frequency. The recency order is not touched.
func (p *LFUPolicy[K]) OnAccess(s *State[K], key K) {
	s.Increment(key)
}

// SelectVictim scans counters forward and only replaces the candidate on a
// strictly smaller count, so the earliest inserted key wins a tie.
func (p *LFUPolicy[K]) SelectVictim(s *State[K]) (K, bool) {
	var (
		victim K
		found  bool
		lowest int
	)
	for _, c := range s.Counts() {
		if !found || c.Frequency < lowest {
			victim, lowest, found = c.Key, c.Frequency, true
		}
	}
	return victim, found
}

// Order lists keys by ascending frequency. The sort is stable over insertion
// order, so the first key is always the next victim.
func (p *LFUPolicy[K]) Order(s *State[K]) []K {
	counts := s.Counts()
	slices.SortStableFunc(counts, func(a, b Count[K]) int {
		return a.Frequency - b.Frequency
	})
	keys := make([]K, len(counts))
	for i, c := range counts {
		keys[i] = c.Key
	}
	return keys
}
