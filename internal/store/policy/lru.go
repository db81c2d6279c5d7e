package policy

// LRUPolicy implements the Least Recently Used (LRU) eviction strategy.
type LRUPolicy[K comparable] struct{}

// NewLRU creates a new LRU policy instance.
func NewLRU[K comparable]() *LRUPolicy[K] {
	return &LRUPolicy[K]{}
}

func (p *LRUPolicy[K]) Kind() Kind { return LRU }

// OnAccess moves key to the most recently used end. Counters are left alone.
func (p *LRUPolicy[K]) OnAccess(s *State[K], key K) {
	s.Touch(key)
}

func (p *LRUPolicy[K]) SelectVictim(s *State[K]) (K, bool) {
	return s.Oldest()
}

// Order lists keys from least to most recently used.
func (p *LRUPolicy[K]) Order(s *State[K]) []K {
	return s.Recency()
}
