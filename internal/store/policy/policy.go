package policy

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPolicy is returned for a policy name other than LRU or LFU.
var ErrUnknownPolicy = errors.New("unknown eviction policy")

// Kind identifies an eviction strategy.
type Kind string

const (
	// LRU evicts the key that was accessed longest ago.
	LRU Kind = "LRU"
	// LFU evicts the key with the fewest accesses, earliest inserted on ties.
	LFU Kind = "LFU"
)

// Valid reports whether k names a supported strategy.
func (k Kind) Valid() bool {
	return k == LRU || k == LFU
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind converts a case-insensitive policy name into a Kind.
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(name)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
	return k, nil
}

// EvictionPolicy defines the interface for eviction algorithms.
// Implementations are stateless: all bookkeeping lives in the State handed
// to each call, which lets the store swap policies without rebuilding it.
type EvictionPolicy[K comparable] interface {
	// Kind returns the tag of the strategy.
	Kind() Kind

	// OnAccess is called after a hit or an overwriting put of key.
	OnAccess(s *State[K], key K)

	// SelectVictim returns the key that should be evicted next.
	// It returns false when nothing is tracked.
	SelectVictim(s *State[K]) (K, bool)

	// Order returns tracked keys in display order.
	Order(s *State[K]) []K
}

// New creates the policy identified by kind.
func New[K comparable](kind Kind) (EvictionPolicy[K], error) {
	switch kind {
	case LRU:
		return NewLRU[K](), nil
	case LFU:
		return NewLFU[K](), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, string(kind))
	}
}
