package prodcat

import (
	"fmt"
	"strings"
)

// Strategy selects how a Store keeps its slots, primary map and keyword
// indices consistent under concurrent access.
type Strategy int

const (
	// Exclusive runs every operation under one reader/writer lock.
	// Mutations are linearizable; reads see the last completed write.
	Exclusive Strategy = iota

	// LockFree uses no global lock. Slots are claimed with atomic swaps and
	// every other structure carries its own narrow synchronization. Composite
	// results may transiently mix pre- and post-replacement state.
	LockFree

	// Phased applies replacements to an immutable snapshot only when Rebuild
	// runs. Readers always see one fully consistent snapshot.
	Phased
)

// String returns the canonical name of s.
func (s Strategy) String() string {
	switch s {
	case Exclusive:
		return "exclusive"
	case LockFree:
		return "lock-free"
	case Phased:
		return "phased"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy parses a strategy name. Matching is case-insensitive and
// accepts the aliases "lockfree", "fast-and-furious" and "phased-updates".
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "exclusive":
		return Exclusive, nil
	case "lock-free", "lockfree", "fast-and-furious":
		return LockFree, nil
	case "phased", "phased-updates":
		return Phased, nil
	default:
		return Exclusive, fmt.Errorf("%w: unknown strategy %q", ErrInvalidArgument, name)
	}
}

// MatchAllAlgorithm selects the intersection algorithm of MatchAll.
type MatchAllAlgorithm int

const (
	// DefaultMatchAll picks SetBased for Exclusive and SortedMerge otherwise.
	DefaultMatchAll MatchAllAlgorithm = iota

	// SetBased intersects hash sets and stops as soon as the running
	// intersection is empty.
	SetBased

	// SortedMerge intersects sorted id arrays with a linear two-pointer merge.
	SortedMerge
)

// String returns the canonical name of a.
func (a MatchAllAlgorithm) String() string {
	switch a {
	case DefaultMatchAll:
		return "default"
	case SetBased:
		return "set-based"
	case SortedMerge:
		return "sorted-merge"
	default:
		return fmt.Sprintf("MatchAllAlgorithm(%d)", int(a))
	}
}

// ParseMatchAllAlgorithm parses an algorithm name as returned by String.
func ParseMatchAllAlgorithm(name string) (MatchAllAlgorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return DefaultMatchAll, nil
	case "set-based", "set":
		return SetBased, nil
	case "sorted-merge", "sorted":
		return SortedMerge, nil
	default:
		return DefaultMatchAll, fmt.Errorf("%w: unknown match-all algorithm %q", ErrInvalidArgument, name)
	}
}
