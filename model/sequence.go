package model

import "sync/atomic"

// IDAllocator hands out fresh product identifiers.
// Implementations must be safe for concurrent use and never return EmptySlot.
type IDAllocator interface {
	NextID() ProductID
}

// ContentGenerator produces the text content of new products.
// Implementations must be safe for concurrent use.
type ContentGenerator interface {
	Name() string
	Description() string
}

// Sequence is a monotonic IDAllocator starting at zero.
type Sequence struct {
	next atomic.Uint64
}

// NewSequence creates a Sequence whose first identifier is start.
func NewSequence(start ProductID) *Sequence {
	s := &Sequence{}
	s.next.Store(start)
	return s
}

// NextID implements IDAllocator.
func (s *Sequence) NextID() ProductID {
	return s.next.Add(1) - 1
}

// Peek returns the identifier the next call to NextID will return.
func (s *Sequence) Peek() ProductID {
	return s.next.Load()
}
