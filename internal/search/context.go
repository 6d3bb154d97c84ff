package search

import "sync"

// Searcher is a reusable execution context for keyword intersections.
// It owns the scratch id buffers of the sorted-merge algorithm so that
// steady-state searches do not grow new arrays.
//
// Searcher is NOT thread-safe. It is intended to be owned by a single goroutine
// during a search operation.
type Searcher struct {
	// Matches holds the running intersection.
	Matches []uint64

	// Scratch holds the ids of the keyword being merged in.
	Scratch []uint64

	// Keywords tracks the number of keywords merged so far.
	Keywords int
}

// NewSearcher creates a new Searcher whose buffers can hold capacity ids
// before growing.
func NewSearcher(capacity int) *Searcher {
	return &Searcher{
		Matches: make([]uint64, 0, capacity),
		Scratch: make([]uint64, 0, capacity),
	}
}

// Reset clears the searcher state for reuse without freeing memory.
func (s *Searcher) Reset() {
	s.Matches = s.Matches[:0]
	s.Scratch = s.Scratch[:0]
	s.Keywords = 0
}

var searcherPool = sync.Pool{
	New: func() any {
		return NewSearcher(256)
	},
}

// Get takes a Searcher from the pool. Call Put when done.
func Get() *Searcher {
	s := searcherPool.Get().(*Searcher)
	s.Reset()
	return s
}

// Put returns a Searcher to the pool.
func Put(s *Searcher) {
	if s == nil {
		return
	}
	s.Reset()
	searcherPool.Put(s)
}
