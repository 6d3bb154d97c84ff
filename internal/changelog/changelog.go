// Package changelog buffers pending slot replacements between rebuilds.
//
// Any number of writers may Append concurrently. A single rebuilder calls
// DrainAll, which takes every queued record in FIFO order, and Settle once
// the drained records are visible to readers. An Append racing a drain lands
// either in that drain or in the next one.
//
// A product id stays pending from its Append until the Settle of the drain
// that took it. Append rejects ids that are pending or already published, so
// every id reaches the rebuilder at most once.
package changelog

import (
	"sync"

	"github.com/hupe1980/prodcat/model"
)

// Record is a pending replacement of the product in one slot.
type Record struct {
	Slot    int
	Product *model.Product
}

// Log is a FIFO queue of pending replacements.
type Log struct {
	mu        sync.Mutex
	recs      []Record
	pending   map[model.ProductID]struct{}
	published func(model.ProductID) bool
	appended  uint64
	drained   uint64
}

// New creates an empty Log. published reports whether an id is already part
// of the visible catalog; it is called with the log locked and may be nil.
func New(published func(model.ProductID) bool) *Log {
	return &Log{
		pending:   make(map[model.ProductID]struct{}),
		published: published,
	}
}

// Append adds a record to the tail of the log. It returns false and queues
// nothing if the product id is pending or published.
func (l *Log) Append(slot int, p *model.Product) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := p.ID()
	if _, ok := l.pending[id]; ok {
		return false
	}
	if l.published != nil && l.published(id) {
		return false
	}
	l.pending[id] = struct{}{}
	l.recs = append(l.recs, Record{Slot: slot, Product: p})
	l.appended++
	return true
}

// DrainAll removes and returns every queued record in FIFO order.
// It returns nil if the log is empty. The drained ids stay pending until
// Settle.
func (l *Log) DrainAll() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	recs := l.recs
	l.recs = nil
	l.drained += uint64(len(recs))
	return recs
}

// Settle releases the ids of drained records. Call it after the records
// have been published, so that published reports them from then on.
func (l *Log) Settle(recs []Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, r := range recs {
		delete(l.pending, r.Product.ID())
	}
}

// Len returns the number of queued records.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.recs)
}

// Totals returns the number of records ever appended and ever drained.
func (l *Log) Totals() (appended, drained uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.appended, l.drained
}
