package keyword

import (
	"slices"
	"strings"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/hupe1980/prodcat/internal/bitmap"
)

type lockedBucket struct {
	mu  sync.Mutex
	ids *bitmap.IDSet
}

// ConcurrentIndex is a keyword index safe for concurrent use without an
// index-wide lock. Each bucket is guarded by its own mutex; statistics are
// updated atomically and may briefly lag the buckets.
type ConcurrentIndex struct {
	buckets *xsync.MapOf[string, *lockedBucket]
	stats   atomicStats
}

var _ Reader = (*ConcurrentIndex)(nil)

// NewConcurrentIndex creates an empty ConcurrentIndex.
func NewConcurrentIndex() *ConcurrentIndex {
	return &ConcurrentIndex{buckets: xsync.NewMapOf[string, *lockedBucket]()}
}

// Add indexes id under every distinct word of text.
func (x *ConcurrentIndex) Add(id uint64, text string) {
	for _, word := range Tokenize(text) {
		b := x.bucket(word)

		b.mu.Lock()
		before := b.ids.SizeInBytes()
		added := b.ids.Add(id)
		delta := b.ids.SizeInBytes() - before
		b.mu.Unlock()

		if added {
			x.stats.postings.Add(1)
			x.stats.bucketBytes.Add(delta)
		}
	}
}

// Remove drops id from the bucket of every distinct word of text.
func (x *ConcurrentIndex) Remove(id uint64, text string) {
	for _, word := range Tokenize(text) {
		b, ok := x.buckets.Load(word)
		if !ok {
			continue
		}

		b.mu.Lock()
		before := b.ids.SizeInBytes()
		removed := b.ids.Remove(id)
		delta := b.ids.SizeInBytes() - before
		b.mu.Unlock()

		if removed {
			x.stats.postings.Add(-1)
			x.stats.bucketBytes.Add(delta)
		}
	}
}

// bucket returns the bucket of word, creating it if needed. When two writers
// race to create the same bucket only one is stored; the other is dropped.
func (x *ConcurrentIndex) bucket(word string) *lockedBucket {
	if b, ok := x.buckets.Load(word); ok {
		return b
	}
	fresh := &lockedBucket{ids: bitmap.New()}
	b, loaded := x.buckets.LoadOrStore(word, fresh)
	if !loaded {
		x.stats.entries.Add(1)
		x.stats.keyBytes.Add(int64(len(word)))
		x.stats.bucketBytes.Add(fresh.ids.SizeInBytes())
	}
	return b
}

// Has reports whether word has ever been indexed.
func (x *ConcurrentIndex) Has(word string) bool {
	_, ok := x.buckets.Load(word)
	return ok
}

// AppendIDs implements Reader. The bucket is copied under its lock, so the
// result is a consistent view of that bucket alone.
func (x *ConcurrentIndex) AppendIDs(dst []uint64, word string) []uint64 {
	b, ok := x.buckets.Load(word)
	if !ok {
		return dst
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ids.AppendTo(dst)
}

// Len implements Reader.
func (x *ConcurrentIndex) Len() int {
	return x.buckets.Size()
}

// Stats implements Reader.
func (x *ConcurrentIndex) Stats() Stats {
	return x.stats.load()
}

// Words implements Reader. Words added during the call may be missed.
func (x *ConcurrentIndex) Words(fn func(word string, size int) bool) {
	type entry struct {
		word string
		size int
	}
	var entries []entry
	x.buckets.Range(func(word string, b *lockedBucket) bool {
		b.mu.Lock()
		n := b.ids.Cardinality()
		b.mu.Unlock()
		entries = append(entries, entry{word: word, size: n})
		return true
	})
	slices.SortFunc(entries, func(a, b entry) int {
		return strings.Compare(a.word, b.word)
	})
	for _, e := range entries {
		if !fn(e.word, e.size) {
			return
		}
	}
}
