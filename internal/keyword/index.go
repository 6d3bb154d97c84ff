package keyword

import (
	"github.com/tidwall/btree"

	"github.com/hupe1980/prodcat/internal/bitmap"
)

// Index is an ordered keyword index. It is not safe for concurrent use.
type Index struct {
	buckets *btree.Map[string, *bitmap.IDSet]
	stats   Stats
}

var _ Reader = (*Index)(nil)

// NewIndex creates an empty Index.
func NewIndex() *Index {
	return &Index{buckets: btree.NewMap[string, *bitmap.IDSet](0)}
}

// Add indexes id under every distinct word of text.
func (x *Index) Add(id uint64, text string) {
	for _, word := range Tokenize(text) {
		set := x.bucket(word)
		before := set.SizeInBytes()
		if set.Add(id) {
			x.stats.Postings++
			x.stats.BucketBytes += set.SizeInBytes() - before
		}
	}
}

// Remove drops id from the bucket of every distinct word of text.
// Buckets that become empty are kept.
func (x *Index) Remove(id uint64, text string) {
	for _, word := range Tokenize(text) {
		set, ok := x.buckets.Get(word)
		if !ok {
			continue
		}
		before := set.SizeInBytes()
		if set.Remove(id) {
			x.stats.Postings--
			x.stats.BucketBytes += set.SizeInBytes() - before
		}
	}
}

func (x *Index) bucket(word string) *bitmap.IDSet {
	if set, ok := x.buckets.Get(word); ok {
		return set
	}
	set := bitmap.New()
	x.buckets.Set(word, set)
	x.stats.Entries++
	x.stats.KeyBytes += int64(len(word))
	x.stats.BucketBytes += set.SizeInBytes()
	return set
}

// Has reports whether word has ever been indexed.
func (x *Index) Has(word string) bool {
	_, ok := x.buckets.Get(word)
	return ok
}

// AppendIDs implements Reader.
func (x *Index) AppendIDs(dst []uint64, word string) []uint64 {
	set, ok := x.buckets.Get(word)
	if !ok {
		return dst
	}
	return set.AppendTo(dst)
}

// Len implements Reader.
func (x *Index) Len() int {
	return x.buckets.Len()
}

// Stats implements Reader.
func (x *Index) Stats() Stats {
	return x.stats
}

// Words implements Reader.
func (x *Index) Words(fn func(word string, size int) bool) {
	x.buckets.Scan(func(word string, set *bitmap.IDSet) bool {
		return fn(word, set.Cardinality())
	})
}
