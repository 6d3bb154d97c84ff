package bitmap

import "github.com/RoaringBitmap/roaring/v2/roaring64"

// IDSet is a set of product identifiers.
type IDSet struct {
	rb *roaring64.Bitmap
}

// New creates an empty IDSet.
func New() *IDSet {
	return &IDSet{rb: roaring64.New()}
}

// Add inserts id and reports whether it was absent.
func (s *IDSet) Add(id uint64) bool {
	return s.rb.CheckedAdd(id)
}

// Remove deletes id and reports whether it was present.
func (s *IDSet) Remove(id uint64) bool {
	return s.rb.CheckedRemove(id)
}

// Cardinality returns the number of ids in the set.
func (s *IDSet) Cardinality() int {
	return int(s.rb.GetCardinality())
}

// SizeInBytes returns the serialized size of the set, used as its capacity
// figure in index statistics.
func (s *IDSet) SizeInBytes() int64 {
	return int64(s.rb.GetSizeInBytes())
}

// AppendTo appends the ids in ascending order to dst.
func (s *IDSet) AppendTo(dst []uint64) []uint64 {
	it := s.rb.Iterator()
	for it.HasNext() {
		dst = append(dst, it.Next())
	}
	return dst
}
