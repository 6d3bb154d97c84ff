// Package bitmap provides the id sets backing keyword buckets.
//
// IDSet wraps a 64-bit Roaring bitmap. Product identifiers are allocated
// monotonically, so buckets hold long runs of nearby values and compress well.
// AppendTo always yields ascending identifiers, which the sorted-merge
// intersection relies on.
//
// IDSet is not safe for concurrent mutation. Callers either hold the lock that
// protects the owning index or wrap the set with their own mutex.
package bitmap
