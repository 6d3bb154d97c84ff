package keyword

import "sync/atomic"

// Stats describes the size of a keyword index.
type Stats struct {
	// Entries is the number of distinct words ever indexed.
	Entries int
	// KeyBytes is the combined length of all indexed words.
	KeyBytes int64
	// Postings is the number of (word, id) memberships currently held.
	Postings int64
	// BucketBytes is the combined size of all bucket id sets.
	BucketBytes int64
}

// Reader is the read surface shared by Index and ConcurrentIndex.
type Reader interface {
	// AppendIDs appends the ids in the bucket of word, ascending, to dst.
	AppendIDs(dst []uint64, word string) []uint64
	// Len returns the number of distinct words.
	Len() int
	// Stats returns the index statistics.
	Stats() Stats
	// Words calls fn for every word in ascending order with its bucket size.
	Words(fn func(word string, size int) bool)
}

type atomicStats struct {
	entries     atomic.Int64
	keyBytes    atomic.Int64
	postings    atomic.Int64
	bucketBytes atomic.Int64
}

func (a *atomicStats) load() Stats {
	return Stats{
		Entries:     int(a.entries.Load()),
		KeyBytes:    a.keyBytes.Load(),
		Postings:    a.postings.Load(),
		BucketBytes: a.bucketBytes.Load(),
	}
}
