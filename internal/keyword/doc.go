// Package keyword implements the keyword indices of the catalog.
//
// An index maps a normalized word to the bucket of product ids whose field
// contains that word. The key space is append-only: once a word has been
// indexed its bucket is never deleted, only its membership shrinks.
//
// Two implementations share the Reader surface:
//
//   - Index keeps words in an ordered B-tree and must be synchronized by the
//     caller (a global lock, or single ownership while a snapshot is built).
//   - ConcurrentIndex keeps buckets in a concurrent map; each bucket carries its
//     own mutex so writers never take an index-wide lock.
package keyword
