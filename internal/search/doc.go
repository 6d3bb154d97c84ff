// Package search implements keyword match algorithms over id buckets.
//
// Buckets are reached through a Fetch function that appends the ids matching
// one keyword (in either indexed field) to a buffer, so the algorithms are
// independent of how the caller synchronizes its indices.
//
//   - MatchAllSorted intersects keywords by sorting each keyword's ids and
//     merging them with two cursors. It never hashes and is used where the
//     dominant cost is synchronization rather than comparisons.
//   - MatchAllSet intersects keywords with hash sets and stops as soon as the
//     running intersection is empty.
//   - MatchAny unions every keyword's ids.
//
// All results are ascending and free of duplicates.
package search
