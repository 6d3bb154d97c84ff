package search

import (
	"maps"
	"slices"
)

// Fetch appends the ids associated with keyword to dst and returns the
// extended slice. The appended ids need not be sorted or distinct.
type Fetch func(dst []uint64, keyword string) []uint64

// Live reports whether id still resolves to an available product.
type Live func(id uint64) bool

// Collect sorts ids in place and removes duplicates.
func Collect(ids []uint64) []uint64 {
	slices.Sort(ids)
	return slices.Compact(ids)
}

// IntersectSorted keeps the values of all that also occur in next.
// Both inputs must be ascending and distinct. The result reuses the
// backing array of all and stays ascending.
func IntersectSorted(all, next []uint64) []uint64 {
	n, j := 0, 0
	for _, v := range all {
		for j < len(next) && next[j] < v {
			j++
		}
		if j == len(next) {
			break
		}
		if next[j] == v {
			all[n] = v
			n++
			j++
		}
	}
	return all[:n]
}

// MatchAllSorted returns the ids present for every keyword using sorted-merge
// intersection. Ids are not checked for liveness; callers resolve them and
// drop those that no longer map to a product. An empty keyword list yields nil.
func MatchAllSorted(s *Searcher, keywords []string, fetch Fetch) []uint64 {
	for _, kw := range keywords {
		if s.Keywords == 0 {
			s.Matches = Collect(fetch(s.Matches[:0], kw))
		} else {
			s.Scratch = Collect(fetch(s.Scratch[:0], kw))
			s.Matches = IntersectSorted(s.Matches, s.Scratch)
		}
		s.Keywords++
		if len(s.Matches) == 0 {
			return nil
		}
	}
	if len(s.Matches) == 0 {
		return nil
	}
	return slices.Clone(s.Matches)
}

// MatchAllSet returns the live ids present for every keyword using hash-set
// intersection. It stops as soon as the running intersection is empty.
// An empty keyword list yields nil.
func MatchAllSet(keywords []string, fetch Fetch, live Live) []uint64 {
	var (
		intersection map[uint64]struct{}
		buf          []uint64
	)
	for i, kw := range keywords {
		buf = fetch(buf[:0], kw)
		candidates := make(map[uint64]struct{}, len(buf))
		for _, id := range buf {
			if live(id) {
				candidates[id] = struct{}{}
			}
		}
		if i == 0 {
			intersection = candidates
		} else {
			for id := range intersection {
				if _, ok := candidates[id]; !ok {
					delete(intersection, id)
				}
			}
		}
		if len(intersection) == 0 {
			return nil
		}
	}
	if len(intersection) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(intersection))
}

// MatchAny returns the live ids present for at least one keyword.
func MatchAny(keywords []string, fetch Fetch, live Live) []uint64 {
	var buf []uint64
	for _, kw := range keywords {
		buf = fetch(buf, kw)
	}
	buf = Collect(buf)
	out := buf[:0]
	for _, id := range buf {
		if live(id) {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
