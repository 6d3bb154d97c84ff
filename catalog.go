package prodcat

import (
	"cmp"
	"iter"
	"slices"

	"github.com/hupe1980/prodcat/internal/keyword"
	"github.com/hupe1980/prodcat/internal/search"
	"github.com/hupe1980/prodcat/model"
)

// catalog is implemented by each concurrency strategy.
type catalog interface {
	lookup(slot int) (*model.Product, bool)
	// replace puts p into a slot chosen by pick and returns the product that
	// occupied it. The Phased strategy returns an approximation.
	replace(pick func(n int) int, p *model.Product) (removed *model.Product, slot int, err error)
	matchAll(keywords []string) []*model.Product
	matchAny(keywords []string) []*model.Product
	stats() Stats
	// inspect runs fn with a consistent view of both keyword indices.
	inspect(fn func(names, descriptions keyword.Reader))
}

// view bundles the read side of one catalog state for searching.
type view struct {
	names        keyword.Reader
	descriptions keyword.Reader
	// resolve maps an id to a product that is still part of the catalog.
	resolve  func(id model.ProductID) (*model.Product, bool)
	all      iter.Seq[*model.Product]
	algorithm MatchAllAlgorithm
}

func (v *view) fetch(dst []uint64, word string) []uint64 {
	dst = v.names.AppendIDs(dst, word)
	return v.descriptions.AppendIDs(dst, word)
}

func (v *view) live(id uint64) bool {
	_, ok := v.resolve(id)
	return ok
}

func (v *view) matchAll(keywords []string) []*model.Product {
	if len(keywords) == 0 {
		var out []*model.Product
		for p := range v.all {
			out = append(out, p)
		}
		slices.SortFunc(out, compareID)
		return out
	}

	if v.algorithm == SetBased {
		return v.products(search.MatchAllSet(keywords, v.fetch, v.live))
	}
	return v.products(v.matchAllSorted(keywords))
}

func (v *view) matchAllSorted(keywords []string) []uint64 {
	s := search.Get()
	defer search.Put(s)
	return search.MatchAllSorted(s, keywords, v.fetch)
}

func (v *view) matchAny(keywords []string) []*model.Product {
	return v.products(search.MatchAny(keywords, v.fetch, v.live))
}

// products resolves ascending ids, dropping those that vanished meanwhile.
func (v *view) products(ids []uint64) []*model.Product {
	if len(ids) == 0 {
		return nil
	}
	out := make([]*model.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := v.resolve(id); ok {
			out = append(out, p)
		}
	}
	return out
}

func compareID(a, b *model.Product) int {
	return cmp.Compare(a.ID(), b.ID())
}

// normalizeKeywords lower-cases keywords into a new slice.
func normalizeKeywords(keywords []string) []string {
	if len(keywords) == 0 {
		return nil
	}
	out := make([]string, len(keywords))
	for i, kw := range keywords {
		out[i] = keyword.Normalize(kw)
	}
	return out
}

func indexStats(s keyword.Stats) IndexStats {
	return IndexStats{
		Entries:     s.Entries,
		KeyBytes:    s.KeyBytes,
		Postings:    s.Postings,
		BucketBytes: s.BucketBytes,
	}
}
