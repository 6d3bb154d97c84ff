package prodcat

import (
	"slices"

	"github.com/tidwall/btree"

	"github.com/hupe1980/prodcat/internal/keyword"
	"github.com/hupe1980/prodcat/model"
)

// Snapshot is an immutable, fully consistent view of a Phased catalog.
// It stays valid and unchanged after newer snapshots are published, so a
// caller may run several operations against the same state.
//
// A Snapshot is safe for concurrent use.
type Snapshot struct {
	generation   uint64
	slots        []model.ProductID
	products     *btree.Map[model.ProductID, *model.Product]
	names        *keyword.Index
	descriptions *keyword.Index
	nameBytes    int64
	descBytes    int64
	view         view
}

// newSnapshot indexes products from scratch. slots and products are owned by
// the snapshot afterwards.
func newSnapshot(generation uint64, slots []model.ProductID, products *btree.Map[model.ProductID, *model.Product], algorithm MatchAllAlgorithm) *Snapshot {
	if products.Len() != len(slots) {
		violate("slot-map", "%d slots but %d products", len(slots), products.Len())
	}
	s := &Snapshot{
		generation:   generation,
		slots:        slots,
		products:     products,
		names:        keyword.NewIndex(),
		descriptions: keyword.NewIndex(),
	}
	for i, id := range slots {
		p, ok := products.Get(id)
		if !ok {
			violate("slot-map", "slot %d holds id %d without a map entry", i, id)
		}
		s.nameBytes += int64(len(p.Name()))
		s.descBytes += int64(len(p.Description()))
		s.names.Add(id, p.Name())
		s.descriptions.Add(id, p.Description())
	}
	s.view = view{
		names:        s.names,
		descriptions: s.descriptions,
		resolve:      s.products.Get,
		all:          s.scan,
		algorithm:    algorithm,
	}
	return s
}

func (s *Snapshot) scan(yield func(*model.Product) bool) {
	s.products.Scan(func(_ model.ProductID, p *model.Product) bool {
		return yield(p)
	})
}

// Generation returns the number of rebuilds that preceded this snapshot.
func (s *Snapshot) Generation() uint64 { return s.generation }

// Len returns the number of slots.
func (s *Snapshot) Len() int { return len(s.slots) }

// LookupBySlot returns the product in slot i, or false if i is out of range.
func (s *Snapshot) LookupBySlot(i int) (*model.Product, bool) {
	if i < 0 || i >= len(s.slots) {
		return nil, false
	}
	return s.products.Get(s.slots[i])
}

// Contains reports whether id is part of the snapshot.
func (s *Snapshot) Contains(id model.ProductID) bool {
	_, ok := s.products.Get(id)
	return ok
}

// IDs returns a copy of the slot array.
func (s *Snapshot) IDs() []model.ProductID {
	return slices.Clone(s.slots)
}

// MatchAll returns the products whose name or description contains every
// keyword, ordered by id. An empty keyword list matches every product.
func (s *Snapshot) MatchAll(keywords []string) []*model.Product {
	return s.view.matchAll(normalizeKeywords(keywords))
}

// MatchAny returns the products whose name or description contains at least
// one keyword, ordered by id.
func (s *Snapshot) MatchAny(keywords []string) []*model.Product {
	return s.view.matchAny(normalizeKeywords(keywords))
}

func (s *Snapshot) stats() Stats {
	return Stats{
		Products:         s.products.Len(),
		OccupiedSlots:    len(s.slots),
		NameBytes:        s.nameBytes,
		DescriptionBytes: s.descBytes,
		NameIndex:        indexStats(s.names.Stats()),
		DescriptionIndex: indexStats(s.descriptions.Stats()),
		Generation:       s.generation,
	}
}
