package prodcat

import (
	"fmt"

	"github.com/tidwall/btree"

	"github.com/hupe1980/prodcat/internal/guard"
	"github.com/hupe1980/prodcat/internal/keyword"
	"github.com/hupe1980/prodcat/model"
)

// exclusiveCatalog serializes writers against everyone with a single
// reader/writer guard. All fields below guard are protected by it.
type exclusiveCatalog struct {
	guard *guard.Guard

	slots        []model.ProductID
	products     *btree.Map[model.ProductID, *model.Product]
	names        *keyword.Index
	descriptions *keyword.Index
	nameBytes    int64
	descBytes    int64
	view         view
}

func newExclusiveCatalog(initial []*model.Product, algorithm MatchAllAlgorithm) *exclusiveCatalog {
	c := &exclusiveCatalog{
		guard:        guard.New(),
		slots:        make([]model.ProductID, len(initial)),
		products:     btree.NewMap[model.ProductID, *model.Product](0),
		names:        keyword.NewIndex(),
		descriptions: keyword.NewIndex(),
	}
	for i, p := range initial {
		c.slots[i] = p.ID()
		c.insert(p)
	}
	c.view = view{
		names:        c.names,
		descriptions: c.descriptions,
		resolve:      c.resolve,
		all:          c.scan,
		algorithm:    algorithm,
	}
	return c
}

func (c *exclusiveCatalog) resolve(id model.ProductID) (*model.Product, bool) {
	p, ok := c.products.Get(id)
	if !ok || !p.Available() {
		return nil, false
	}
	return p, true
}

func (c *exclusiveCatalog) scan(yield func(*model.Product) bool) {
	c.products.Scan(func(_ model.ProductID, p *model.Product) bool {
		return yield(p)
	})
}

func (c *exclusiveCatalog) insert(p *model.Product) {
	c.products.Set(p.ID(), p)
	c.nameBytes += int64(len(p.Name()))
	c.descBytes += int64(len(p.Description()))
	c.names.Add(p.ID(), p.Name())
	c.descriptions.Add(p.ID(), p.Description())
}

func (c *exclusiveCatalog) lookup(slot int) (p *model.Product, ok bool) {
	c.guard.ActAsReader(func() {
		p, ok = c.products.Get(c.slots[slot])
	})
	return p, ok
}

func (c *exclusiveCatalog) replace(pick func(n int) int, p *model.Product) (removed *model.Product, slot int, err error) {
	c.guard.ActAsWriter(func() {
		if _, dup := c.products.Get(p.ID()); dup {
			slot, err = -1, fmt.Errorf("%w: %d", ErrDuplicateID, p.ID())
			return
		}
		slot = pick(len(c.slots))
		old := c.slots[slot]
		var ok bool
		if removed, ok = c.products.Delete(old); !ok {
			violate("slot-map", "slot %d holds id %d without a map entry", slot, old)
		}
		c.nameBytes -= int64(len(removed.Name()))
		c.descBytes -= int64(len(removed.Description()))
		c.names.Remove(old, removed.Name())
		c.descriptions.Remove(old, removed.Description())
		removed.Deactivate()

		c.slots[slot] = p.ID()
		c.insert(p)
	})
	return removed, slot, err
}

func (c *exclusiveCatalog) matchAll(keywords []string) []*model.Product {
	return guard.Read(c.guard, func() []*model.Product {
		return c.view.matchAll(keywords)
	})
}

func (c *exclusiveCatalog) matchAny(keywords []string) []*model.Product {
	return guard.Read(c.guard, func() []*model.Product {
		return c.view.matchAny(keywords)
	})
}

func (c *exclusiveCatalog) stats() Stats {
	st := guard.Read(c.guard, func() Stats {
		if c.products.Len() != len(c.slots) {
			violate("slot-map", "%d slots but %d products", len(c.slots), c.products.Len())
		}
		return Stats{
			Products:         c.products.Len(),
			OccupiedSlots:    len(c.slots),
			NameBytes:        c.nameBytes,
			DescriptionBytes: c.descBytes,
			NameIndex:        indexStats(c.names.Stats()),
			DescriptionIndex: indexStats(c.descriptions.Stats()),
		}
	})
	gs := c.guard.Stats()
	st.Lock = &LockStats{
		Reads:           gs.Reads,
		Writes:          gs.Writes,
		ContendedReads:  gs.ContendedReads,
		ContendedWrites: gs.ContendedWrites,
		ReadWait:        gs.ReadWait,
		WriteWait:       gs.WriteWait,
	}
	return st
}

func (c *exclusiveCatalog) inspect(fn func(names, descriptions keyword.Reader)) {
	c.guard.ActAsReader(func() {
		fn(c.names, c.descriptions)
	})
}
