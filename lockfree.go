package prodcat

import (
	"fmt"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/hupe1980/prodcat/internal/keyword"
	"github.com/hupe1980/prodcat/model"
)

// lockFreeCatalog has no catalog-wide lock. Every slot is an atomic word,
// the primary map is a concurrent hash map and each keyword bucket carries
// its own mutex.
//
// A replacement first publishes the new product in the map, then claims a
// slot by swapping in model.EmptySlot, so an id observed in a slot always
// has had a map entry. The new product is indexed before its id is stored
// in the slot. Between the claim and the refill the slot is empty and
// lookups of it report no product.
type lockFreeCatalog struct {
	slots        []atomic.Uint64
	products     *xsync.MapOf[model.ProductID, *model.Product]
	names        *keyword.ConcurrentIndex
	descriptions *keyword.ConcurrentIndex
	nameBytes    atomic.Int64
	descBytes    atomic.Int64
	collisions   atomic.Uint64
	onCollision  func()
	view         view
}

func newLockFreeCatalog(initial []*model.Product, algorithm MatchAllAlgorithm, onCollision func()) *lockFreeCatalog {
	c := &lockFreeCatalog{
		slots:        make([]atomic.Uint64, len(initial)),
		products:     xsync.NewMapOf[model.ProductID, *model.Product](xsync.WithPresize(len(initial))),
		names:        keyword.NewConcurrentIndex(),
		descriptions: keyword.NewConcurrentIndex(),
		onCollision:  onCollision,
	}
	for i, p := range initial {
		c.products.Store(p.ID(), p)
		c.slots[i].Store(p.ID())
		c.index(p)
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

func (c *lockFreeCatalog) resolve(id model.ProductID) (*model.Product, bool) {
	p, ok := c.products.Load(id)
	if !ok || !p.Available() {
		return nil, false
	}
	return p, true
}

func (c *lockFreeCatalog) scan(yield func(*model.Product) bool) {
	c.products.Range(func(_ model.ProductID, p *model.Product) bool {
		if !p.Available() {
			return true
		}
		return yield(p)
	})
}

func (c *lockFreeCatalog) index(p *model.Product) {
	c.nameBytes.Add(int64(len(p.Name())))
	c.descBytes.Add(int64(len(p.Description())))
	c.names.Add(p.ID(), p.Name())
	c.descriptions.Add(p.ID(), p.Description())
}

func (c *lockFreeCatalog) unindex(p *model.Product) {
	c.nameBytes.Add(-int64(len(p.Name())))
	c.descBytes.Add(-int64(len(p.Description())))
	c.names.Remove(p.ID(), p.Name())
	c.descriptions.Remove(p.ID(), p.Description())
}

// lookup may report no product while a concurrent replacement holds the slot.
func (c *lockFreeCatalog) lookup(slot int) (*model.Product, bool) {
	id := c.slots[slot].Load()
	if id == model.EmptySlot {
		return nil, false
	}
	return c.products.Load(id)
}

func (c *lockFreeCatalog) replace(pick func(n int) int, p *model.Product) (*model.Product, int, error) {
	if _, dup := c.products.LoadOrStore(p.ID(), p); dup {
		return nil, -1, fmt.Errorf("%w: %d", ErrDuplicateID, p.ID())
	}

	var (
		slot int
		old  model.ProductID
	)
	for {
		slot = pick(len(c.slots))
		if old = c.slots[slot].Swap(model.EmptySlot); old != model.EmptySlot {
			break
		}
		// Another replacement owns this slot until it stores its id.
		c.collisions.Add(1)
		if c.onCollision != nil {
			c.onCollision()
		}
	}

	removed, ok := c.products.LoadAndDelete(old)
	if !ok {
		violate("slot-map", "slot %d held id %d without a map entry", slot, old)
	}
	removed.Deactivate()
	c.unindex(removed)

	// Only the claimer of a slot unindexes its product, so p must be fully
	// indexed before its id becomes claimable.
	c.index(p)
	c.slots[slot].Store(p.ID())
	return removed, slot, nil
}

func (c *lockFreeCatalog) matchAll(keywords []string) []*model.Product {
	return c.view.matchAll(keywords)
}

func (c *lockFreeCatalog) matchAny(keywords []string) []*model.Product {
	return c.view.matchAny(keywords)
}

func (c *lockFreeCatalog) stats() Stats {
	return Stats{
		Products:         c.products.Size(),
		OccupiedSlots:    c.occupied(),
		NameBytes:        c.nameBytes.Load(),
		DescriptionBytes: c.descBytes.Load(),
		NameIndex:        indexStats(c.names.Stats()),
		DescriptionIndex: indexStats(c.descriptions.Stats()),
		SlotCollisions:   c.collisions.Load(),
	}
}

func (c *lockFreeCatalog) inspect(fn func(names, descriptions keyword.Reader)) {
	fn(c.names, c.descriptions)
}

// occupied returns the number of slots currently holding an id.
func (c *lockFreeCatalog) occupied() int {
	n := 0
	for i := range c.slots {
		if c.slots[i].Load() != model.EmptySlot {
			n++
		}
	}
	return n
}
