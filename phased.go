package prodcat

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/tidwall/btree"

	"github.com/hupe1980/prodcat/internal/changelog"
	"github.com/hupe1980/prodcat/internal/keyword"
	"github.com/hupe1980/prodcat/model"
)

// phasedCatalog never mutates published state. Writers append to the change
// log; rebuild is the only path that produces a new snapshot.
type phasedCatalog struct {
	current   atomic.Pointer[Snapshot]
	log       *changelog.Log
	rebuildMu sync.Mutex
	algorithm MatchAllAlgorithm
}

func newPhasedCatalog(initial []*model.Product, algorithm MatchAllAlgorithm) *phasedCatalog {
	slots := make([]model.ProductID, len(initial))
	products := btree.NewMap[model.ProductID, *model.Product](0)
	for i, p := range initial {
		slots[i] = p.ID()
		products.Set(p.ID(), p)
	}
	c := &phasedCatalog{algorithm: algorithm}
	c.log = changelog.New(func(id model.ProductID) bool {
		return c.snapshot().Contains(id)
	})
	c.current.Store(newSnapshot(0, slots, products, algorithm))
	return c
}

func (c *phasedCatalog) snapshot() *Snapshot {
	return c.current.Load()
}

func (c *phasedCatalog) lookup(slot int) (*model.Product, bool) {
	return c.snapshot().LookupBySlot(slot)
}

// replace records the change and returns the product the published snapshot
// holds in the chosen slot. Earlier pending changes of the same slot make
// this an approximation. Ids already queued or published are rejected.
func (c *phasedCatalog) replace(pick func(n int) int, p *model.Product) (*model.Product, int, error) {
	snap := c.snapshot()
	slot := pick(len(snap.slots))
	if !c.log.Append(slot, p) {
		return nil, -1, fmt.Errorf("%w: %d", ErrDuplicateID, p.ID())
	}
	removed, _ := snap.LookupBySlot(slot)
	return removed, slot, nil
}

// rebuild applies every pending change to a copy of the current snapshot,
// re-indexes the result and publishes it. Products dropped by the rebuild are
// deactivated after publication, and the applied ids leave the log's pending
// set only once the snapshot holding them is visible.
func (c *phasedCatalog) rebuild() (int, *Snapshot) {
	c.rebuildMu.Lock()
	defer c.rebuildMu.Unlock()

	cur := c.snapshot()
	slots := slices.Clone(cur.slots)
	products := cur.products.Copy()

	records := c.log.DrainAll()
	retired := make([]*model.Product, 0, len(records))
	for _, r := range records {
		if r.Slot < 0 || r.Slot >= len(slots) {
			violate("change-log-slot", "record targets slot %d of %d", r.Slot, len(slots))
		}
		old := slots[r.Slot]
		removed, ok := products.Delete(old)
		if !ok {
			violate("slot-map", "slot %d holds id %d without a map entry", r.Slot, old)
		}
		retired = append(retired, removed)

		id := r.Product.ID()
		if _, dup := products.Set(id, r.Product); dup {
			violate("unique-id", "id %d queued while already present", id)
		}
		slots[r.Slot] = id
	}

	next := newSnapshot(cur.generation+1, slots, products, c.algorithm)
	c.current.Store(next)
	c.log.Settle(records)

	for _, p := range retired {
		p.Deactivate()
	}
	return len(records), next
}

func (c *phasedCatalog) matchAll(keywords []string) []*model.Product {
	return c.snapshot().view.matchAll(keywords)
}

func (c *phasedCatalog) matchAny(keywords []string) []*model.Product {
	return c.snapshot().view.matchAny(keywords)
}

func (c *phasedCatalog) stats() Stats {
	st := c.snapshot().stats()
	st.PendingChanges = c.log.Len()
	st.LogAppended, st.LogDrained = c.log.Totals()
	return st
}

func (c *phasedCatalog) inspect(fn func(names, descriptions keyword.Reader)) {
	snap := c.snapshot()
	fn(snap.names, snap.descriptions)
}
