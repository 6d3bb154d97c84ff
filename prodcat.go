package prodcat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/prodcat/model"
)

// Store is an in-memory product catalog of fixed capacity. Each of its
// capacity slots holds one product; replacements swap the product of a
// random slot for a new one while keyword searches run concurrently.
//
// Store is safe for concurrent use. The consistency a caller observes
// depends on the configured Strategy.
type Store struct {
	capacity int
	gen      model.ContentGenerator
	opts     options
	logger   *Logger
	metrics  MetricsCollector
	catalog  catalog
	phased   *phasedCatalog

	sinkMu sync.Mutex
}

// IndexStats describes one keyword index.
type IndexStats struct {
	// Entries is the number of distinct words ever indexed.
	Entries int
	// KeyBytes is the combined length of all indexed words.
	KeyBytes int64
	// Postings is the number of (word, product) memberships.
	Postings int64
	// BucketBytes is the combined size of all id sets.
	BucketBytes int64
}

// LockStats describes the usage of the Exclusive strategy's reader/writer lock.
type LockStats struct {
	Reads           uint64
	Writes          uint64
	ContendedReads  uint64
	ContendedWrites uint64
	ReadWait        time.Duration
	WriteWait       time.Duration
}

// Stats is a point-in-time summary of a Store.
//
// Under LockFree the individual counters are read one by one and may not
// describe a single instant.
type Stats struct {
	Strategy         Strategy
	Capacity         int
	Products         int
	OccupiedSlots    int
	NameBytes        int64
	DescriptionBytes int64
	NameIndex        IndexStats
	DescriptionIndex IndexStats

	// Lock is set for the Exclusive strategy only.
	Lock *LockStats
	// SlotCollisions counts LockFree slot claims that had to be retried.
	SlotCollisions uint64

	// Phased only.
	PendingChanges int
	LogAppended    uint64
	LogDrained     uint64
	Generation     uint64
}

// New creates a Store with capacity slots, each filled with a product whose
// name and description come from gen.
func New(capacity int, gen model.ContentGenerator, optFns ...Option) (*Store, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidArgument, capacity)
	}
	if gen == nil {
		return nil, fmt.Errorf("%w: content generator is nil", ErrInvalidArgument)
	}

	opts := applyOptions(optFns)
	s := &Store{
		capacity: capacity,
		gen:      gen,
		opts:     opts,
		logger:   opts.logger.WithStrategy(opts.strategy),
		metrics:  opts.metricsCollector,
	}

	initial := make([]*model.Product, capacity)
	seen := make(map[model.ProductID]struct{}, capacity)
	for i := range initial {
		p := s.NewProduct()
		if p.ID() == model.EmptySlot {
			return nil, fmt.Errorf("%w: allocator returned the reserved id %d", ErrInvalidArgument, p.ID())
		}
		if _, dup := seen[p.ID()]; dup {
			return nil, fmt.Errorf("%w: allocator returned id %d twice", ErrDuplicateID, p.ID())
		}
		seen[p.ID()] = struct{}{}
		initial[i] = p
	}

	switch opts.strategy {
	case Exclusive:
		s.catalog = newExclusiveCatalog(initial, opts.matchAll)
	case LockFree:
		s.catalog = newLockFreeCatalog(initial, opts.matchAll, s.metrics.RecordSlotCollision)
	case Phased:
		s.phased = newPhasedCatalog(initial, opts.matchAll)
		s.catalog = s.phased
	default:
		return nil, fmt.Errorf("%w: unknown strategy %d", ErrInvalidArgument, int(opts.strategy))
	}

	s.logger.Info("catalog created",
		"capacity", capacity,
		"match_all", opts.matchAll.String(),
	)
	return s, nil
}

// Capacity returns the number of slots.
func (s *Store) Capacity() int { return s.capacity }

// Strategy returns the configured concurrency strategy.
func (s *Store) Strategy() Strategy { return s.opts.strategy }

// MatchAllAlgorithm returns the intersection algorithm in effect.
func (s *Store) MatchAllAlgorithm() MatchAllAlgorithm { return s.opts.matchAll }

// NewProduct allocates an id and generates a fresh product. The product is
// not part of the catalog until it is passed to ReplaceArbitrarySlot.
func (s *Store) NewProduct() *model.Product {
	return model.NewProduct(s.opts.ids.NextID(), s.gen.Name(), s.gen.Description())
}

// LookupBySlot returns the product occupying slot i.
//
// It reports false when i is out of range and, under LockFree, while a
// concurrent replacement has vacated the slot. Under Phased it reads the
// currently published snapshot; use Snapshot to run several reads against
// the same state.
func (s *Store) LookupBySlot(i int) (*model.Product, bool) {
	if i < 0 || i >= s.capacity {
		return nil, false
	}
	start := time.Now()
	p, ok := s.catalog.lookup(i)
	s.metrics.RecordLookup(time.Since(start), ok)
	return p, ok
}

// ReplaceArbitrarySlot puts p into a slot chosen by the slot picker and
// returns the product it displaced. The displaced product is deactivated.
//
// Under Phased the change is only queued; it becomes visible with the next
// Rebuild and the returned product is the one the published snapshot holds
// in that slot, which is stale when earlier queued changes target the same
// slot. Duplicate ids are detected against the published snapshot only.
func (s *Store) ReplaceArbitrarySlot(p *model.Product) (*model.Product, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: product is nil", ErrInvalidArgument)
	}
	if p.ID() == model.EmptySlot {
		return nil, fmt.Errorf("%w: product id %d is reserved", ErrInvalidArgument, p.ID())
	}

	start := time.Now()
	removed, slot, err := s.catalog.replace(s.pickSlot, p)
	s.metrics.RecordReplace(time.Since(start), err)
	s.logger.LogReplace(slot, removed, p, err)
	return removed, err
}

// ReplaceRandomProduct generates a new product and replaces an arbitrary
// slot with it.
func (s *Store) ReplaceRandomProduct() (removed, added *model.Product, err error) {
	added = s.NewProduct()
	removed, err = s.ReplaceArbitrarySlot(added)
	if err != nil {
		return nil, nil, err
	}
	return removed, added, nil
}

func (s *Store) pickSlot(n int) int {
	i := s.opts.pickSlot(n)
	if i < 0 || i >= n {
		violate("slot-range", "slot picker returned %d for %d slots", i, n)
	}
	return i
}

// MatchAll returns the available products whose name or description
// contains every keyword, ordered by id. Keywords are matched
// case-insensitively. An empty keyword list matches every product.
func (s *Store) MatchAll(keywords []string) []*model.Product {
	start := time.Now()
	out := s.catalog.matchAll(normalizeKeywords(keywords))
	s.metrics.RecordSearch("all", len(keywords), len(out), time.Since(start))
	s.logger.LogSearch("all", len(keywords), len(out))
	return out
}

// MatchAny returns the available products whose name or description
// contains at least one keyword, ordered by id.
func (s *Store) MatchAny(keywords []string) []*model.Product {
	start := time.Now()
	out := s.catalog.matchAny(normalizeKeywords(keywords))
	s.metrics.RecordSearch("any", len(keywords), len(out), time.Since(start))
	s.logger.LogSearch("any", len(keywords), len(out))
	return out
}

// Rebuild applies every queued change and publishes the resulting snapshot.
// It returns the number of change records applied. Concurrent calls are
// serialized. Failing to write the start and finish lines to the report sink
// does not stop the rebuild; the write error, wrapping ErrReport, is returned
// alongside the count.
//
// Rebuild requires the Phased strategy; otherwise it returns a *UsageError.
func (s *Store) Rebuild() (int, error) {
	return s.rebuild(context.Background())
}

func (s *Store) rebuild(ctx context.Context) (int, error) {
	if s.phased == nil {
		return 0, &UsageError{Op: "rebuild", Strategy: s.opts.strategy, Required: Phased}
	}

	start := time.Now()
	startErr := s.reportRebuildTime("Start", start)
	applied, snap := s.phased.rebuild()
	finish := time.Now()
	finishErr := s.reportRebuildTime("Finish", finish)

	s.metrics.RecordRebuild(applied, finish.Sub(start))
	s.logger.LogRebuild(ctx, snap.Generation(), applied, finish.Sub(start))
	return applied, errors.Join(startErr, finishErr)
}

// Snapshot returns the currently published snapshot.
//
// Snapshot requires the Phased strategy; otherwise it returns a *UsageError.
func (s *Store) Snapshot() (*Snapshot, error) {
	if s.phased == nil {
		return nil, &UsageError{Op: "snapshot", Strategy: s.opts.strategy, Required: Phased}
	}
	return s.phased.snapshot(), nil
}

// PendingChanges returns the number of queued changes. It is always zero
// unless the strategy is Phased.
func (s *Store) PendingChanges() int {
	if s.phased == nil {
		return 0
	}
	return s.phased.log.Len()
}

// Stats returns a summary of the catalog.
func (s *Store) Stats() Stats {
	st := s.catalog.stats()
	st.Strategy = s.opts.strategy
	st.Capacity = s.capacity
	return st
}
