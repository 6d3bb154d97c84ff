// Package workload drives a Store with concurrent customer-like workers.
//
// Each worker repeatedly picks an operation according to the configured mix:
// a lookup of a random slot, a replacement with a freshly generated product,
// or a match-all / match-any search for random dictionary words. Under the
// Phased strategy a single rebuilder publishes snapshots in the background
// and performs a final rebuild once the workers have stopped.
package workload

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/prodcat"
	"github.com/hupe1980/prodcat/internal/config"
)

// ErrNoVocabulary is returned when searches are configured without words to
// search for.
var ErrNoVocabulary = errors.New("workload: search mix requires a vocabulary")

type op int

const (
	opLookup op = iota
	opReplace
	opMatchAll
	opMatchAny
)

// Result summarizes a finished run.
type Result struct {
	RunID          string
	Elapsed        time.Duration
	Lookups        uint64
	LookupMisses   uint64
	Replacements   uint64
	MatchAlls      uint64
	MatchAnys      uint64
	SearchHits     uint64
	Rebuilds       int
	RebuildApplied int
}

// Ops returns the number of store operations issued by workers.
func (r Result) Ops() uint64 {
	return r.Lookups + r.Replacements + r.MatchAlls + r.MatchAnys
}

type counters struct {
	lookups      atomic.Uint64
	lookupMisses atomic.Uint64
	replacements atomic.Uint64
	matchAlls    atomic.Uint64
	matchAnys    atomic.Uint64
	searchHits   atomic.Uint64
}

// Driver runs a workload against one store.
type Driver struct {
	store      *prodcat.Store
	cfg        config.Config
	vocabulary []string
	logger     *prodcat.Logger
	cumulative []float64
}

// New creates a Driver. cfg must be valid. vocabulary supplies search
// keywords and may be empty only if the mix issues no searches.
func New(store *prodcat.Store, cfg config.Config, vocabulary []string, logger *prodcat.Logger) (*Driver, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store is nil", prodcat.ErrInvalidArgument)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(vocabulary) == 0 && (cfg.Mix.MatchAll > 0 || cfg.Mix.MatchAny > 0) {
		return nil, ErrNoVocabulary
	}
	if logger == nil {
		logger = prodcat.NoopLogger()
	}
	m := cfg.Mix
	return &Driver{
		store:      store,
		cfg:        cfg,
		vocabulary: vocabulary,
		logger:     logger,
		cumulative: []float64{m.Lookup, m.Lookup + m.Replace, m.Lookup + m.Replace + m.MatchAll, m.Total()},
	}, nil
}

// Run starts the workers and blocks until every worker has finished its
// operations, the configured duration has elapsed or ctx is done. Stopping
// because of time or cancellation is not an error.
func (d *Driver) Run(ctx context.Context) (Result, error) {
	res := Result{RunID: uuid.NewString()}
	logger := d.logger.WithRunID(res.RunID)

	runCtx := ctx
	if d.cfg.Duration > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, d.cfg.Duration)
		defer cancel()
	}

	var (
		rebuilder     *prodcat.Rebuilder
		rebuilderDone chan error
		stopRebuilder context.CancelFunc = func() {}
	)
	if d.store.Strategy() == prodcat.Phased {
		var err error
		rebuilder, err = prodcat.NewRebuilder(d.store, d.cfg.RebuildInterval)
		if err != nil {
			return res, err
		}
		var rbCtx context.Context
		rbCtx, stopRebuilder = context.WithCancel(context.WithoutCancel(ctx))
		rebuilderDone = make(chan error, 1)
		go func() { rebuilderDone <- rebuilder.Run(rbCtx) }()
	}

	logger.Info("workload started",
		"workers", d.cfg.Workers,
		"capacity", d.store.Capacity(),
		"duration", d.cfg.Duration,
		"ops_per_worker", d.cfg.OpsPerWorker,
	)

	var c counters
	start := time.Now()
	g, gctx := errgroup.WithContext(runCtx)
	for w := range d.cfg.Workers {
		rng := rand.New(rand.NewPCG(d.cfg.Seed, uint64(w)))
		g.Go(func() error {
			return d.work(gctx, rng, &c)
		})
	}
	err := g.Wait()
	res.Elapsed = time.Since(start)

	stopRebuilder()
	if rebuilderDone != nil {
		err = errors.Join(err, <-rebuilderDone)
		res.Rebuilds, res.RebuildApplied = rebuilder.Totals()
	}

	res.Lookups = c.lookups.Load()
	res.LookupMisses = c.lookupMisses.Load()
	res.Replacements = c.replacements.Load()
	res.MatchAlls = c.matchAlls.Load()
	res.MatchAnys = c.matchAnys.Load()
	res.SearchHits = c.searchHits.Load()

	if err != nil {
		logger.Error("workload failed", "error", err)
		return res, err
	}
	logger.Info("workload finished",
		"elapsed", res.Elapsed,
		"ops", res.Ops(),
		"replacements", res.Replacements,
		"rebuilds", res.Rebuilds,
	)
	return res, nil
}

func (d *Driver) work(ctx context.Context, rng *rand.Rand, c *counters) error {
	var limiter *rate.Limiter
	if d.cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(d.cfg.RateLimit), 1)
	}

	for i := 0; d.cfg.OpsPerWorker <= 0 || i < d.cfg.OpsPerWorker; i++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil
			}
		} else if ctx.Err() != nil {
			return nil
		}

		switch d.pick(rng) {
		case opLookup:
			c.lookups.Add(1)
			if _, ok := d.store.LookupBySlot(rng.IntN(d.store.Capacity())); !ok {
				c.lookupMisses.Add(1)
			}
		case opReplace:
			if _, _, err := d.store.ReplaceRandomProduct(); err != nil {
				return fmt.Errorf("replace: %w", err)
			}
			c.replacements.Add(1)
		case opMatchAll:
			c.matchAlls.Add(1)
			c.searchHits.Add(uint64(len(d.store.MatchAll(d.keywords(rng)))))
		case opMatchAny:
			c.matchAnys.Add(1)
			c.searchHits.Add(uint64(len(d.store.MatchAny(d.keywords(rng)))))
		}
	}
	return nil
}

func (d *Driver) pick(rng *rand.Rand) op {
	x := rng.Float64() * d.cumulative[len(d.cumulative)-1]
	for i, bound := range d.cumulative {
		if x < bound {
			return op(i)
		}
	}
	return op(len(d.cumulative) - 1)
}

func (d *Driver) keywords(rng *rand.Rand) []string {
	out := make([]string, d.cfg.KeywordsPerQuery)
	for i := range out {
		out[i] = d.vocabulary[rng.IntN(len(d.vocabulary))]
	}
	return out
}
