package workload

import (
	"context"
	"io"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/prodcat"
	"github.com/hupe1980/prodcat/internal/config"
	"github.com/hupe1980/prodcat/testutil"
	"github.com/hupe1980/prodcat/textgen"
)

func newStore(t *testing.T, cfg config.Config) *prodcat.Store {
	t.Helper()
	gen := textgen.New(textgen.DefaultDictionary(), textgen.WithSeed(cfg.Seed))
	opts := append(cfg.Options(), prodcat.WithReportSink(io.Discard))
	store, err := prodcat.New(cfg.Capacity, gen, opts...)
	require.NoError(t, err)
	return store
}

func testConfig(strategy prodcat.Strategy) config.Config {
	cfg := config.DefaultConfig()
	cfg.Capacity = 50
	cfg.Strategy = strategy.String()
	cfg.Workers = 4
	cfg.Duration = 0
	cfg.OpsPerWorker = 500
	cfg.RebuildInterval = time.Millisecond
	return cfg
}

func TestDriverRunsFixedOperations(t *testing.T) {
	vocab := testutil.Fruits
	for _, s := range []prodcat.Strategy{prodcat.Exclusive, prodcat.LockFree, prodcat.Phased} {
		t.Run(s.String(), func(t *testing.T) {
			cfg := testConfig(s)
			store := newStore(t, cfg)

			d, err := New(store, cfg, vocab, nil)
			require.NoError(t, err)

			res, err := d.Run(context.Background())
			require.NoError(t, err)
			assert.NotEmpty(t, res.RunID)
			assert.Equal(t, uint64(cfg.Workers*cfg.OpsPerWorker), res.Ops())
			assert.Positive(t, res.Replacements)

			if s == prodcat.Phased {
				assert.Positive(t, res.Rebuilds)
				assert.Equal(t, int(res.Replacements), res.RebuildApplied)
				assert.Zero(t, store.PendingChanges())
			} else {
				assert.Zero(t, res.Rebuilds)
			}
			require.NoError(t, testutil.CheckSlots(store))
			assert.Equal(t, cfg.Capacity, store.Stats().Products)
		})
	}
}

func TestDriverStopsAfterDuration(t *testing.T) {
	cfg := testConfig(prodcat.Phased)
	cfg.OpsPerWorker = 0
	cfg.Duration = 50 * time.Millisecond
	store := newStore(t, cfg)

	d, err := New(store, cfg, testutil.Fruits, nil)
	require.NoError(t, err)

	res, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Positive(t, res.Ops())
	assert.Less(t, res.Elapsed, 5*time.Second)
	assert.Zero(t, store.PendingChanges())
}

func TestDriverRateLimit(t *testing.T) {
	cfg := testConfig(prodcat.Exclusive)
	cfg.Workers = 1
	cfg.OpsPerWorker = 0
	cfg.Duration = 100 * time.Millisecond
	cfg.RateLimit = 50
	store := newStore(t, cfg)

	d, err := New(store, cfg, testutil.Fruits, nil)
	require.NoError(t, err)

	res, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Ops(), uint64(10))
}

func TestDriverCancel(t *testing.T) {
	cfg := testConfig(prodcat.LockFree)
	cfg.OpsPerWorker = 0
	cfg.Duration = time.Hour
	store := newStore(t, cfg)

	d, err := New(store, cfg, testutil.Fruits, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)
	_, err = d.Run(ctx)
	require.NoError(t, err)
}

func TestNewValidation(t *testing.T) {
	cfg := testConfig(prodcat.Exclusive)
	store := newStore(t, cfg)

	_, err := New(nil, cfg, testutil.Fruits, nil)
	assert.ErrorIs(t, err, prodcat.ErrInvalidArgument)

	_, err = New(store, cfg, nil, nil)
	assert.ErrorIs(t, err, ErrNoVocabulary)

	cfg.Mix = config.Mix{Lookup: 1, Replace: 1}
	_, err = New(store, cfg, nil, nil)
	require.NoError(t, err, "no searches need no vocabulary")

	cfg.Workers = 0
	_, err = New(store, cfg, testutil.Fruits, nil)
	assert.Error(t, err)
}

func TestPickHonorsWeights(t *testing.T) {
	cfg := testConfig(prodcat.Exclusive)
	cfg.Mix = config.Mix{Replace: 1}
	d, err := New(newStore(t, cfg), cfg, nil, nil)
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(1, 2))
	for range 100 {
		assert.Equal(t, opReplace, d.pick(rng))
	}
}
