package prodcat_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/prodcat"
)

func TestNewRebuilderValidation(t *testing.T) {
	_, err := prodcat.NewRebuilder(nil, time.Second)
	assert.ErrorIs(t, err, prodcat.ErrInvalidArgument)

	store := newStore(t, 4, prodcat.Phased)
	_, err = prodcat.NewRebuilder(store, 0)
	assert.ErrorIs(t, err, prodcat.ErrInvalidArgument)
}

func TestRebuilderFinalRebuildOnCancel(t *testing.T) {
	store := newStore(t, 8, prodcat.Phased)
	for range 5 {
		_, _, err := store.ReplaceRandomProduct()
		require.NoError(t, err)
	}

	rb, err := prodcat.NewRebuilder(store, time.Hour)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, rb.Run(ctx))

	rebuilds, applied := rb.Totals()
	assert.Equal(t, 1, rebuilds)
	assert.Equal(t, 5, applied)
	assert.Zero(t, store.PendingChanges())
}

func TestRebuilderTicks(t *testing.T) {
	store := newStore(t, 8, prodcat.Phased)
	rb, err := prodcat.NewRebuilder(store, time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rb.Run(ctx) }()

	_, _, err = store.ReplaceRandomProduct()
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return store.PendingChanges() == 0 && store.Stats().Generation > 0
	}, 5*time.Second, time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	rebuilds, applied := rb.Totals()
	assert.GreaterOrEqual(t, rebuilds, 2)
	assert.Equal(t, 1, applied)
}

func TestRebuilderSurvivesReportSinkErrors(t *testing.T) {
	var logs bytes.Buffer
	logger := prodcat.NewLogger(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn}))
	store := newStore(t, 8, prodcat.Phased,
		prodcat.WithReportSink(failingWriter{}),
		prodcat.WithLogger(logger))

	rb, err := prodcat.NewRebuilder(store, time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rb.Run(ctx) }()

	for round := range 2 {
		for range 5 {
			_, _, err := store.ReplaceRandomProduct()
			require.NoError(t, err)
		}
		require.Eventually(t, func() bool {
			return store.PendingChanges() == 0
		}, 5*time.Second, time.Millisecond, "round %d", round)
	}

	cancel()
	require.NoError(t, <-done)

	_, applied := rb.Totals()
	assert.Equal(t, 10, applied)
	assert.Contains(t, logs.String(), "rebuild report failed")
	assert.Contains(t, logs.String(), errSink.Error())
}
