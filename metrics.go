package prodcat

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus;
// see package promcollector for a ready-made implementation.
type MetricsCollector interface {
	// RecordLookup is called after each lookup by slot.
	// found is false when the slot resolved to no product.
	RecordLookup(duration time.Duration, found bool)

	// RecordReplace is called after each replacement, err is nil if successful.
	RecordReplace(duration time.Duration, err error)

	// RecordSearch is called after each keyword search.
	// mode is "all" or "any", results is the number of products returned.
	RecordSearch(mode string, keywords, results int, duration time.Duration)

	// RecordRebuild is called after each Phased rebuild with the number of
	// change log records applied.
	RecordRebuild(applied int, duration time.Duration)

	// RecordSlotCollision is called each time a Lock-Free replacement picked a
	// slot that a concurrent replacement had already claimed.
	RecordSlotCollision()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLookup(time.Duration, bool)             {}
func (NoopMetricsCollector) RecordReplace(time.Duration, error)           {}
func (NoopMetricsCollector) RecordSearch(string, int, int, time.Duration) {}
func (NoopMetricsCollector) RecordRebuild(int, time.Duration)             {}
func (NoopMetricsCollector) RecordSlotCollision()                         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LookupCount       atomic.Int64
	LookupMisses      atomic.Int64
	ReplaceCount      atomic.Int64
	ReplaceErrors     atomic.Int64
	ReplaceTotalNanos atomic.Int64
	SearchCount       atomic.Int64
	SearchResults     atomic.Int64
	SearchTotalNanos  atomic.Int64
	RebuildCount      atomic.Int64
	RebuildApplied    atomic.Int64
	SlotCollisions    atomic.Int64
}

// RecordLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLookup(_ time.Duration, found bool) {
	b.LookupCount.Add(1)
	if !found {
		b.LookupMisses.Add(1)
	}
}

// RecordReplace implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReplace(duration time.Duration, err error) {
	b.ReplaceCount.Add(1)
	b.ReplaceTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ReplaceErrors.Add(1)
	}
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(_ string, _, results int, duration time.Duration) {
	b.SearchCount.Add(1)
	b.SearchResults.Add(int64(results))
	b.SearchTotalNanos.Add(duration.Nanoseconds())
}

// RecordRebuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRebuild(applied int, _ time.Duration) {
	b.RebuildCount.Add(1)
	b.RebuildApplied.Add(int64(applied))
}

// RecordSlotCollision implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSlotCollision() {
	b.SlotCollisions.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LookupCount:     b.LookupCount.Load(),
		LookupMisses:    b.LookupMisses.Load(),
		ReplaceCount:    b.ReplaceCount.Load(),
		ReplaceErrors:   b.ReplaceErrors.Load(),
		ReplaceAvgNanos: avgNanos(b.ReplaceTotalNanos.Load(), b.ReplaceCount.Load()),
		SearchCount:     b.SearchCount.Load(),
		SearchResults:   b.SearchResults.Load(),
		SearchAvgNanos:  avgNanos(b.SearchTotalNanos.Load(), b.SearchCount.Load()),
		RebuildCount:    b.RebuildCount.Load(),
		RebuildApplied:  b.RebuildApplied.Load(),
		SlotCollisions:  b.SlotCollisions.Load(),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LookupCount     int64
	LookupMisses    int64
	ReplaceCount    int64
	ReplaceErrors   int64
	ReplaceAvgNanos int64
	SearchCount     int64
	SearchResults   int64
	SearchAvgNanos  int64
	RebuildCount    int64
	RebuildApplied  int64
	SlotCollisions  int64
}
