package prodcat

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/hupe1980/prodcat/model"
)

type options struct {
	strategy         Strategy
	matchAll         MatchAllAlgorithm
	ids              model.IDAllocator
	pickSlot         func(n int) int
	metricsCollector MetricsCollector
	logger           *Logger
	reportSink       io.Writer
	reportCSV        bool
}

// Option configures a Store.
type Option func(*options)

// WithStrategy selects the concurrency strategy. The default is Exclusive.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithMatchAllAlgorithm selects the intersection algorithm used by MatchAll.
//
// DefaultMatchAll uses SetBased for the Exclusive strategy and SortedMerge
// for LockFree and Phased.
func WithMatchAllAlgorithm(a MatchAllAlgorithm) Option {
	return func(o *options) {
		o.matchAll = a
	}
}

// WithIDAllocator configures the source of product ids used to populate the
// catalog and by ReplaceRandomProduct. Ids must be unique and never equal to
// model.EmptySlot.
//
// If nil is passed, a model.Sequence starting at 0 is used.
func WithIDAllocator(ids model.IDAllocator) Option {
	return func(o *options) {
		o.ids = ids
	}
}

// WithSlotPicker configures how replacements choose a slot. pick receives the
// capacity and must return a value in [0, n). The default picks uniformly at
// random.
//
// Example pinning every replacement to slot 3:
//
//	store, _ := prodcat.New(10, gen, prodcat.WithSlotPicker(func(int) int { return 3 }))
func WithSlotPicker(pick func(n int) int) Option {
	return func(o *options) {
		o.pickSlot = pick
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &prodcat.BasicMetricsCollector{}
//	store, _ := prodcat.New(1000, gen, prodcat.WithMetricsCollector(metrics))
//	// ... use store ...
//	stats := metrics.GetStats()
//	fmt.Printf("Replacements: %d, Avg latency: %dns\n", stats.ReplaceCount, stats.ReplaceAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithReportSink sets the writer receiving Report output and the rebuild
// start/finish lines of the Phased strategy. The default is os.Stdout.
func WithReportSink(w io.Writer) Option {
	return func(o *options) {
		o.reportSink = w
	}
}

// WithCSVReport switches report output from human-readable text to
// comma-separated lines.
func WithCSVReport(csv bool) Option {
	return func(o *options) {
		o.reportCSV = csv
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		strategy:         Exclusive,
		matchAll:         DefaultMatchAll,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		reportSink:       os.Stdout,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.ids == nil {
		o.ids = model.NewSequence(0)
	}
	if o.pickSlot == nil {
		o.pickSlot = rand.IntN
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.reportSink == nil {
		o.reportSink = io.Discard
	}
	if o.matchAll == DefaultMatchAll {
		if o.strategy == Exclusive {
			o.matchAll = SetBased
		} else {
			o.matchAll = SortedMerge
		}
	}
	return o
}
