// Package promcollector exports catalog metrics to Prometheus.
//
// Collector implements prodcat.MetricsCollector and records per-operation
// counters and latencies. StoreCollector exposes the point-in-time
// statistics of a Store as gauges on every scrape.
//
//	reg := prometheus.NewRegistry()
//	mc, _ := promcollector.New(reg)
//	store, _ := prodcat.New(1000, gen, prodcat.WithMetricsCollector(mc))
//	reg.MustRegister(promcollector.NewStoreCollector(store))
package promcollector

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/prodcat"
)

const namespace = "prodcat"

// Collector is a prodcat.MetricsCollector backed by Prometheus metrics.
type Collector struct {
	opLatency      *prometheus.HistogramVec
	ops            *prometheus.CounterVec
	searchResults  *prometheus.HistogramVec
	rebuildApplied prometheus.Counter
	slotCollisions prometheus.Counter
}

var _ prodcat.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers its metrics with reg.
// If reg is nil, prometheus.DefaultRegisterer is used.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of catalog operations",
			Buckets:   []float64{1e-6, 1e-5, 1e-4, 1e-3, 1e-2, 0.1, 1},
		}, []string{"op"}),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total catalog operations by outcome",
		}, []string{"op", "status"}),
		searchResults: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of products returned by keyword searches",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"mode"}),
		rebuildApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rebuild_applied_changes_total",
			Help:      "Change log records applied by rebuilds",
		}),
		slotCollisions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_collisions_total",
			Help:      "Lock-free slot claims that found the slot already claimed",
		}),
	}
	for _, m := range []prometheus.Collector{c.opLatency, c.ops, c.searchResults, c.rebuildApplied, c.slotCollisions} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func status(ok bool) string {
	if ok {
		return "success"
	}
	return "error"
}

// RecordLookup implements prodcat.MetricsCollector.
func (c *Collector) RecordLookup(d time.Duration, found bool) {
	c.opLatency.WithLabelValues("lookup").Observe(d.Seconds())
	if found {
		c.ops.WithLabelValues("lookup", "found").Inc()
	} else {
		c.ops.WithLabelValues("lookup", "absent").Inc()
	}
}

// RecordReplace implements prodcat.MetricsCollector.
func (c *Collector) RecordReplace(d time.Duration, err error) {
	c.opLatency.WithLabelValues("replace").Observe(d.Seconds())
	c.ops.WithLabelValues("replace", status(err == nil)).Inc()
}

// RecordSearch implements prodcat.MetricsCollector.
func (c *Collector) RecordSearch(mode string, _, results int, d time.Duration) {
	op := "match_" + mode
	c.opLatency.WithLabelValues(op).Observe(d.Seconds())
	c.ops.WithLabelValues(op, "success").Inc()
	c.searchResults.WithLabelValues(mode).Observe(float64(results))
}

// RecordRebuild implements prodcat.MetricsCollector.
func (c *Collector) RecordRebuild(applied int, d time.Duration) {
	c.opLatency.WithLabelValues("rebuild").Observe(d.Seconds())
	c.ops.WithLabelValues("rebuild", "success").Inc()
	c.rebuildApplied.Add(float64(applied))
}

// RecordSlotCollision implements prodcat.MetricsCollector.
func (c *Collector) RecordSlotCollision() {
	c.slotCollisions.Inc()
}

// StoreCollector is a prometheus.Collector reporting Store statistics.
type StoreCollector struct {
	store *prodcat.Store

	products      *prometheus.Desc
	occupied      *prometheus.Desc
	textBytes     *prometheus.Desc
	indexEntries  *prometheus.Desc
	indexPostings *prometheus.Desc
	indexBytes    *prometheus.Desc
	pending       *prometheus.Desc
	generation    *prometheus.Desc
}

// NewStoreCollector creates a StoreCollector for store.
func NewStoreCollector(store *prodcat.Store) *StoreCollector {
	labels := prometheus.Labels{"strategy": store.Strategy().String()}
	desc := func(name, help string, variable ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, variable, labels)
	}
	return &StoreCollector{
		store:         store,
		products:      desc("products", "Products in the primary map"),
		occupied:      desc("occupied_slots", "Slots currently holding a product"),
		textBytes:     desc("text_bytes", "Combined length of product text", "field"),
		indexEntries:  desc("index_entries", "Distinct words in a keyword index", "field"),
		indexPostings: desc("index_postings", "Word memberships in a keyword index", "field"),
		indexBytes:    desc("index_bucket_bytes", "Size of keyword index id sets", "field"),
		pending:       desc("pending_changes", "Queued changes awaiting a rebuild"),
		generation:    desc("snapshot_generation", "Rebuilds published so far"),
	}
}

// Describe implements prometheus.Collector.
func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{c.products, c.occupied, c.textBytes, c.indexEntries, c.indexPostings, c.indexBytes, c.pending, c.generation} {
		ch <- d
	}
}

// Collect implements prometheus.Collector.
func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	st := c.store.Stats()
	gauge := func(d *prometheus.Desc, v float64, labels ...string) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v, labels...)
	}
	gauge(c.products, float64(st.Products))
	gauge(c.occupied, float64(st.OccupiedSlots))
	gauge(c.textBytes, float64(st.NameBytes), "name")
	gauge(c.textBytes, float64(st.DescriptionBytes), "description")
	gauge(c.indexEntries, float64(st.NameIndex.Entries), "name")
	gauge(c.indexEntries, float64(st.DescriptionIndex.Entries), "description")
	gauge(c.indexPostings, float64(st.NameIndex.Postings), "name")
	gauge(c.indexPostings, float64(st.DescriptionIndex.Postings), "description")
	gauge(c.indexBytes, float64(st.NameIndex.BucketBytes), "name")
	gauge(c.indexBytes, float64(st.DescriptionIndex.BucketBytes), "description")
	gauge(c.pending, float64(st.PendingChanges))
	gauge(c.generation, float64(st.Generation))
}
