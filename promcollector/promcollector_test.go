package promcollector

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/prodcat"
	"github.com/hupe1980/prodcat/testutil"
)

func TestCollectorRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg)
	require.NoError(t, err)

	c.RecordLookup(time.Microsecond, true)
	c.RecordLookup(time.Microsecond, false)
	c.RecordReplace(time.Microsecond, nil)
	c.RecordReplace(time.Microsecond, errors.New("boom"))
	c.RecordSearch("all", 2, 5, time.Millisecond)
	c.RecordRebuild(7, time.Millisecond)
	c.RecordSlotCollision()

	assert.Equal(t, 1.0, promtest.ToFloat64(c.ops.WithLabelValues("lookup", "found")))
	assert.Equal(t, 1.0, promtest.ToFloat64(c.ops.WithLabelValues("lookup", "absent")))
	assert.Equal(t, 1.0, promtest.ToFloat64(c.ops.WithLabelValues("replace", "error")))
	assert.Equal(t, 1.0, promtest.ToFloat64(c.ops.WithLabelValues("match_all", "success")))
	assert.Equal(t, 7.0, promtest.ToFloat64(c.rebuildApplied))
	assert.Equal(t, 1.0, promtest.ToFloat64(c.slotCollisions))

	_, err = New(reg)
	assert.Error(t, err, "metrics cannot be registered twice")
}

func TestCollectorWiredIntoStore(t *testing.T) {
	reg := prometheus.NewRegistry()
	mc, err := New(reg)
	require.NoError(t, err)

	store, err := prodcat.New(10, testutil.NewFruitGenerator(),
		prodcat.WithStrategy(prodcat.Phased),
		prodcat.WithMetricsCollector(mc),
		prodcat.WithReportSink(io.Discard))
	require.NoError(t, err)

	_, _, err = store.ReplaceRandomProduct()
	require.NoError(t, err)
	store.MatchAny([]string{"red"})
	_, err = store.Rebuild()
	require.NoError(t, err)

	assert.Equal(t, 1.0, promtest.ToFloat64(mc.ops.WithLabelValues("replace", "success")))
	assert.Equal(t, 1.0, promtest.ToFloat64(mc.ops.WithLabelValues("match_any", "success")))
	assert.Equal(t, 1.0, promtest.ToFloat64(mc.rebuildApplied))
}

func TestStoreCollector(t *testing.T) {
	store, err := prodcat.New(10, testutil.NewFruitGenerator(),
		prodcat.WithStrategy(prodcat.LockFree),
		prodcat.WithReportSink(io.Discard))
	require.NoError(t, err)

	sc := NewStoreCollector(store)
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(sc))

	// 2 single gauges, 4 per-field pairs, 2 more single gauges.
	assert.Equal(t, 12, promtest.CollectAndCount(sc))

	families, err := reg.Gather()
	require.NoError(t, err)
	var products float64
	for _, mf := range families {
		if mf.GetName() == "prodcat_products" {
			m := mf.GetMetric()[0]
			products = m.GetGauge().GetValue()
			require.Len(t, m.GetLabel(), 1)
			assert.Equal(t, "lock-free", m.GetLabel()[0].GetValue())
		}
	}
	assert.Equal(t, 10.0, products)
}
