package inversecache

import (
	"testing"

	"github.com/on-the-ground/ternary_index/relation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cell uint64

func (c cell) ID() relation.ID { return relation.ID(c) }

func TestCache_ExportsPrometheusMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	cache, err := NewWithRegisterer(4, nil, reg)
	require.NoError(t, err)
	defer cache.Close()

	table := relation.New[cell, cell, cell](relation.DefaultConfig(), nil)
	table.Insert(1, 2, 3)

	cache.Get(table)
	cache.Get(table)
	cache.Get(table)

	assert.Equal(t, 2.0, testutil.ToFloat64(cache.metrics.hits))
	assert.Equal(t, 1.0, testutil.ToFloat64(cache.metrics.misses))

	count, err := testutil.GatherAndCount(reg,
		"ternary_index_inversecache_hits_total",
		"ternary_index_inversecache_misses_total",
		"ternary_index_inversecache_rebuild_duration_seconds",
	)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestCache_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewWithRegisterer(4, nil, reg)
	require.NoError(t, err)
	defer first.Close()

	assert.Panics(t, func() {
		_, _ = NewWithRegisterer(4, nil, reg)
	})
}

func TestCache_UnregisteredMetricsStillCount(t *testing.T) {
	cache, err := New(4, nil)
	require.NoError(t, err)
	defer cache.Close()

	table := relation.New[cell, cell, cell](relation.DefaultConfig(), nil)
	table.Insert(1, 2, 3)
	cache.Get(table)

	assert.Equal(t, 1.0, testutil.ToFloat64(cache.metrics.misses))
}
