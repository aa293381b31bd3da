// Package inversecache memoizes InverseTable rebuilds by table content.
//
// Two tables holding the same tuples share a fingerprint and therefore a
// cached InverseTable; the cached snapshot's provenance names whichever
// table built it first.
package inversecache

import (
	"errors"
	"fmt"

	ristretto "github.com/dgraph-io/ristretto/v2"
	"github.com/on-the-ground/ternary_index/relation"
	"github.com/on-the-ground/ternary_index/shared/helper"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const defaultMaxEntries = 64

var ErrInvalidMaxEntries = errors.New("max entries should be greater than 0")

// Source is satisfied by every *relation.Table.
type Source interface {
	Fingerprint() uint64
	Inverse() *relation.InverseTable
}

type Cache struct {
	cache   *ristretto.Cache[uint64, *relation.InverseTable]
	metrics *metrics
	logger  *zap.Logger
}

// New creates a cache whose Prometheus collectors are not registered anywhere.
func New(maxEntries int64, logger *zap.Logger) (*Cache, error) {
	return NewWithRegisterer(maxEntries, logger, nil)
}

// NewWithRegisterer creates a cache and registers its collectors on reg.
// Registering two caches on the same reg panics on the duplicate collectors.
func NewWithRegisterer(maxEntries int64, logger *zap.Logger, reg prometheus.Registerer) (*Cache, error) {
	if maxEntries <= 0 {
		return nil, ErrInvalidMaxEntries
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cache, err := ristretto.NewCache(&ristretto.Config[uint64, *relation.InverseTable]{
		NumCounters:        maxEntries * 10, // ~10x the entries
		MaxCost:            maxEntries,      // every entry costs 1
		BufferItems:        64,
		Metrics:            true,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("fail to create inverse cache: %w", err)
	}
	return &Cache{cache: cache, metrics: newMetrics(reg), logger: logger}, nil
}

// NewFromBindings reads relation.ConfigInverseCacheMaxEntries, defaulting to 64 entries.
func NewFromBindings(bindings map[string]any, logger *zap.Logger) (*Cache, error) {
	maxEntries, found, err := helper.LookupTyped[int](bindings, relation.ConfigInverseCacheMaxEntries)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", relation.ErrInvalidConfig, err)
	}
	if !found {
		maxEntries = defaultMaxEntries
	}
	return New(int64(maxEntries), logger)
}

// Get returns the InverseTable for the current content of src, rebuilding on a miss.
func (c *Cache) Get(src Source) *relation.InverseTable {
	fp := src.Fingerprint()
	if inv, ok := c.cache.Get(fp); ok {
		c.metrics.hits.Inc()
		c.logger.Debug("inverse cache hit", zap.Uint64("fingerprint", fp))
		return inv
	}

	inv := src.Inverse()
	c.metrics.misses.Inc()
	c.metrics.rebuilds.Observe(inv.Span().Duration().Seconds())
	if !c.cache.Set(fp, inv, 1) {
		c.logger.Debug("inverse cache set dropped", zap.Uint64("fingerprint", fp))
		return inv
	}
	// Sets are applied asynchronously
	c.cache.Wait()
	c.logger.Debug("inverse cache miss", zap.Uint64("fingerprint", fp))
	return inv
}

// Forget drops the entry for the current content of src.
func (c *Cache) Forget(src Source) {
	c.cache.Del(src.Fingerprint())
}

type Stats struct {
	Hits   uint64
	Misses uint64
}

func (c *Cache) Stats() Stats {
	return Stats{
		Hits:   c.cache.Metrics.Hits(),
		Misses: c.cache.Metrics.Misses(),
	}
}

func (c *Cache) Close() {
	c.cache.Close()
}
