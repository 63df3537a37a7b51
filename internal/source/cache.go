package source

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/richardbarrera32/agrotracker/internal/model"
)

// Cache memoizes the canonical table for the process lifetime. The first
// Load triggers exactly one fetch even under concurrent callers; afterwards
// the table is immutable shared state until Invalidate or Refresh.
type Cache struct {
	fetcher Fetcher
	group   singleflight.Group

	mu        sync.RWMutex
	table     model.PriceTable
	report    Report
	fetchedAt time.Time
	loaded    bool
}

// NewCache creates a cache backed by the given fetcher.
func NewCache(f Fetcher) *Cache {
	return &Cache{fetcher: f}
}

// Load returns the cached table, fetching it on first use. Concurrent
// first loads are collapsed into a single fetch.
func (c *Cache) Load(ctx context.Context) (model.PriceTable, error) {
	c.mu.RLock()
	if c.loaded {
		t := c.table
		c.mu.RUnlock()
		return t, nil
	}
	c.mu.RUnlock()

	_, err, _ := c.group.Do(c.fetcher.Name(), func() (interface{}, error) {
		// Re-check: another caller may have populated the cache while
		// this one waited on the flight group.
		c.mu.RLock()
		loaded := c.loaded
		c.mu.RUnlock()
		if loaded {
			return nil, nil
		}
		_, _, err := c.Refresh(ctx)
		return nil, err
	})
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.table, nil
}

// Refresh fetches the table unconditionally and replaces the cached copy.
// On failure the previous table (if any) is kept.
func (c *Cache) Refresh(ctx context.Context) (model.PriceTable, Report, error) {
	table, rep, err := c.fetcher.FetchTable(ctx)
	if err != nil {
		return nil, Report{}, err
	}

	c.mu.Lock()
	c.table = table
	c.report = rep
	c.fetchedAt = time.Now()
	c.loaded = true
	c.mu.Unlock()

	return table, rep, nil
}

// Invalidate discards the cached table; the next Load refetches.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.table = nil
	c.report = Report{}
	c.loaded = false
	c.mu.Unlock()
}

// Inject replaces the cached table directly, bypassing the fetcher.
// Intended for tests.
func (c *Cache) Inject(table model.PriceTable) {
	c.mu.Lock()
	c.table = table
	c.report = Report{}
	c.fetchedAt = time.Now()
	c.loaded = true
	c.mu.Unlock()
}

// LastRefresh reports the normalization counters and time of the most
// recent successful fetch.
func (c *Cache) LastRefresh() (Report, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.report, c.fetchedAt, c.loaded
}
