package oracle

import (
	"context"

	"github.com/ChizhovVadim/AttrSelect/internal/search"
	"github.com/ChizhovVadim/AttrSelect/internal/subset"
	"github.com/dgraph-io/ristretto/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

// Cached memoises qualities in memory. Concurrent calls for the same subset
// share one evaluation. Failures are not cached.
type Cached struct {
	inner search.Oracle
	cache *ristretto.Cache[string, float64]
	group singleflight.Group
}

func NewCached(inner search.Oracle, size int64) (*Cached, error) {
	if size <= 0 {
		size = 1
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, float64]{
		NumCounters: 10 * size,
		MaxCost:     size,
		BufferItems: 64,

		// every score costs 1, so MaxCost is an entry count
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create quality cache")
	}
	return &Cached{
		inner: inner,
		cache: cache,
	}, nil
}

func (c *Cached) Quality(ctx context.Context, attrs subset.Subset) (float64, error) {
	var key = attrs.Key()
	if q, found := c.cache.Get(key); found {
		return q, nil
	}
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		q, err := c.inner.Quality(ctx, attrs)
		if err != nil {
			return nil, err
		}
		c.cache.Set(key, q, 1)
		c.cache.Wait()
		return q, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

func (c *Cached) Close() {
	c.cache.Close()
}
