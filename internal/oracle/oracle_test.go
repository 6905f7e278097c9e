package oracle

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ChizhovVadim/AttrSelect/internal/search"
	"github.com/ChizhovVadim/AttrSelect/internal/store"
	"github.com/ChizhovVadim/AttrSelect/internal/subset"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUntrainable = errors.New("untrainable")

type countingOracle struct {
	calls atomic.Int32
}

func (o *countingOracle) Quality(ctx context.Context, attrs subset.Subset) (float64, error) {
	o.calls.Add(1)
	if attrs.Contains(13) {
		return 0, errUntrainable
	}
	return float64(len(attrs)), nil
}

func TestCachedMemoises(t *testing.T) {
	var inner = &countingOracle{}
	var cached, err = NewCached(inner, 100)
	require.NoError(t, err)
	defer cached.Close()

	for i := 0; i < 3; i++ {
		q, err := cached.Quality(context.Background(), subset.New(1, 2))
		require.NoError(t, err)
		assert.Equal(t, 2.0, q)
	}
	assert.Equal(t, int32(1), inner.calls.Load())

	for i := 0; i < 2; i++ {
		_, err := cached.Quality(context.Background(), subset.New(13))
		assert.ErrorIs(t, err, errUntrainable)
	}
	assert.Equal(t, int32(3), inner.calls.Load())
}

func TestCachedConcurrentCallers(t *testing.T) {
	var inner = &countingOracle{}
	var cached, err = NewCached(inner, 100)
	require.NoError(t, err)
	defer cached.Close()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q, err := cached.Quality(context.Background(), subset.New(4, 5, 6))
			assert.NoError(t, err)
			assert.Equal(t, 3.0, q)
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, inner.calls.Load(), int32(16))
	assert.GreaterOrEqual(t, inner.calls.Load(), int32(1))
}

func TestJournaledResumes(t *testing.T) {
	var journal, err = store.OpenInMemory()
	require.NoError(t, err)
	defer journal.Close()

	var first = &countingOracle{}
	var oracle = NewJournaled(first, journal, "weather/play/naivebayes", nil)
	_, err = search.Exhaustive(context.Background(), []int{1, 2, 3}, oracle)
	require.NoError(t, err)
	assert.Equal(t, int32(7), first.calls.Load())

	// a second run with the same namespace never reaches the inner oracle
	var second = &countingOracle{}
	oracle = NewJournaled(second, journal, "weather/play/naivebayes", nil)
	res, err := search.Exhaustive(context.Background(), []int{1, 2, 3}, oracle)
	require.NoError(t, err)
	assert.Equal(t, int32(0), second.calls.Load())
	assert.Equal(t, subset.Subset{1, 2, 3}, res.Subset)

	// failures are not persisted
	oracle = NewJournaled(second, journal, "weather/play/naivebayes", nil)
	_, err = oracle.Quality(context.Background(), subset.New(13))
	assert.ErrorIs(t, err, errUntrainable)
	n, err := journal.Count("weather/play/naivebayes")
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestMetered(t *testing.T) {
	var reg = prometheus.NewRegistry()
	var metrics, err = NewMetrics(reg)
	require.NoError(t, err)
	var oracle = NewMetered(&countingOracle{}, metrics)

	_, err = oracle.Quality(context.Background(), subset.New(1))
	require.NoError(t, err)
	_, err = oracle.Quality(context.Background(), subset.New(2, 3))
	require.NoError(t, err)
	_, err = oracle.Quality(context.Background(), subset.New(13))
	require.Error(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Evaluations.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Evaluations.WithLabelValues("error")))
	count, err := testutil.GatherAndCount(reg, "attrsel_oracle_evaluation_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = NewMetrics(reg)
	assert.Error(t, err, "duplicate registration")
}
