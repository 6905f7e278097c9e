package search

import (
	"context"
	"math"

	"github.com/ChizhovVadim/AttrSelect/internal/subset"
	"golang.org/x/sync/errgroup"
)

// evaluateAll scores every subset and returns the qualities in input order.
// On failure it reports the first failing subset in input order, so a
// concurrent run fails exactly like a sequential one.
func evaluateAll(
	ctx context.Context,
	oracle Oracle,
	subsets []subset.Subset,
	concurrency int,
) ([]float64, error) {
	var qualities = make([]float64, len(subsets))

	if concurrency <= 1 || len(subsets) <= 1 {
		for i, attrs := range subsets {
			var q, err = evaluateOne(ctx, oracle, attrs)
			if err != nil {
				return nil, err
			}
			qualities[i] = q
		}
		return qualities, nil
	}

	var errs = make([]error, len(subsets))
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i := range subsets {
		g.Go(func() error {
			qualities[i], errs[i] = evaluateOne(ctx, oracle, subsets[i])
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return qualities, nil
}

func evaluateOne(ctx context.Context, oracle Oracle, attrs subset.Subset) (float64, error) {
	var q, err = oracle.Quality(ctx, attrs)
	if err == nil && math.IsNaN(q) {
		err = ErrNaNQuality
	}
	if err != nil {
		return 0, &OracleEvaluationError{Subset: attrs, Err: err}
	}
	return q, nil
}

// firstMax returns the index of the first maximum.
func firstMax(qualities []float64) int {
	var best = 0
	for i := 1; i < len(qualities); i++ {
		if qualities[i] > qualities[best] {
			best = i
		}
	}
	return best
}
