package search

import (
	"context"

	"github.com/ChizhovVadim/AttrSelect/internal/subset"
)

// Exhaustive evaluates every non-empty subset of candidates and returns the
// one with the highest quality. Masks are enumerated from 1 to 2^k-1 over the
// ascending candidate order; on ties the smaller mask wins.
//
// At most subset.MaxCandidates candidates are accepted. The cost is 2^k-1
// oracle calls, so in practice k should stay around 20 or less.
func Exhaustive(
	ctx context.Context,
	candidates []int,
	oracle Oracle,
	opts ...Option,
) (Result, error) {
	var o = buildOptions(opts)

	var encoder, err = subset.NewEncoder(candidates)
	if err != nil {
		return Result{}, &ConfigurationError{Err: err}
	}

	var total = encoder.Total()
	o.logger.Infow("exhaustive search started",
		"candidates", encoder.Width(),
		"subsets", total,
		"concurrency", o.concurrency)

	var (
		best      Result
		found     bool
		evaluated uint64
		batch     = make([]subset.Subset, 0, o.batchSize)
	)
	for mask := uint64(1); mask <= total; {
		batch = batch[:0]
		for ; mask <= total && len(batch) < o.batchSize; mask++ {
			batch = append(batch, encoder.Decode(mask))
		}

		qualities, err := evaluateAll(ctx, oracle, batch, o.concurrency)
		if err != nil {
			o.logger.Warnw("exhaustive search aborted",
				"evaluated", evaluated,
				"error", err)
			return Result{}, err
		}

		for i, q := range qualities {
			evaluated++
			if !found || q > best.Quality {
				found = true
				best.Subset = batch[i]
				best.Quality = q
			}
			o.observe(batch[i], q)
			o.progress.Progress(float64(evaluated)/float64(total), best.Quality)
		}
	}

	best.Evaluated = evaluated
	o.logger.Infow("exhaustive search finished",
		"subset", best.Subset.String(),
		"quality", best.Quality,
		"evaluated", evaluated)
	return best, nil
}
