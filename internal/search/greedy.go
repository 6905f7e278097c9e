package search

import (
	"context"

	"github.com/ChizhovVadim/AttrSelect/internal/subset"
)

// Greedy performs sequential forward selection. Each round evaluates the
// selected subset extended by every remaining candidate and accepts the first
// maximum. The search stops when candidates are exhausted, or when the best
// quality of a round is strictly less than the quality recorded for the last
// accepted attribute. The first round is always accepted.
//
// Only the previous step is compared, not the best step seen so far.
func Greedy(
	ctx context.Context,
	candidates []int,
	oracle Oracle,
	opts ...Option,
) (Trace, error) {
	var o = buildOptions(opts)
	var pool = subset.New(candidates...)

	o.logger.Infow("greedy search started",
		"candidates", len(pool),
		"concurrency", o.concurrency)

	var (
		selected = subset.Subset{}
		trace    = Trace{}
	)
	for round := 1; ; round++ {
		var (
			attrs   []int
			subsets []subset.Subset
		)
		for _, a := range pool {
			if selected.Contains(a) {
				continue
			}
			attrs = append(attrs, a)
			subsets = append(subsets, selected.With(a))
		}
		if len(attrs) == 0 {
			o.logger.Infow("greedy search exhausted candidates",
				"rounds", round-1)
			break
		}

		qualities, err := evaluateAll(ctx, oracle, subsets, o.concurrency)
		if err != nil {
			o.logger.Warnw("greedy search aborted",
				"round", round,
				"error", err)
			return nil, err
		}
		for i := range subsets {
			o.observe(subsets[i], qualities[i])
		}

		var best = firstMax(qualities)
		if len(trace) > 0 && qualities[best] < trace[len(trace)-1].Quality {
			o.logger.Infow("greedy search stopped: quality decreased",
				"round", round,
				"candidate", attrs[best],
				"quality", qualities[best],
				"previous", trace[len(trace)-1].Quality)
			break
		}

		selected = subsets[best]
		trace = append(trace, Step{Attribute: attrs[best], Quality: qualities[best]})
		o.logger.Infow("attribute added",
			"round", round,
			"attribute", attrs[best],
			"quality", qualities[best])
	}
	return trace, nil
}
