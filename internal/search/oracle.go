package search

import (
	"context"

	"github.com/ChizhovVadim/AttrSelect/internal/subset"
)

// Oracle scores an attribute subset. Calls are expected to be expensive and
// deterministic for the same subset.
type Oracle interface {
	Quality(ctx context.Context, attrs subset.Subset) (float64, error)
}

type OracleFunc func(ctx context.Context, attrs subset.Subset) (float64, error)

func (f OracleFunc) Quality(ctx context.Context, attrs subset.Subset) (float64, error) {
	return f(ctx, attrs)
}

// ProgressSink receives (fraction complete, best quality so far) after every
// evaluation of an exhaustive search. It is observational only.
type ProgressSink interface {
	Progress(fraction, bestQuality float64)
}

type ProgressFunc func(fraction, bestQuality float64)

func (f ProgressFunc) Progress(fraction, bestQuality float64) {
	f(fraction, bestQuality)
}

type nopProgress struct{}

func (nopProgress) Progress(float64, float64) {}

// Evaluation is one scored subset, in the order the search consumed it.
type Evaluation struct {
	Subset  subset.Subset
	Quality float64
}

// Result is the outcome of an exhaustive search.
type Result struct {
	Subset    subset.Subset
	Quality   float64
	Evaluated uint64
}

// Step is one accepted attribute of a greedy search together with the
// quality of the selected subset after adding it.
type Step struct {
	Attribute int
	Quality   float64
}

type Trace []Step

func (t Trace) Attributes() subset.Subset {
	var attrs = make([]int, len(t))
	for i, step := range t {
		attrs[i] = step.Attribute
	}
	return subset.New(attrs...)
}
