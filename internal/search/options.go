package search

import (
	"github.com/ChizhovVadim/AttrSelect/internal/subset"
	"go.uber.org/zap"
)

type options struct {
	concurrency int
	batchSize   int
	progress    ProgressSink
	observer    func(Evaluation)
	logger      *zap.SugaredLogger
}

type Option func(*options)

// WithConcurrency lets up to n oracle calls run at once. Selection still
// happens in enumeration order, so results match the sequential search.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

func WithProgress(sink ProgressSink) Option {
	return func(o *options) {
		if sink != nil {
			o.progress = sink
		}
	}
}

// WithObserver receives every evaluation in enumeration order.
func WithObserver(f func(Evaluation)) Option {
	return func(o *options) {
		o.observer = f
	}
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) *options {
	var o = &options{
		concurrency: 1,
		progress:    nopProgress{},
		logger:      zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(o)
	}
	// exhaustive search evaluates masks in chunks of this size
	o.batchSize = 4 * o.concurrency
	if o.concurrency == 1 {
		o.batchSize = 1
	}
	return o
}

func (o *options) observe(attrs subset.Subset, quality float64) {
	if o.observer != nil {
		o.observer(Evaluation{Subset: attrs, Quality: quality})
	}
}
