package benchmark

import (
	"context"
	"time"

	"github.com/ChizhovVadim/AttrSelect/internal/dataset"
	"github.com/ChizhovVadim/AttrSelect/internal/ml"
	"github.com/ChizhovVadim/AttrSelect/internal/quality"
	"github.com/ChizhovVadim/AttrSelect/internal/subset"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Entry is the cross-validated performance of one classifier with Positive
// as the positive class.
type Entry struct {
	Classifier  string             `yaml:"classifier"`
	AUC         float64            `yaml:"auc"`
	Sensitivity float64            `yaml:"sensitivity"`
	Specificity float64            `yaml:"specificity"`
	MCC         float64            `yaml:"mcc"`
	Correct     int                `yaml:"correct"`
	Total       int                `yaml:"total"`
	Duration    time.Duration      `yaml:"duration"`
	ROC         []quality.ROCPoint `yaml:"roc,omitempty"`
}

type Benchmark struct {
	Dataset     *dataset.Dataset
	Class       int
	Positive    int
	Folds       int
	Seed        int64
	Concurrency int
	Threads     int
	Logger      *zap.SugaredLogger
}

// Run evaluates every classifier on all non-class attributes. Classifiers
// run concurrently; entries come back in the order of names. Any failure
// fails the whole benchmark.
func (b *Benchmark) Run(ctx context.Context, names []string) ([]Entry, error) {
	var logger = b.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if b.Class < 0 || b.Class >= b.Dataset.NumAttributes() {
		return nil, errors.Errorf("class index %d out of range", b.Class)
	}
	var classes = len(b.Dataset.Attributes[b.Class].Values)
	if b.Positive < 0 || b.Positive >= classes {
		return nil, errors.Errorf("positive class %d out of range [0, %d)", b.Positive, classes)
	}
	var makers = make([]ml.Maker, len(names))
	for i, name := range names {
		var maker, err = ml.Lookup(name)
		if err != nil {
			return nil, err
		}
		makers[i] = maker
	}
	var attrs = subset.New(b.Dataset.Candidates(b.Class)...)

	var entries = make([]Entry, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(b.Concurrency, 1))
	for i := range names {
		g.Go(func() error {
			var cv = quality.CrossValidation{
				Dataset: b.Dataset,
				Class:   b.Class,
				Maker:   makers[i],
				Folds:   b.Folds,
				Seed:    b.Seed,
				Threads: b.Threads,
			}
			var start = time.Now()
			evaluation, err := cv.Run(ctx, attrs)
			if err != nil {
				return errors.Wrapf(err, "classifier %s", names[i])
			}
			entries[i] = Entry{
				Classifier:  names[i],
				AUC:         evaluation.AUC(b.Positive),
				Sensitivity: evaluation.TruePositiveRate(b.Positive),
				Specificity: evaluation.TrueNegativeRate(b.Positive),
				MCC:         evaluation.MCC(b.Positive),
				Correct:     evaluation.Correct(),
				Total:       evaluation.Total(),
				Duration:    time.Since(start),
				ROC:         evaluation.ROC(b.Positive),
			}
			logger.Infow("classifier evaluated",
				"classifier", names[i],
				"auc", entries[i].AUC,
				"mcc", entries[i].MCC,
				"duration", entries[i].Duration)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}
