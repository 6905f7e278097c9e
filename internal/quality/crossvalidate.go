package quality

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/ChizhovVadim/AttrSelect/internal/dataset"
	"github.com/ChizhovVadim/AttrSelect/internal/ml"
	"github.com/ChizhovVadim/AttrSelect/internal/subset"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// CrossValidation describes a stratified k-fold evaluation of one classifier.
type CrossValidation struct {
	Dataset *dataset.Dataset
	Class   int
	Maker   ml.Maker
	Folds   int
	Seed    int64
	Threads int
}

// Run trains on k-1 folds and predicts the remaining one, k times. Folds run
// in parallel; predictions are merged in fold order so the evaluation does
// not depend on scheduling.
func (cv *CrossValidation) Run(ctx context.Context, attrs subset.Subset) (*Evaluation, error) {
	if attrs.Len() == 0 {
		return nil, errors.New("empty attribute subset")
	}
	if attrs.Contains(cv.Class) {
		return nil, fmt.Errorf("subset %v contains the class attribute %d", attrs, cv.Class)
	}
	for _, a := range attrs {
		if a < 0 || a >= cv.Dataset.NumAttributes() {
			return nil, fmt.Errorf("attribute %d out of range", a)
		}
	}
	if cv.Folds < 2 {
		return nil, fmt.Errorf("need at least 2 folds, got %d", cv.Folds)
	}
	if cv.Dataset.NumRows() < cv.Folds {
		return nil, fmt.Errorf("%d rows cannot be split into %d folds", cv.Dataset.NumRows(), cv.Folds)
	}

	labels, classes, err := cv.Dataset.Labels(cv.Class)
	if err != nil {
		return nil, err
	}
	var x = cv.Dataset.Features(attrs)
	var folds = stratifiedFolds(labels, classes, cv.Folds, cv.Seed)

	var results = make([][]Prediction, cv.Folds)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cv.Threads, 1))
	for f := range folds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var predictions, err = cv.runFold(x, labels, classes, folds, f)
			if err != nil {
				return errors.Wrapf(err, "fold %d", f+1)
			}
			results[f] = predictions
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var evaluation = NewEvaluation(classes)
	for _, predictions := range results {
		for _, p := range predictions {
			evaluation.Add(p)
		}
	}
	return evaluation, nil
}

func (cv *CrossValidation) runFold(
	x [][]float64,
	labels []int,
	classes int,
	folds [][]int,
	test int,
) ([]Prediction, error) {
	var trainX [][]float64
	var trainY []int
	for f, rows := range folds {
		if f == test {
			continue
		}
		for _, i := range rows {
			trainX = append(trainX, x[i])
			trainY = append(trainY, labels[i])
		}
	}

	var classifier = cv.Maker(cv.Seed)
	if err := classifier.Fit(trainX, trainY, classes); err != nil {
		return nil, err
	}

	var result = make([]Prediction, 0, len(folds[test]))
	for _, i := range folds[test] {
		result = append(result, Prediction{
			Actual: labels[i],
			Proba:  classifier.PredictProba(x[i]),
		})
	}
	return result, nil
}

// stratifiedFolds shuffles the rows with seed, groups them by class and deals
// them round-robin into k folds, so every fold keeps the class proportions.
func stratifiedFolds(labels []int, classes, k int, seed int64) [][]int {
	var order = make([]int, len(labels))
	for i := range order {
		order[i] = i
	}
	var rnd = rand.New(rand.NewSource(seed))
	rnd.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	var byClass = make([][]int, classes)
	for _, i := range order {
		byClass[labels[i]] = append(byClass[labels[i]], i)
	}

	var folds = make([][]int, k)
	var next = 0
	for _, rows := range byClass {
		for _, i := range rows {
			folds[next] = append(folds[next], i)
			next = (next + 1) % k
		}
	}
	return folds
}
