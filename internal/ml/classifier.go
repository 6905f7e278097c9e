package ml

import (
	"errors"
	"fmt"
	"sort"
)

// Classifier is trained on row-major features and predicts a probability
// for every class. Missing values (NaN) must be handled by the caller or by
// a Standardized wrapper.
type Classifier interface {
	Fit(x [][]float64, y []int, classes int) error
	PredictProba(x []float64) []float64
}

// Maker builds an untrained classifier. seed drives any randomness in training.
type Maker func(seed int64) Classifier

var makers = map[string]Maker{
	"logistic": func(seed int64) Classifier {
		return NewStandardized(NewLogistic(seed))
	},
	"naivebayes": func(seed int64) Classifier {
		return NewStandardized(&NaiveBayes{})
	},
	"centroid": func(seed int64) Classifier {
		return NewStandardized(&NearestCentroid{})
	},
	"stump": func(seed int64) Classifier {
		return NewStandardized(&DecisionStump{})
	},
}

func Lookup(name string) (Maker, error) {
	var maker, found = makers[name]
	if !found {
		return nil, fmt.Errorf("unknown classifier %q (known: %v)", name, Names())
	}
	return maker, nil
}

func Names() []string {
	var result = make([]string, 0, len(makers))
	for name := range makers {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Predict returns the most probable class.
func Predict(c Classifier, x []float64) int {
	return Argmax(c.PredictProba(x))
}

var errEmptyTraining = errors.New("empty training set")

func checkTraining(x [][]float64, y []int, classes int) error {
	if len(x) == 0 {
		return errEmptyTraining
	}
	if len(x) != len(y) {
		return fmt.Errorf("features have %d rows, labels %d", len(x), len(y))
	}
	if len(x[0]) == 0 {
		return errors.New("no features")
	}
	if classes < 2 {
		return fmt.Errorf("need at least 2 classes, got %d", classes)
	}
	for i, label := range y {
		if label < 0 || label >= classes {
			return fmt.Errorf("row %d: label %d out of range", i, label)
		}
	}
	return nil
}
