package ml

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Standardized imputes missing values with the training mean and scales
// every feature to zero mean and unit variance before calling the inner
// classifier.
type Standardized struct {
	inner Classifier
	mean  []float64
	scale []float64
}

func NewStandardized(inner Classifier) *Standardized {
	return &Standardized{inner: inner}
}

func (s *Standardized) Fit(x [][]float64, y []int, classes int) error {
	if err := checkTraining(x, y, classes); err != nil {
		return err
	}
	var cols = len(x[0])
	s.mean = make([]float64, cols)
	s.scale = make([]float64, cols)
	var column = make([]float64, 0, len(x))
	for j := 0; j < cols; j++ {
		column = column[:0]
		for _, row := range x {
			if !math.IsNaN(row[j]) {
				column = append(column, row[j])
			}
		}
		s.scale[j] = 1
		if len(column) == 0 {
			continue
		}
		var mean, std = stat.MeanStdDev(column, nil)
		s.mean[j] = mean
		if std > 0 && !math.IsNaN(std) {
			s.scale[j] = std
		}
	}

	var transformed = make([][]float64, len(x))
	for i, row := range x {
		transformed[i] = s.transform(row)
	}
	return s.inner.Fit(transformed, y, classes)
}

func (s *Standardized) PredictProba(x []float64) []float64 {
	return s.inner.PredictProba(s.transform(x))
}

func (s *Standardized) transform(x []float64) []float64 {
	var result = make([]float64, len(x))
	for j, v := range x {
		if math.IsNaN(v) {
			v = s.mean[j]
		}
		result[j] = (v - s.mean[j]) / s.scale[j]
	}
	return result
}
