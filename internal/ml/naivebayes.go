package ml

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// varianceFloor keeps constant features from producing infinite densities.
const varianceFloor = 1e-9

// NaiveBayes is a Gaussian naive Bayes classifier with Laplace-smoothed priors.
type NaiveBayes struct {
	logPrior []float64
	mean     [][]float64
	variance [][]float64
}

func (nb *NaiveBayes) Fit(x [][]float64, y []int, classes int) error {
	if err := checkTraining(x, y, classes); err != nil {
		return err
	}
	var cols = len(x[0])
	var byClass = make([][][]float64, classes)
	for i, row := range x {
		byClass[y[i]] = append(byClass[y[i]], row)
	}

	nb.logPrior = make([]float64, classes)
	nb.mean = make([][]float64, classes)
	nb.variance = make([][]float64, classes)
	var column []float64
	for c, rows := range byClass {
		nb.logPrior[c] = math.Log(float64(len(rows)+1) / float64(len(x)+classes))
		nb.mean[c] = make([]float64, cols)
		nb.variance[c] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			nb.variance[c][j] = 1
			if len(rows) < 2 {
				if len(rows) == 1 {
					nb.mean[c][j] = rows[0][j]
				}
				continue
			}
			column = column[:0]
			for _, row := range rows {
				column = append(column, row[j])
			}
			var mean, variance = stat.MeanVariance(column, nil)
			nb.mean[c][j] = mean
			nb.variance[c][j] = math.Max(variance, varianceFloor)
		}
	}
	return nil
}

func (nb *NaiveBayes) PredictProba(x []float64) []float64 {
	var logProb = make([]float64, len(nb.logPrior))
	for c := range logProb {
		var sum = nb.logPrior[c]
		for j, v := range x {
			var d = v - nb.mean[c][j]
			var variance = nb.variance[c][j]
			sum -= 0.5 * (math.Log(2*math.Pi*variance) + d*d/variance)
		}
		logProb[c] = sum
	}
	var norm = floats.LogSumExp(logProb)
	for c := range logProb {
		logProb[c] = math.Exp(logProb[c] - norm)
	}
	return logProb
}
