package ml

import "gonum.org/v1/gonum/floats"

// NearestCentroid assigns the class whose mean vector is closest. Probabilities
// are a softmax over negative squared distances.
type NearestCentroid struct {
	centroids [][]float64
	present   []bool
}

func (nc *NearestCentroid) Fit(x [][]float64, y []int, classes int) error {
	if err := checkTraining(x, y, classes); err != nil {
		return err
	}
	var cols = len(x[0])
	var counts = make([]int, classes)
	nc.centroids = make([][]float64, classes)
	for c := range nc.centroids {
		nc.centroids[c] = make([]float64, cols)
	}
	for i, row := range x {
		floats.Add(nc.centroids[y[i]], row)
		counts[y[i]]++
	}
	nc.present = make([]bool, classes)
	for c, count := range counts {
		if count > 0 {
			floats.Scale(1/float64(count), nc.centroids[c])
			nc.present[c] = true
		}
	}
	return nil
}

func (nc *NearestCentroid) PredictProba(x []float64) []float64 {
	var scores = make([]float64, len(nc.centroids))
	var far = 0.0
	for c, centroid := range nc.centroids {
		var d = floats.Distance(x, centroid, 2)
		scores[c] = -d * d
		if scores[c] < far {
			far = scores[c]
		}
	}
	// classes never seen in training get no probability mass
	for c := range scores {
		if !nc.present[c] {
			scores[c] = far - 1e3
		}
	}
	Softmax(scores)
	return scores
}
