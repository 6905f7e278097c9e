package ml

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blobs returns two well separated Gaussian clouds in 2D plus one noise feature.
func blobs(n int, seed int64) ([][]float64, []int) {
	var rnd = rand.New(rand.NewSource(seed))
	var x = make([][]float64, n)
	var y = make([]int, n)
	for i := range x {
		var label = i % 2
		var center = 3.0
		if label == 1 {
			center = -3.0
		}
		x[i] = []float64{
			center + rnd.NormFloat64(),
			center + rnd.NormFloat64(),
			rnd.NormFloat64() * 10,
		}
		y[i] = label
	}
	return x, y
}

func accuracy(c Classifier, x [][]float64, y []int) float64 {
	var correct int
	for i := range x {
		if Predict(c, x[i]) == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(x))
}

func TestClassifiersSeparateBlobs(t *testing.T) {
	var trainX, trainY = blobs(200, 1)
	var testX, testY = blobs(100, 2)
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			var maker, err = Lookup(name)
			require.NoError(t, err)
			var c = maker(1)
			require.NoError(t, c.Fit(trainX, trainY, 2))
			assert.GreaterOrEqual(t, accuracy(c, testX, testY), 0.9)

			var proba = c.PredictProba(testX[0])
			require.Len(t, proba, 2)
			var sum float64
			for _, p := range proba {
				assert.GreaterOrEqual(t, p, 0.0)
				sum += p
			}
			assert.InDelta(t, 1.0, sum, 1e-9)
		})
	}
}

func TestLogisticDeterministic(t *testing.T) {
	var x, y = blobs(100, 3)
	var a = NewLogistic(7)
	var b = NewLogistic(7)
	require.NoError(t, a.Fit(x, y, 2))
	require.NoError(t, b.Fit(x, y, 2))
	assert.Equal(t, a.weights.Data, b.weights.Data)
}

func TestStandardizedImputesMissing(t *testing.T) {
	var x = [][]float64{{1, 10}, {math.NaN(), 20}, {3, 30}, {5, 40}}
	var y = []int{0, 0, 1, 1}
	var c = NewStandardized(&NearestCentroid{})
	require.NoError(t, c.Fit(x, y, 2))
	assert.Equal(t, []float64{3, 25}, c.mean)
	var proba = c.PredictProba([]float64{math.NaN(), 12})
	assert.False(t, math.IsNaN(proba[0]))
	assert.Greater(t, proba[0], proba[1])
}

func TestDecisionStumpPicksInformativeFeature(t *testing.T) {
	var x = [][]float64{{5, 1}, {3, 2}, {4, 3}, {1, 4}, {2, 5}, {6, 6}}
	var y = []int{0, 0, 0, 1, 1, 1}
	var s = &DecisionStump{}
	require.NoError(t, s.Fit(x, y, 2))
	assert.Equal(t, 1, s.feature)
	assert.Equal(t, 3.5, s.threshold)
	assert.Equal(t, 0, Predict(s, []float64{0, 2}))
	assert.Equal(t, 1, Predict(s, []float64{0, 5}))
}

func TestNaiveBayesMulticlass(t *testing.T) {
	var x = [][]float64{{0}, {0.1}, {5}, {5.1}, {10}, {10.2}}
	var y = []int{0, 0, 1, 1, 2, 2}
	var nb = &NaiveBayes{}
	require.NoError(t, nb.Fit(x, y, 3))
	assert.Equal(t, 0, Predict(nb, []float64{0.05}))
	assert.Equal(t, 1, Predict(nb, []float64{5.05}))
	assert.Equal(t, 2, Predict(nb, []float64{9.9}))
}

func TestFitValidation(t *testing.T) {
	tests := []struct {
		name    string
		x       [][]float64
		y       []int
		classes int
	}{
		{"empty", nil, nil, 2},
		{"length mismatch", [][]float64{{1}}, []int{0, 1}, 2},
		{"no features", [][]float64{{}}, []int{0}, 2},
		{"single class", [][]float64{{1}}, []int{0}, 1},
		{"label out of range", [][]float64{{1}}, []int{3}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, name := range Names() {
				var maker, _ = Lookup(name)
				assert.Error(t, maker(1).Fit(tt.x, tt.y, tt.classes), name)
			}
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("svm")
	assert.Error(t, err)
	assert.Equal(t, []string{"centroid", "logistic", "naivebayes", "stump"}, Names())
}

func TestSoftmax(t *testing.T) {
	var scores = []float64{1000, 1000, 999}
	Softmax(scores)
	assert.InDelta(t, scores[0], scores[1], 1e-12)
	assert.Greater(t, scores[0], scores[2])
	assert.InDelta(t, 1.0, scores[0]+scores[1]+scores[2], 1e-12)
}
