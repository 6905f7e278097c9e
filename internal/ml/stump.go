package ml

import (
	"sort"
)

// DecisionStump splits on a single feature threshold and predicts the
// Laplace-smoothed class distribution of each side. The first split with
// the fewest training errors wins.
type DecisionStump struct {
	feature   int
	threshold float64
	left      []float64
	right     []float64
}

func (ds *DecisionStump) Fit(x [][]float64, y []int, classes int) error {
	if err := checkTraining(x, y, classes); err != nil {
		return err
	}
	var total = make([]int, classes)
	for _, label := range y {
		total[label]++
	}

	var (
		bestErrors = len(y) - maxCount(total)
		bestLeft   = make([]int, classes)
		bestRight  = append([]int(nil), total...)
	)
	ds.feature = 0
	ds.threshold = 0
	ds.setDistribution(bestLeft, bestRight)

	var order = make([]int, len(x))
	var left = make([]int, classes)
	var right = make([]int, classes)
	for j := range x[0] {
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return x[order[a]][j] < x[order[b]][j]
		})
		for c := range left {
			left[c] = 0
			right[c] = total[c]
		}
		for k := 0; k < len(order)-1; k++ {
			var label = y[order[k]]
			left[label]++
			right[label]--
			var cur, next = x[order[k]][j], x[order[k+1]][j]
			if cur == next {
				continue
			}
			var errors = (k + 1 - maxCount(left)) + (len(order) - k - 1 - maxCount(right))
			if errors < bestErrors {
				bestErrors = errors
				ds.feature = j
				ds.threshold = (cur + next) / 2
				ds.setDistribution(left, right)
			}
		}
	}
	return nil
}

func (ds *DecisionStump) PredictProba(x []float64) []float64 {
	var dist = ds.right
	if x[ds.feature] <= ds.threshold {
		dist = ds.left
	}
	return append([]float64(nil), dist...)
}

func (ds *DecisionStump) setDistribution(left, right []int) {
	ds.left = smoothed(left)
	ds.right = smoothed(right)
}

func smoothed(counts []int) []float64 {
	var result = make([]float64, len(counts))
	var sum = float64(len(counts))
	for _, c := range counts {
		sum += float64(c)
	}
	for i, c := range counts {
		result[i] = (float64(c) + 1) / sum
	}
	return result
}

func maxCount(counts []int) int {
	var best = 0
	for _, c := range counts {
		if c > best {
			best = c
		}
	}
	return best
}
