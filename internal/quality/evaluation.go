package quality

import (
	"math"
	"sort"
)

type Prediction struct {
	Actual int
	Proba  []float64
}

func (p *Prediction) Predicted() int {
	var best = 0
	for i := 1; i < len(p.Proba); i++ {
		if p.Proba[i] > p.Proba[best] {
			best = i
		}
	}
	return best
}

// Evaluation collects out-of-fold predictions and the confusion matrix.
// Confusion[actual][predicted] counts rows.
type Evaluation struct {
	Classes     int
	Confusion   [][]int
	Predictions []Prediction
}

func NewEvaluation(classes int) *Evaluation {
	var confusion = make([][]int, classes)
	for i := range confusion {
		confusion[i] = make([]int, classes)
	}
	return &Evaluation{
		Classes:   classes,
		Confusion: confusion,
	}
}

func (e *Evaluation) Add(p Prediction) {
	e.Predictions = append(e.Predictions, p)
	e.Confusion[p.Actual][p.Predicted()]++
}

func (e *Evaluation) Total() int {
	return len(e.Predictions)
}

func (e *Evaluation) Correct() int {
	var result int
	for c := 0; c < e.Classes; c++ {
		result += e.Confusion[c][c]
	}
	return result
}

func (e *Evaluation) Accuracy() float64 {
	if e.Total() == 0 {
		return 0
	}
	return float64(e.Correct()) / float64(e.Total())
}

func (e *Evaluation) TruePositives(class int) int {
	return e.Confusion[class][class]
}

func (e *Evaluation) FalseNegatives(class int) int {
	var result int
	for p, n := range e.Confusion[class] {
		if p != class {
			result += n
		}
	}
	return result
}

func (e *Evaluation) FalsePositives(class int) int {
	var result int
	for a := range e.Confusion {
		if a != class {
			result += e.Confusion[a][class]
		}
	}
	return result
}

func (e *Evaluation) TrueNegatives(class int) int {
	return e.Total() - e.TruePositives(class) - e.FalseNegatives(class) - e.FalsePositives(class)
}

// TruePositiveRate is the sensitivity for class.
func (e *Evaluation) TruePositiveRate(class int) float64 {
	return ratio(e.TruePositives(class), e.TruePositives(class)+e.FalseNegatives(class))
}

// TrueNegativeRate is the specificity for class.
func (e *Evaluation) TrueNegativeRate(class int) float64 {
	return ratio(e.TrueNegatives(class), e.TrueNegatives(class)+e.FalsePositives(class))
}

// MCC is the Matthews correlation coefficient with class as positive.
// It is 0 when any marginal is empty.
func (e *Evaluation) MCC(class int) float64 {
	var (
		tp = float64(e.TruePositives(class))
		tn = float64(e.TrueNegatives(class))
		fp = float64(e.FalsePositives(class))
		fn = float64(e.FalseNegatives(class))
	)
	var denom = math.Sqrt((tp + fp) * (tp + fn) * (tn + fp) * (tn + fn))
	if denom == 0 {
		return 0
	}
	return (tp*tn - fp*fn) / denom
}

// AUC is the area under the ROC curve for class, computed from ranks with
// ties averaged. It is NaN when class has no positive or no negative rows.
func (e *Evaluation) AUC(class int) float64 {
	var scores = e.scores(class)
	var positives, negatives int
	for _, s := range scores {
		if s.positive {
			positives++
		} else {
			negatives++
		}
	}
	if positives == 0 || negatives == 0 {
		return math.NaN()
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score < scores[j].score
	})
	var rankSum float64
	for i := 0; i < len(scores); {
		var j = i
		for j < len(scores) && scores[j].score == scores[i].score {
			j++
		}
		// ranks i+1..j share their average
		var rank = float64(i+1+j) / 2
		for k := i; k < j; k++ {
			if scores[k].positive {
				rankSum += rank
			}
		}
		i = j
	}
	var p = float64(positives)
	return (rankSum - p*(p+1)/2) / (p * float64(negatives))
}

// WeightedAUC averages per-class AUC weighted by class frequency, skipping
// classes whose AUC is undefined. It is NaN when no class qualifies.
func (e *Evaluation) WeightedAUC() float64 {
	var sum, weight float64
	for c := 0; c < e.Classes; c++ {
		var auc = e.AUC(c)
		if math.IsNaN(auc) {
			continue
		}
		var n = float64(e.TruePositives(c) + e.FalseNegatives(c))
		sum += n * auc
		weight += n
	}
	if weight == 0 {
		return math.NaN()
	}
	return sum / weight
}

type ROCPoint struct {
	FalsePositiveRate float64 `yaml:"fpr"`
	TruePositiveRate  float64 `yaml:"tpr"`
	Threshold         float64 `yaml:"threshold"`
}

// ROC returns the curve for class from (0,0) to (1,1), one point per
// distinct score. It is empty when the curve is undefined.
func (e *Evaluation) ROC(class int) []ROCPoint {
	var scores = e.scores(class)
	var positives, negatives float64
	for _, s := range scores {
		if s.positive {
			positives++
		} else {
			negatives++
		}
	}
	if positives == 0 || negatives == 0 {
		return nil
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})
	var result = []ROCPoint{{Threshold: math.Inf(1)}}
	var tp, fp float64
	for i := 0; i < len(scores); {
		var j = i
		for j < len(scores) && scores[j].score == scores[i].score {
			if scores[j].positive {
				tp++
			} else {
				fp++
			}
			j++
		}
		result = append(result, ROCPoint{
			FalsePositiveRate: fp / negatives,
			TruePositiveRate:  tp / positives,
			Threshold:         scores[i].score,
		})
		i = j
	}
	return result
}

type scoredRow struct {
	score    float64
	positive bool
}

func (e *Evaluation) scores(class int) []scoredRow {
	var result = make([]scoredRow, len(e.Predictions))
	for i, p := range e.Predictions {
		result[i] = scoredRow{score: p.Proba[class], positive: p.Actual == class}
	}
	return result
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}
