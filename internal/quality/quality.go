package quality

import (
	"context"
	"fmt"
	"math"

	"github.com/ChizhovVadim/AttrSelect/internal/subset"
)

type Measure string

const (
	// MeasureCorrect counts correctly classified rows.
	MeasureCorrect  Measure = "correct"
	MeasureAccuracy Measure = "accuracy"
	// MeasureAUC is the class-frequency weighted area under the ROC curve.
	MeasureAUC Measure = "auc"
)

func ParseMeasure(s string) (Measure, error) {
	switch m := Measure(s); m {
	case MeasureCorrect, MeasureAccuracy, MeasureAUC:
		return m, nil
	}
	return "", fmt.Errorf("unknown quality measure %q", s)
}

func (m Measure) Score(e *Evaluation) (float64, error) {
	switch m {
	case MeasureCorrect, "":
		return float64(e.Correct()), nil
	case MeasureAccuracy:
		return e.Accuracy(), nil
	case MeasureAUC:
		var auc = e.WeightedAUC()
		if math.IsNaN(auc) {
			return 0, fmt.Errorf("auc is undefined for this class distribution")
		}
		return auc, nil
	}
	return 0, fmt.Errorf("unknown quality measure %q", string(m))
}

// Oracle scores attribute subsets by cross-validating a classifier on them.
type Oracle struct {
	CrossValidation
	Measure Measure
}

func (o *Oracle) Quality(ctx context.Context, attrs subset.Subset) (float64, error) {
	var evaluation, err = o.Run(ctx, attrs)
	if err != nil {
		return 0, err
	}
	return o.Measure.Score(evaluation)
}
