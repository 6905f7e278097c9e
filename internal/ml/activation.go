package ml

import "math"

type IActivationFn interface {
	Sigma(x float64) float64
	SigmaPrime(x float64) float64
}

type SigmoidActivation struct{}

func (s *SigmoidActivation) Sigma(x float64) float64 {
	return Sigmoid(x)
}

func (s *SigmoidActivation) SigmaPrime(x float64) float64 {
	var y = s.Sigma(x)
	return y * (1 - y)
}

// Softmax normalises scores in place into a probability distribution.
func Softmax(scores []float64) {
	if len(scores) == 0 {
		return
	}
	var max = scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}
	var sum float64
	for i, s := range scores {
		scores[i] = math.Exp(s - max)
		sum += scores[i]
	}
	for i := range scores {
		scores[i] /= sum
	}
}
