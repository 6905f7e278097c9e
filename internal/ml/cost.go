package ml

import "math"

type IModelCost interface {
	Cost(predicted, target float64) float64
	CostPrime(predicted, target float64) float64
}

// LogLossCost is binary cross-entropy over a probability output.
type LogLossCost struct{}

const probEpsilon = 1e-12

func clampProb(p float64) float64 {
	return math.Min(math.Max(p, probEpsilon), 1-probEpsilon)
}

func (*LogLossCost) Cost(predicted, target float64) float64 {
	var p = clampProb(predicted)
	return -(target*math.Log(p) + (1-target)*math.Log(1-p))
}

func (*LogLossCost) CostPrime(predicted, target float64) float64 {
	var p = clampProb(predicted)
	return (p - target) / (p * (1 - p))
}
