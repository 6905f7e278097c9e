package ml

import (
	"math/rand"
)

// Logistic is one-vs-rest logistic regression trained with Adam on
// mini-batches. Row c of the weight matrix holds the weights of class c;
// the last column is the bias.
type Logistic struct {
	Epochs    int
	BatchSize int

	activationFn IActivationFn
	cost         IModelCost
	weights      Matrix
	wGradients   Gradients
	rnd          *rand.Rand
	classes      int
}

func NewLogistic(seed int64) *Logistic {
	return &Logistic{
		Epochs:       60,
		BatchSize:    32,
		activationFn: &SigmoidActivation{},
		cost:         &LogLossCost{},
		rnd:          rand.New(rand.NewSource(seed)),
	}
}

func (m *Logistic) Fit(x [][]float64, y []int, classes int) error {
	if err := checkTraining(x, y, classes); err != nil {
		return err
	}
	var inputSize = len(x[0]) + 1
	m.classes = classes
	m.weights = NewMatrix(classes, inputSize)
	m.wGradients = NewGradients(classes, inputSize)
	InitUniform(m.rnd, m.weights.Data, 1/float64(inputSize))

	var order = make([]int, len(x))
	for i := range order {
		order[i] = i
	}
	for epoch := 0; epoch < m.Epochs; epoch++ {
		m.rnd.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		for start := 0; start < len(order); start += m.BatchSize {
			var end = min(start+m.BatchSize, len(order))
			for _, index := range order[start:end] {
				m.train(x[index], y[index])
			}
			m.wGradients.Apply(&m.weights)
		}
	}
	return nil
}

func (m *Logistic) PredictProba(x []float64) []float64 {
	var result = make([]float64, m.classes)
	var sum float64
	for c := range result {
		result[c] = m.activationFn.Sigma(m.linear(c, x))
		sum += result[c]
	}
	if sum == 0 {
		for c := range result {
			result[c] = 1 / float64(m.classes)
		}
		return result
	}
	for c := range result {
		result[c] /= sum
	}
	return result
}

func (m *Logistic) linear(class int, x []float64) float64 {
	var bias = len(x)
	var sum = m.weights.Get(class, bias)
	for j, v := range x {
		sum += m.weights.Get(class, j) * v
	}
	return sum
}

// back propagation for one sample, one output per class
func (m *Logistic) train(x []float64, label int) {
	var bias = len(x)
	for c := 0; c < m.classes; c++ {
		var target float64
		if c == label {
			target = 1
		}
		var z = m.linear(c, x)
		var predicted = m.activationFn.Sigma(z)
		var outputGradient = m.cost.CostPrime(predicted, target) *
			m.activationFn.SigmaPrime(z)
		for j, v := range x {
			m.wGradients.Add(c, j, outputGradient*v)
		}
		m.wGradients.Add(c, bias, outputGradient)
	}
}
