package training

import (
	"math"
)

const (
	gradientIterations = 500
	learningRate       = 0.5
)

// FitLogistic fits a binary logistic regression with class-balanced sample
// weights by full-batch gradient descent. Features are standardized
// internally and the parameters folded back to the original scale, so the
// returned coefficients apply directly to raw feature values.
//
// The optimization is deterministic: full-batch updates on a fixed
// schedule, no random initialization.
func FitLogistic(X [][]float64, y []int) (coefficients []float64, intercept float64, err error) {
	n := len(X)
	if n == 0 || n != len(y) {
		return nil, 0, ErrDegenerateTrainingSet
	}
	dims := len(X[0])

	positives := 0
	for _, label := range y {
		positives += label
	}
	negatives := n - positives
	if positives == 0 || negatives == 0 {
		return nil, 0, ErrDegenerateTrainingSet
	}

	// Balanced weights: each class contributes half the total gradient mass
	weightPos := float64(n) / (2.0 * float64(positives))
	weightNeg := float64(n) / (2.0 * float64(negatives))

	means, stds := columnStats(X, dims)

	scaled := make([][]float64, n)
	for i, row := range X {
		s := make([]float64, dims)
		for j := range row {
			s[j] = (row[j] - means[j]) / stds[j]
		}
		scaled[i] = s
	}

	weights := make([]float64, dims)
	var bias float64

	grad := make([]float64, dims)
	for iter := 0; iter < gradientIterations; iter++ {
		for j := range grad {
			grad[j] = 0
		}
		var gradBias float64

		for i, row := range scaled {
			z := bias
			for j, w := range weights {
				z += w * row[j]
			}
			p := 1.0 / (1.0 + math.Exp(-z))

			sampleWeight := weightNeg
			if y[i] == 1 {
				sampleWeight = weightPos
			}
			residual := sampleWeight * (p - float64(y[i]))

			gradBias += residual
			for j := range row {
				grad[j] += residual * row[j]
			}
		}

		step := learningRate / float64(n)
		bias -= step * gradBias
		for j := range weights {
			weights[j] -= step * grad[j]
		}
	}

	// Fold the standardization back into the parameters
	coefficients = make([]float64, dims)
	intercept = bias
	for j := range weights {
		coefficients[j] = weights[j] / stds[j]
		intercept -= weights[j] * means[j] / stds[j]
	}
	return coefficients, intercept, nil
}

// columnStats computes per-column mean and standard deviation. Constant
// columns get a standard deviation of 1 so they pass through unscaled.
func columnStats(X [][]float64, dims int) (means, stds []float64) {
	n := float64(len(X))
	means = make([]float64, dims)
	stds = make([]float64, dims)

	for _, row := range X {
		for j, v := range row {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= n
	}

	for _, row := range X {
		for j, v := range row {
			d := v - means[j]
			stds[j] += d * d
		}
	}
	for j := range stds {
		stds[j] = math.Sqrt(stds[j] / n)
		if stds[j] == 0 {
			stds[j] = 1.0
		}
	}
	return means, stds
}

// fitPredictor adapts FitLogistic to the evaluation package's fit contract.
func fitPredictor(X [][]float64, y []int) (func(row []float64) float64, error) {
	coefficients, intercept, err := FitLogistic(X, y)
	if err != nil {
		return nil, err
	}
	return func(row []float64) float64 {
		z := intercept
		for j, c := range coefficients {
			z += c * row[j]
		}
		return 1.0 / (1.0 + math.Exp(-z))
	}, nil
}
