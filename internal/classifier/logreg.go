package classifier

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LogisticRegression is the fallback model: one-vs-rest logistic regression
// fitted by full-batch gradient descent.
type LogisticRegression struct {
	// Weights is (numClasses x numFeatures); Bias is per class.
	Weights     [][]float64
	Bias        []float64
	NumClasses  int
	NumFeatures int
}

const (
	lrEpochs       = 200
	lrLearningRate = 0.5
	lrRegularize   = 1e-4
)

func (lr *LogisticRegression) Kind() string { return "logistic_regression" }

// Fit trains one binary classifier per class against the rest.
func (lr *LogisticRegression) Fit(matrix [][]float64, labels []int, numClasses int) error {
	if len(matrix) == 0 || len(matrix) != len(labels) {
		return errors.New("logistic regression: empty or mismatched training data")
	}
	numSamples := len(matrix)
	numFeatures := len(matrix[0])
	if numFeatures == 0 {
		return errors.New("logistic regression: zero-width feature matrix")
	}

	flat := make([]float64, 0, numSamples*numFeatures)
	for _, row := range matrix {
		flat = append(flat, row...)
	}
	X := mat.NewDense(numSamples, numFeatures, flat)

	lr.Weights = make([][]float64, numClasses)
	lr.Bias = make([]float64, numClasses)

	for c := 0; c < numClasses; c++ {
		target := make([]float64, numSamples)
		for i, label := range labels {
			if label == c {
				target[i] = 1
			}
		}
		w, b := fitBinary(X, target, numSamples, numFeatures)
		lr.Weights[c] = w
		lr.Bias[c] = b
	}

	lr.NumClasses = numClasses
	lr.NumFeatures = numFeatures
	return nil
}

func fitBinary(X *mat.Dense, target []float64, numSamples, numFeatures int) ([]float64, float64) {
	w := mat.NewVecDense(numFeatures, nil)
	var bias float64

	scores := mat.NewVecDense(numSamples, nil)
	grad := mat.NewVecDense(numFeatures, nil)
	residual := mat.NewVecDense(numSamples, nil)

	for epoch := 0; epoch < lrEpochs; epoch++ {
		scores.MulVec(X, w)

		var biasGrad float64
		for i := 0; i < numSamples; i++ {
			p := sigmoid(scores.AtVec(i) + bias)
			r := p - target[i]
			residual.SetVec(i, r)
			biasGrad += r
		}

		grad.MulVec(X.T(), residual)
		scale := lrLearningRate / float64(numSamples)
		for j := 0; j < numFeatures; j++ {
			update := grad.AtVec(j) + lrRegularize*w.AtVec(j)
			w.SetVec(j, w.AtVec(j)-scale*update)
		}
		bias -= scale * biasGrad
	}

	out := make([]float64, numFeatures)
	copy(out, w.RawVector().Data)
	return out, bias
}

// Predict returns the class with the highest decision score.
func (lr *LogisticRegression) Predict(vec []float64) (int, error) {
	if lr.NumClasses == 0 {
		return 0, errors.New("logistic regression: model not fitted")
	}
	if len(vec) != lr.NumFeatures {
		return 0, errors.New("logistic regression: feature width mismatch")
	}

	best, bestScore := 0, math.Inf(-1)
	for c := 0; c < lr.NumClasses; c++ {
		score := lr.Bias[c]
		for j, x := range vec {
			score += x * lr.Weights[c][j]
		}
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
