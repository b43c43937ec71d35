package classifier

import (
	"errors"
	"math"
)

// NaiveBayes is the primary model: multinomial naive bayes with Laplace
// smoothing over non-negative TF-IDF features.
type NaiveBayes struct {
	ClassLogPrior []float64
	// FeatureLogProb[class][feature]
	FeatureLogProb [][]float64
	NumClasses     int
	NumFeatures    int
}

const nbAlpha = 1.0

func (nb *NaiveBayes) Kind() string { return "naive_bayes" }

// Fit estimates per-class priors and feature likelihoods. Fails on empty
// input, on classes with no samples, or on negative feature values.
func (nb *NaiveBayes) Fit(matrix [][]float64, labels []int, numClasses int) error {
	if len(matrix) == 0 || len(matrix) != len(labels) {
		return errors.New("naive bayes: empty or mismatched training data")
	}
	numFeatures := len(matrix[0])
	if numFeatures == 0 {
		return errors.New("naive bayes: zero-width feature matrix")
	}

	classCounts := make([]float64, numClasses)
	featureSums := make([][]float64, numClasses)
	for c := range featureSums {
		featureSums[c] = make([]float64, numFeatures)
	}

	for i, row := range matrix {
		c := labels[i]
		if c < 0 || c >= numClasses {
			return errors.New("naive bayes: label out of range")
		}
		classCounts[c]++
		for j, x := range row {
			if x < 0 {
				return errors.New("naive bayes: negative feature value")
			}
			featureSums[c][j] += x
		}
	}

	nb.ClassLogPrior = make([]float64, numClasses)
	nb.FeatureLogProb = make([][]float64, numClasses)
	total := float64(len(matrix))
	for c := 0; c < numClasses; c++ {
		if classCounts[c] == 0 {
			return errors.New("naive bayes: class with no samples")
		}
		nb.ClassLogPrior[c] = math.Log(classCounts[c] / total)

		var classTotal float64
		for _, s := range featureSums[c] {
			classTotal += s
		}
		denom := classTotal + nbAlpha*float64(numFeatures)

		nb.FeatureLogProb[c] = make([]float64, numFeatures)
		for j, s := range featureSums[c] {
			nb.FeatureLogProb[c][j] = math.Log((s + nbAlpha) / denom)
		}
	}

	nb.NumClasses = numClasses
	nb.NumFeatures = numFeatures
	return nil
}

// Predict returns the class with the highest joint log-likelihood.
func (nb *NaiveBayes) Predict(vec []float64) (int, error) {
	if nb.NumClasses == 0 {
		return 0, errors.New("naive bayes: model not fitted")
	}
	if len(vec) != nb.NumFeatures {
		return 0, errors.New("naive bayes: feature width mismatch")
	}

	best, bestScore := 0, math.Inf(-1)
	for c := 0; c < nb.NumClasses; c++ {
		score := nb.ClassLogPrior[c]
		for j, x := range vec {
			if x != 0 {
				score += x * nb.FeatureLogProb[c][j]
			}
		}
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, nil
}
