package classifier

import (
	"log/slog"
	"math/rand"
)

// splitSeed keeps the diagnostic partition reproducible across runs.
const splitSeed = 42

// stratifiedSplit carves a 20% held-out partition per class. Classes too
// small to spare a sample stay entirely in the training partition, so every
// class is always represented in the fit.
func stratifiedSplit(matrix [][]float64, labels []int, numClasses int) (trainX [][]float64, trainY []int, testX [][]float64, testY []int) {
	rng := rand.New(rand.NewSource(splitSeed))

	byClass := make([][]int, numClasses)
	for i, label := range labels {
		byClass[label] = append(byClass[label], i)
	}

	for _, indices := range byClass {
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
		testCount := len(indices) / 5
		for pos, idx := range indices {
			if pos < testCount {
				testX = append(testX, matrix[idx])
				testY = append(testY, labels[idx])
			} else {
				trainX = append(trainX, matrix[idx])
				trainY = append(trainY, labels[idx])
			}
		}
	}
	return trainX, trainY, testX, testY
}

// logDiagnostics scores the fitted model on the held-out partition and logs
// the result. The report never gates acceptance of the fit; the held-out
// outcome is informational only.
func logDiagnostics(logger *slog.Logger, model Model, testX [][]float64, testY []int, labels []string) {
	if len(testX) == 0 {
		logger.Info("train.diagnostics_skipped", "reason", "corpus too small for held-out split")
		return
	}

	correct := 0
	perLabelTotal := make([]int, len(labels))
	perLabelHit := make([]int, len(labels))
	for i, vec := range testX {
		perLabelTotal[testY[i]]++
		pred, err := model.Predict(vec)
		if err != nil {
			continue
		}
		if pred == testY[i] {
			correct++
			perLabelHit[testY[i]]++
		}
	}

	logger.Info("train.diagnostics",
		"model", model.Kind(),
		"held_out", len(testX),
		"accuracy", float64(correct)/float64(len(testX)),
	)
	for idx, label := range labels {
		if perLabelTotal[idx] == 0 {
			continue
		}
		logger.Debug("train.diagnostics_label",
			"label", label,
			"held_out", perLabelTotal[idx],
			"recall", float64(perLabelHit[idx])/float64(perLabelTotal[idx]),
		)
	}
}
