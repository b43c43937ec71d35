// Package classifier implements the trainable document-type classifier: a
// TF-IDF vectorizer paired with a supervised model, with persisted state and
// an append-only training history.
package classifier

import (
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"docparse/constants"
	"docparse/internal/common"
)

// TrainingSample is one labeled text for training.
type TrainingSample struct {
	Text         string
	DocumentType constants.DocumentType
	SourceFile   string
}

// TrainingRecord is appended to the history on every successful Train call.
type TrainingRecord struct {
	Timestamp   time.Time
	SampleCount int
}

// TrainingInfo summarizes the classifier's training state.
type TrainingInfo struct {
	IsTrained       bool             `json:"is_trained"`
	SampleCount     int              `json:"training_samples"`
	History         []TrainingRecord `json:"training_history"`
	Classes         []string         `json:"classes"`
	VectorizerTerms int              `json:"vectorizer_terms"`
}

// Model is the supervised model behind the vectorizer.
type Model interface {
	Fit(matrix [][]float64, labels []int, numClasses int) error
	Predict(vec []float64) (int, error)
	Kind() string
}

// Classifier owns all mutable classification state. It moves one way from
// untrained to trained; Train and Load replace the fitted vectorizer, model,
// and label space wholesale, while the training history only ever grows.
//
// Not safe for concurrent mutation: callers must serialize Train, Load, and
// Save against every other call on the same instance. Concurrent Predict
// calls are fine as long as nothing is mutating.
type Classifier struct {
	maxFeatures int
	logger      *slog.Logger

	vectorizer      *Vectorizer
	model           Model
	labels          []string
	trained         bool
	history         []TrainingRecord
	lastSampleCount int
}

const minRecommendedSamples = 10

func New(maxFeatures int, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		maxFeatures: maxFeatures,
		logger:      logger,
		vectorizer:  NewVectorizer(maxFeatures),
	}
}

// Train fits a fresh vectorizer and model over the samples. State is only
// replaced once a usable fit exists; any failure leaves the classifier
// exactly as it was.
func (c *Classifier) Train(samples []TrainingSample) error {
	usable := make([]TrainingSample, 0, len(samples))
	for _, s := range samples {
		if s.Text != "" {
			usable = append(usable, s)
		}
	}
	if len(usable) == 0 {
		c.logger.Error("train.no_samples")
		return common.ErrEmptyCorpus
	}
	if len(usable) < minRecommendedSamples {
		c.logger.Warn("train.small_corpus", "samples", len(usable))
	}

	texts := make([]string, len(usable))
	rawLabels := make([]string, len(usable))
	for i, s := range usable {
		texts[i] = s.Text
		rawLabels[i] = string(s.DocumentType)
	}

	labels := encodeLabels(rawLabels)
	encoded := make([]int, len(rawLabels))
	for i, raw := range rawLabels {
		encoded[i] = indexOf(labels, raw)
	}

	vectorizer := NewVectorizer(c.maxFeatures)
	matrix := vectorizer.Fit(texts)

	trainX, trainY, testX, testY := stratifiedSplit(matrix, encoded, len(labels))

	model, err := c.fitWithFallback(trainX, trainY, len(labels))
	if err != nil {
		c.logger.Error("train.failed", "error", err)
		return fmt.Errorf("training pipeline: %w", err)
	}

	logDiagnostics(c.logger, model, testX, testY, labels)

	c.vectorizer = vectorizer
	c.model = model
	c.labels = labels
	c.trained = true
	c.lastSampleCount = len(usable)
	c.history = append(c.history, TrainingRecord{
		Timestamp:   time.Now().UTC(),
		SampleCount: len(usable),
	})

	c.logger.Info("train.ok",
		"samples", len(usable),
		"classes", len(labels),
		"vocabulary", len(vectorizer.Vocabulary),
		"model", model.Kind(),
	)
	return nil
}

// fitWithFallback tries the primary model and degrades to the linear model
// rather than aborting the training call.
func (c *Classifier) fitWithFallback(matrix [][]float64, labels []int, numClasses int) (Model, error) {
	nb := &NaiveBayes{}
	if err := nb.Fit(matrix, labels, numClasses); err == nil {
		return nb, nil
	} else {
		c.logger.Warn("train.primary_fit_failed, falling back to logistic regression", "error", err)
	}

	lr := &LogisticRegression{}
	if err := lr.Fit(matrix, labels, numClasses); err != nil {
		return nil, err
	}
	return lr, nil
}

// Predict maps text to a trained label. Calling it before any successful
// Train or Load is a contract violation and yields ErrUntrained.
func (c *Classifier) Predict(text string) (constants.DocumentType, error) {
	if !c.trained {
		return "", common.ErrUntrained
	}
	idx, err := c.model.Predict(c.vectorizer.Transform(text))
	if err != nil {
		return "", fmt.Errorf("predict: %w", err)
	}
	if idx < 0 || idx >= len(c.labels) {
		return "", fmt.Errorf("predict: class index %d outside label space", idx)
	}
	// Decode the raw trained label: prediction is closed over the label
	// universe of the most recent training, not over the built-in types.
	return constants.DocumentType(c.labels[idx]), nil
}

// IsTrained reports whether the classifier can serve predictions.
func (c *Classifier) IsTrained() bool {
	return c.trained
}

// Labels returns the label universe of the most recent successful training.
func (c *Classifier) Labels() []string {
	out := make([]string, len(c.labels))
	copy(out, c.labels)
	return out
}

// Info returns training bookkeeping for diagnostics and evaluation reports.
func (c *Classifier) Info() TrainingInfo {
	info := TrainingInfo{
		IsTrained:   c.trained,
		SampleCount: c.lastSampleCount,
		History:     append([]TrainingRecord(nil), c.history...),
	}
	if c.trained {
		info.Classes = c.Labels()
		info.VectorizerTerms = len(c.vectorizer.Vocabulary)
	}
	return info
}

// artifact is the single opaque persisted form of ClassifierState.
type artifact struct {
	Vectorizer      *Vectorizer
	ModelKind       string
	NaiveBayes      *NaiveBayes
	LogReg          *LogisticRegression
	Labels          []string
	Trained         bool
	History         []TrainingRecord
	LastSampleCount int
}

// Save serializes the full classifier state to one artifact file.
func (c *Classifier) Save(path string) error {
	if !c.trained {
		return fmt.Errorf("save %s: %w", path, common.ErrUntrained)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create model dir: %w", err)
		}
	}

	art := artifact{
		Vectorizer:      c.vectorizer,
		ModelKind:       c.model.Kind(),
		Labels:          c.labels,
		Trained:         c.trained,
		History:         c.history,
		LastSampleCount: c.lastSampleCount,
	}
	switch m := c.model.(type) {
	case *NaiveBayes:
		art.NaiveBayes = m
	case *LogisticRegression:
		art.LogReg = m
	default:
		return fmt.Errorf("save %s: unknown model kind %q", path, c.model.Kind())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create model artifact: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			c.logger.Warn("close model artifact", "path", path, "error", cerr)
		}
	}()

	if err := gob.NewEncoder(f).Encode(art); err != nil {
		return fmt.Errorf("encode model artifact: %w", err)
	}
	c.logger.Info("model.saved", "path", path)
	return nil
}

// Load replaces the classifier state from a saved artifact. A missing or
// corrupt artifact resets the classifier to a fresh untrained state; the
// caller sees that only as IsTrained() == false.
func (c *Classifier) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		c.reset()
		c.logger.Warn("model.load_failed", "path", path, "error", err)
		return common.WrapError(err, "open model artifact")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			c.logger.Warn("close model artifact", "path", path, "error", cerr)
		}
	}()

	var art artifact
	if err := gob.NewDecoder(f).Decode(&art); err != nil {
		c.reset()
		c.logger.Warn("model.load_failed", "path", path, "error", err)
		return common.WrapError(err, "decode model artifact")
	}

	var model Model
	switch art.ModelKind {
	case "naive_bayes":
		model = art.NaiveBayes
	case "logistic_regression":
		model = art.LogReg
	}
	if model == nil || art.Vectorizer == nil || !art.Trained {
		c.reset()
		c.logger.Warn("model.load_failed", "path", path, "error", "incomplete artifact")
		return fmt.Errorf("decode model artifact: incomplete state")
	}

	c.vectorizer = art.Vectorizer
	c.model = model
	c.labels = art.Labels
	c.trained = art.Trained
	c.history = art.History
	c.lastSampleCount = art.LastSampleCount

	c.logger.Info("model.loaded", "path", path, "classes", len(c.labels))
	return nil
}

func (c *Classifier) reset() {
	c.vectorizer = NewVectorizer(c.maxFeatures)
	c.model = nil
	c.labels = nil
	c.trained = false
	c.history = nil
	c.lastSampleCount = 0
}

// encodeLabels returns the sorted, deduplicated label universe.
func encodeLabels(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	var labels []string
	for _, r := range raw {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		labels = append(labels, r)
	}
	sort.Strings(labels)
	return labels
}

func indexOf(labels []string, label string) int {
	for i, l := range labels {
		if l == label {
			return i
		}
	}
	return -1
}
