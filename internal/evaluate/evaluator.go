// Package evaluate measures classification accuracy over a labeled corpus
// and produces a confusion profile per (true, predicted) label pair.
package evaluate

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"docparse/internal/classifier"
	"docparse/internal/parser"
)

// LabeledDocument pairs a document file with its ground-truth type.
type LabeledDocument struct {
	FilePath         string `json:"file_path"`
	TrueDocumentType string `json:"true_document_type"`
}

// Report is the outcome of one evaluation run.
type Report struct {
	RunID           string         `json:"run_id"`
	Accuracy        float64        `json:"accuracy"`
	Correct         int            `json:"correct_predictions"`
	Total           int            `json:"total_documents"`
	Confusion       map[string]int `json:"confusion_data"`
	Skipped         int            `json:"skipped_documents"`
	LabelSpace      []string       `json:"model_classes"`
	TrainingSamples int            `json:"training_samples"`
	GeneratedAt     time.Time      `json:"generated_at"`
}

// DocumentParser is the orchestrator contract the evaluator drives.
type DocumentParser interface {
	Parse(ctx context.Context, path string, opts parser.Options) parser.Result
}

// TrainingInfoProvider exposes the classifier bookkeeping echoed in reports.
type TrainingInfoProvider interface {
	Info() classifier.TrainingInfo
}

type Evaluator struct {
	parser DocumentParser
	info   TrainingInfoProvider
	logger *slog.Logger
}

func New(p DocumentParser, info TrainingInfoProvider, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{parser: p, info: info, logger: logger}
}

// Evaluate parses every labeled document with ML classification enabled and
// tallies prediction accuracy. Documents that fail to parse are skipped and
// logged; they never abort the run.
func (e *Evaluator) Evaluate(ctx context.Context, docs []LabeledDocument) Report {
	report := Report{
		RunID:       uuid.NewString(),
		Confusion:   make(map[string]int),
		GeneratedAt: time.Now().UTC(),
	}

	for _, doc := range docs {
		if doc.FilePath == "" || doc.TrueDocumentType == "" {
			continue
		}
		report.Total++

		result := e.parser.Parse(ctx, doc.FilePath, parser.Options{UseML: true})
		if !result.Success {
			e.logger.Warn("evaluate.parse_failed",
				"path", doc.FilePath, "error", result.Error)
			report.Skipped++
			continue
		}

		predicted := string(result.DocumentType)
		if predicted == doc.TrueDocumentType {
			report.Correct++
		}
		report.Confusion[fmt.Sprintf("%s_%s", doc.TrueDocumentType, predicted)]++
	}

	if report.Total > 0 {
		report.Accuracy = round2(float64(report.Correct) / float64(report.Total) * 100)
	}

	if e.info != nil {
		info := e.info.Info()
		report.LabelSpace = info.Classes
		report.TrainingSamples = info.SampleCount
	}

	e.logger.Info("evaluate.done",
		"run_id", report.RunID,
		"total", report.Total,
		"correct", report.Correct,
		"skipped", report.Skipped,
		"accuracy", report.Accuracy,
	)
	return report
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
