// Command docparse-eval runs the trained classifier over a labeled corpus
// manifest and prints the accuracy report as JSON, optionally exporting it as
// XLSX or CSV.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"docparse/internal/classifier"
	"docparse/internal/common"
	"docparse/internal/entities"
	"docparse/internal/evaluate"
	"docparse/internal/export"
	"docparse/internal/parser"
	"docparse/internal/textextract"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		manifestPath = flag.String("manifest", "", "labeled corpus manifest JSON (required)")
		model        = flag.String("model", "", "model artifact path (defaults to MODEL_PATH)")
		xlsxOut      = flag.String("xlsx", "", "write the report as XLSX to this path")
		csvOut       = flag.String("csv", "", "write the report as CSV to this path")
	)
	flag.Parse()

	if *manifestPath == "" {
		printError("Error: --manifest is required\n")
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if *model == "" {
		*model = cfg.Model.ArtifactPath
	}

	docs, err := evaluate.LoadManifest(*manifestPath)
	if err != nil {
		logger.Error("load manifest", "path", *manifestPath, "error", err)
		os.Exit(1)
	}

	clf := classifier.New(cfg.Model.MaxFeatures, logger)
	if err := clf.Load(*model); err != nil {
		logger.Error("load model", "path", *model, "error", err)
		os.Exit(1)
	}

	extractor := textextract.NewExtractor(textextract.Config{
		Pdftotext:     cfg.OCR.Pdftotext,
		Pdftoppm:      cfg.OCR.Pdftoppm,
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.TesseractLang,
		TessdataDir:   cfg.OCR.TessdataDir,
		DPI:           cfg.OCR.DPI,
		MaxPages:      cfg.OCR.MaxPages,
		Timeout:       cfg.OCR.Timeout,
	})

	p := parser.New(parser.Config{
		PreviewChars: cfg.Parse.PreviewChars,
		PhoneRegion:  cfg.Model.PhoneRegion,
	}, extractor, entities.NewProseRecognizer(), clf, logger)

	evaluator := evaluate.New(p, clf, logger)
	report := evaluator.Evaluate(context.Background(), docs)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		logger.Error("encode report", "error", err)
		os.Exit(1)
	}

	svc := export.NewService(logger)
	if *xlsxOut != "" {
		raw, err := svc.ReportXLSX(report)
		if err != nil {
			logger.Error("export xlsx", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*xlsxOut, raw, 0o644); err != nil {
			logger.Error("write xlsx", "path", *xlsxOut, "error", err)
			os.Exit(1)
		}
		logger.Info("report written", "path", *xlsxOut)
	}
	if *csvOut != "" {
		raw, err := svc.ReportCSV(report)
		if err != nil {
			logger.Error("export csv", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*csvOut, raw, 0o644); err != nil {
			logger.Error("write csv", "path", *csvOut, "error", err)
			os.Exit(1)
		}
		logger.Info("report written", "path", *csvOut)
	}
}
