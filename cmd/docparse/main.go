// Command docparse parses a single PDF or image document and prints the
// structured extraction result as JSON on stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"docparse/constants"
	"docparse/internal/classifier"
	"docparse/internal/common"
	"docparse/internal/entities"
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
		file    = flag.String("file", "", "document to parse (required)")
		docType = flag.String("type", "", "document type hint ("+strings.Join(constants.AsStringSlice(), ", ")+")")
		useML   = flag.Bool("ml", false, "classify the document type with the trained model")
		model   = flag.String("model", "", "model artifact path (defaults to MODEL_PATH)")
		xlsxOut = flag.String("xlsx", "", "also write the result as XLSX to this path")
	)
	flag.Parse()

	if *file == "" {
		printError("Error: --file is required\n")
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

	var predictor parser.Predictor
	if *useML {
		clf := classifier.New(cfg.Model.MaxFeatures, logger)
		if err := clf.Load(*model); err != nil {
			logger.Warn("model unavailable, classification disabled", "path", *model, "error", err)
		}
		predictor = clf
	}

	p := parser.New(parser.Config{
		PreviewChars: cfg.Parse.PreviewChars,
		PhoneRegion:  cfg.Model.PhoneRegion,
	}, extractor, entities.NewProseRecognizer(), predictor, logger)

	result := p.Parse(context.Background(), *file, parser.Options{
		DocumentType: *docType,
		UseML:        *useML,
	})

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}

	if *xlsxOut != "" {
		raw, err := export.NewService(logger).ResultsXLSX([]parser.Result{result})
		if err != nil {
			logger.Error("export xlsx", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*xlsxOut, raw, 0o644); err != nil {
			logger.Error("write xlsx", "path", *xlsxOut, "error", err)
			os.Exit(1)
		}
		logger.Info("result written", "path", *xlsxOut)
	}

	if !result.Success {
		os.Exit(1)
	}
}
