// Command docparse-train trains the document type classifier from CSV
// exports, directories of documents, or a synthetic bootstrap corpus, then
// saves the model artifact.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"docparse/constants"
	"docparse/internal/classifier"
	"docparse/internal/common"
	"docparse/internal/corpus"
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
		csvPath   = flag.String("csv", "", "training CSV (labeled text or raw invoice/contract export)")
		csvType   = flag.String("csv-type", "", "document type for raw CSV rows (auto-detected when empty)")
		dir       = flag.String("dir", "", "directory of documents to extract and use as training text")
		dirType   = flag.String("dir-type", "", "document type label for --dir files ("+strings.Join(constants.AsStringSlice(), ", ")+"); required with --dir")
		synthetic = flag.Int("synthetic", 0, "generate N synthetic samples per built-in type")
		out       = flag.String("out", "", "model artifact path (defaults to MODEL_PATH)")
	)
	flag.Parse()

	if *csvPath == "" && *dir == "" && *synthetic <= 0 {
		printError("Error: at least one of --csv, --dir or --synthetic is required\n")
		os.Exit(1)
	}
	if *dir != "" && *dirType == "" {
		printError("Error: --dir-type is required with --dir\n")
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if *out == "" {
		*out = cfg.Model.ArtifactPath
	}

	var samples []classifier.TrainingSample

	if *csvPath != "" {
		var docType constants.DocumentType
		if *csvType != "" {
			docType, _ = constants.ParseDocumentType(*csvType)
		}
		loaded, err := corpus.LoadCSV(*csvPath, docType)
		if err != nil {
			logger.Error("load csv corpus", "path", *csvPath, "error", err)
			os.Exit(1)
		}
		samples = append(samples, loaded...)
	}

	if *dir != "" {
		docType, _ := constants.ParseDocumentType(*dirType)
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
		loaded, stats, err := corpus.LoadDirectory(context.Background(), *dir, docType, extractor, logger)
		if err != nil {
			logger.Error("load directory corpus", "dir", *dir, "error", err)
			os.Exit(1)
		}
		if stats.Loaded == 0 {
			logger.Warn("directory yielded no usable documents", "dir", *dir)
		}
		samples = append(samples, loaded...)
	}

	if *synthetic > 0 {
		samples = append(samples, corpus.Synthetic(*synthetic)...)
	}

	clf := classifier.New(cfg.Model.MaxFeatures, logger)
	if err := clf.Train(samples); err != nil {
		logger.Error("training failed", "samples", len(samples), "error", err)
		os.Exit(1)
	}
	if err := clf.Save(*out); err != nil {
		logger.Error("save model", "path", *out, "error", err)
		os.Exit(1)
	}

	info := clf.Info()
	logger.Info("train.ok",
		"samples", info.SampleCount,
		"classes", info.Classes,
		"artifact", *out,
	)
}
