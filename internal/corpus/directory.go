package corpus

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"docparse/constants"
	"docparse/internal/classifier"
	"docparse/internal/textextract"
)

// TextExtractor pulls text out of a single document file.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (textextract.Result, error)
}

// DirectoryStats summarizes a directory scan.
type DirectoryStats struct {
	Scanned int
	Loaded  int
	Skipped int
	Failed  int
}

// LoadDirectory walks root, extracts text from every supported document file
// and labels each resulting sample with docType. Subdirectories are included;
// hidden files and unsupported extensions are skipped. Extraction failures
// are logged and counted but never abort the scan.
func LoadDirectory(ctx context.Context, root string, docType constants.DocumentType, extractor TextExtractor, logger *slog.Logger) ([]classifier.TrainingSample, DirectoryStats, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var stats DirectoryStats

	info, err := os.Stat(root)
	if err != nil {
		return nil, stats, fmt.Errorf("stat corpus directory: %w", err)
	}
	if !info.IsDir() {
		return nil, stats, fmt.Errorf("corpus path %s is not a directory", root)
	}

	var samples []classifier.TrainingSample
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		stats.Scanned++

		if constants.FormatForPath(path) == "" {
			stats.Skipped++
			return nil
		}

		result, err := extractor.Extract(ctx, path)
		if err != nil {
			logger.Warn("corpus.extract_failed", "path", path, "error", err)
			stats.Failed++
			return nil
		}
		text := strings.TrimSpace(result.Text)
		if text == "" {
			logger.Warn("corpus.empty_text", "path", path, "method", result.Method)
			stats.Failed++
			return nil
		}

		samples = append(samples, classifier.TrainingSample{
			Text:         text,
			DocumentType: docType,
			SourceFile:   path,
		})
		stats.Loaded++
		return nil
	})
	if walkErr != nil {
		return nil, stats, fmt.Errorf("walk corpus directory: %w", walkErr)
	}

	logger.Info("corpus.loaded_directory",
		"root", root,
		"document_type", docType,
		"scanned", stats.Scanned,
		"loaded", stats.Loaded,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
	)
	return samples, stats, nil
}
