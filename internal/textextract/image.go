package textextract

import (
	"context"
	"fmt"
	"log/slog"

	"docparse/constants"
)

// extractImage runs OCR over the whole image. A missing or failing tesseract
// deployment degrades to empty text plus a warning; the orchestrator decides
// whether that is fatal for the overall parse.
func (e *Extractor) extractImage(ctx context.Context, path string) Result {
	res := Result{SourceType: constants.IMAGE, Pages: 1, Method: "image-ocr"}

	txt, warns, err := e.tesseractOCR(ctx, path)
	res.Warnings = append(res.Warnings, warns...)
	if err != nil {
		slog.Warn("image ocr unavailable or failed", "path", path, "error", err)
		res.Warnings = append(res.Warnings, fmt.Sprintf("tesseract: %v", err))
		return res
	}
	res.Text = txt
	return res
}

func (e *Extractor) tesseractOCR(ctx context.Context, path string) (string, []string, error) {
	args := []string{path, "stdout", "-l", e.cfg.TesseractLang}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	// tesseract <file> stdout -l <lang>
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", []string{string(errb)}, fmt.Errorf("tesseract: %w", err)
	}
	return string(out), nil, nil
}
