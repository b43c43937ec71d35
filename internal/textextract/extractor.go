// Package textextract recovers plain UTF-8 text from PDF and raster-image
// documents. The extractor is best-effort by contract: page-level and
// tool-level failures are logged and folded into warnings, and the caller
// receives whatever text was recovered, possibly none.
package textextract

import (
	"context"
	"time"

	"docparse/constants"
	"docparse/internal/common"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "eng"
	TessdataDir   string
	DPI           int           // rasterization DPI for scanned PDFs, default 300
	MaxPages      int           // 0 = no limit
	Timeout       time.Duration // bounds one Extract call; 0 = no limit
}

type Result struct {
	Text       string
	Pages      int
	SourceType constants.Format
	Method     string // "pdf-embedded" | "pdf-text" | "pdf-ocr" | "image-ocr"
	Duration   time.Duration
	Warnings   []string
}

type Extractor struct {
	cfg    Config
	runner Runner
}

func NewExtractor(cfg Config) *Extractor {
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Extractor{cfg: cfg, runner: execRunner{}}
}

// Extract picks a strategy based on file extension. It fails only for
// unsupported extensions; PDF and image paths report their troubles through
// Result.Warnings and return recovered text, which may be empty.
func (e *Extractor) Extract(ctx context.Context, path string) (Result, error) {
	start := time.Now()

	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	switch constants.FormatForPath(path) {
	case constants.PDF:
		res := e.extractPDF(ctx, path)
		res.Duration = time.Since(start)
		return res, nil
	case constants.IMAGE:
		res := e.extractImage(ctx, path)
		res.Duration = time.Since(start)
		return res, nil
	default:
		return Result{}, common.ErrUnsupportedFormat
	}
}
