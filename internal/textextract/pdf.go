package textextract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"docparse/constants"
)

// extractPDF tries strategies in order of cost: embedded text objects read
// in-process, then pdftotext in layout mode, then rasterize + OCR for
// scanned documents with no text layer.
func (e *Extractor) extractPDF(ctx context.Context, path string) Result {
	res := Result{SourceType: constants.PDF}

	text, pages, err := extractEmbeddedText(path)
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("embedded text: %v", err))
	}
	if strings.TrimSpace(text) != "" {
		res.Text, res.Pages, res.Method = text, pages, "pdf-embedded"
		return res
	}

	text, pages, warns, err := e.pdfToText(ctx, path)
	res.Warnings = append(res.Warnings, warns...)
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("pdftotext: %v", err))
	}
	if strings.TrimSpace(text) != "" {
		res.Text, res.Pages, res.Method = text, pages, "pdf-text"
		return res
	}

	text, pages, warns, err = e.pdfToOCR(ctx, path)
	res.Warnings = append(res.Warnings, warns...)
	if err != nil {
		slog.Error("pdf ocr fallback failed", "path", path, "error", err)
		res.Warnings = append(res.Warnings, fmt.Sprintf("pdf ocr: %v", err))
		return res
	}
	res.Text, res.Pages, res.Method = text, pages, "pdf-ocr"
	return res
}

// extractEmbeddedText concatenates per-page text with newline separators,
// skipping pages that yield nothing.
func extractEmbeddedText(path string) (string, int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("close pdf", "path", path, "error", cerr)
		}
	}()

	var b strings.Builder
	pages := r.NumPage()
	for pageNum := 1; pageNum <= pages; pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			slog.Debug("pdf page yielded no text", "path", path, "page", pageNum, "error", err)
			continue
		}
		if strings.TrimSpace(content) == "" {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), pages, nil
}

func (e *Extractor) pdfToText(ctx context.Context, path string) (text string, pages int, warnings []string, err error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", 0, []string{string(errb)}, err
	}
	text = string(out)
	// A form-feed \f is used as page separator by default
	pages = 1 + strings.Count(text, "\f")
	return text, pages, nil, nil
}

func (e *Extractor) pdfToOCR(ctx context.Context, path string) (text string, pages int, warnings []string, err error) {
	tmpDir, err := os.MkdirTemp("", "dp-pp-*")
	if err != nil {
		return "", 0, nil, err
	}
	defer func() {
		if rerr := os.RemoveAll(tmpDir); rerr != nil {
			slog.Warn("remove temp dir", "dir", tmpDir, "error", rerr)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 300 -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", path, prefix)
	if err != nil {
		return "", 0, []string{string(errb)}, err
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return "", 0, []string{"pdftoppm produced no images"}, fmt.Errorf("no pages rendered")
	}

	var b strings.Builder
	var warns []string
	for _, img := range matches {
		txt, w, err := e.tesseractOCR(ctx, img)
		if err != nil {
			warns = append(warns, err.Error())
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(txt)
		warns = append(warns, w...)
	}
	return b.String(), len(matches), warns, nil
}
