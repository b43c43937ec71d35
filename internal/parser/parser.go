// Package parser composes text extraction, cleaning, classification, and the
// extraction layers into one parse call. Parse never propagates a failure as
// an error or panic: every outcome is a well-formed Result with a success
// flag.
package parser

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"docparse/constants"
	"docparse/internal/common"
	"docparse/internal/entities"
	"docparse/internal/features"
	"docparse/internal/nameholder"
	"docparse/internal/patterns"
	"docparse/internal/textclean"
	"docparse/internal/textextract"
)

// TextExtractor is the file-to-text stage.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (textextract.Result, error)
}

// Predictor is the read side of the trained classifier.
type Predictor interface {
	IsTrained() bool
	Predict(text string) (constants.DocumentType, error)
}

// Options controls a single parse.
type Options struct {
	// DocumentType is the caller-requested type; empty means general.
	DocumentType string
	// UseML asks the classifier to override the requested type. Prediction
	// is advisory: any predictor error retains the requested type.
	UseML bool
}

// Result is the structured outcome of one parse call.
type Result struct {
	ID                 string                `json:"id"`
	Success            bool                  `json:"success"`
	DocumentType       constants.DocumentType `json:"document_type,omitempty"`
	PatternExtraction  map[string][]string   `json:"pattern_extraction,omitempty"`
	ContactInfo        map[string][]string   `json:"contact_info,omitempty"`
	NameInfo           nameholder.NameInfo   `json:"name_info"`
	Entities           entities.Entities     `json:"entities,omitempty"`
	MLFeatures         features.Features     `json:"ml_features"`
	CleanedTextPreview string                `json:"cleaned_text,omitempty"`
	ExtractionTime     string                `json:"extraction_time"`
	Warnings           []string              `json:"warnings,omitempty"`
	Error              string                `json:"error,omitempty"`
}

// Config holds orchestrator tuning.
type Config struct {
	PreviewChars int    // default 1000
	PhoneRegion  string // default "US"
}

type Parser struct {
	cfg        Config
	extractor  TextExtractor
	recognizer entities.Recognizer
	predictor  Predictor
	logger     *slog.Logger
}

func New(cfg Config, extractor TextExtractor, recognizer entities.Recognizer, predictor Predictor, logger *slog.Logger) *Parser {
	if cfg.PreviewChars <= 0 {
		cfg.PreviewChars = 1000
	}
	if cfg.PhoneRegion == "" {
		cfg.PhoneRegion = "US"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		cfg:        cfg,
		extractor:  extractor,
		recognizer: recognizer,
		predictor:  predictor,
		logger:     logger,
	}
}

// Parse runs the full pipeline over one document file.
func (p *Parser) Parse(ctx context.Context, path string, opts Options) (result Result) {
	start := time.Now()
	result = Result{
		ID:             uuid.NewString(),
		ExtractionTime: start.UTC().Format(time.RFC3339),
	}

	// The orchestrator boundary: nothing below may take the process down.
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("parse.panic", "path", path, "panic", r)
			result.Success = false
			result.Error = fmt.Sprintf("%s: %v", common.ErrInternal, r)
		}
	}()

	extracted, err := p.extractor.Extract(ctx, path)
	if err != nil {
		p.logger.Error("parse.extract_failed", "path", path, "error", err)
		result.Error = err.Error()
		return result
	}
	result.Warnings = extracted.Warnings

	if extracted.Text == "" {
		p.logger.Warn("parse.no_text", "path", path, "method", extracted.Method)
		result.Error = common.ErrNoText.Error()
		return result
	}

	cleaned := textclean.Clean(extracted.Text)
	if cleaned == "" {
		result.Error = common.ErrNoText.Error()
		return result
	}

	docType := p.resolveType(cleaned, opts)
	result.DocumentType = docType

	ents, err := p.recognizer.Recognize(cleaned)
	if err != nil {
		// Entity recognition is one extraction layer, not a gate.
		p.logger.Warn("parse.entities_failed", "path", path, "error", err)
		ents = entities.Entities{}
	}

	if docType == constants.Invoice {
		result.PatternExtraction = patterns.ExtractInvoice(cleaned, ents)
	} else {
		result.PatternExtraction = patterns.Extract(cleaned, docType)
	}

	result.ContactInfo = patterns.ExtractContact(cleaned, p.cfg.PhoneRegion)
	result.NameInfo = nameholder.Extract(cleaned, ents)
	result.Entities = ents
	result.MLFeatures = features.Build(cleaned, ents)
	result.CleanedTextPreview = preview(cleaned, p.cfg.PreviewChars)
	result.Success = true

	p.logger.Info("parse.ok",
		"path", path,
		"document_type", docType,
		"method", extracted.Method,
		"pages", extracted.Pages,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result
}

// resolveType picks the document type once, at the entry point. ML prediction
// only applies when requested and available, and never fails the parse.
func (p *Parser) resolveType(cleaned string, opts Options) constants.DocumentType {
	docType, _ := constants.ParseDocumentType(opts.DocumentType)

	if opts.UseML && p.predictor != nil && p.predictor.IsTrained() {
		predicted, err := p.predictor.Predict(cleaned)
		if err != nil {
			p.logger.Warn("parse.ml_prediction_failed", "error", err)
			return docType
		}
		return predicted
	}
	return docType
}

// preview truncates to at most limit bytes without splitting a rune.
func preview(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
