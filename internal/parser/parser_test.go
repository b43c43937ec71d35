package parser

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docparse/constants"
	"docparse/internal/common"
	"docparse/internal/entities"
	"docparse/internal/textextract"
)

type stubExtractor struct {
	text string
	err  error
}

func (s stubExtractor) Extract(context.Context, string) (textextract.Result, error) {
	if s.err != nil {
		return textextract.Result{}, s.err
	}
	return textextract.Result{Text: s.text, Method: "stub", Pages: 1}, nil
}

type stubPredictor struct {
	trained bool
	label   constants.DocumentType
	err     error
}

func (s stubPredictor) IsTrained() bool { return s.trained }

func (s stubPredictor) Predict(string) (constants.DocumentType, error) {
	return s.label, s.err
}

func newTestParser(extractor TextExtractor, predictor Predictor) *Parser {
	return New(Config{PreviewChars: 50}, extractor, entities.Static{}, predictor, nil)
}

func TestParseNoTextIsSoleHardFailure(t *testing.T) {
	p := newTestParser(stubExtractor{text: ""}, nil)

	result := p.Parse(context.Background(), "/tmp/blank.pdf", Options{})

	assert.False(t, result.Success)
	assert.Equal(t, common.ErrNoText.Error(), result.Error)
	assert.Equal(t, "no text could be extracted from the document", result.Error)
	assert.Empty(t, result.DocumentType)
}

func TestParseInvoiceRoundTrip(t *testing.T) {
	text := "Invoice #INV-1001 Total: $1500.00 Tax: $120.00"
	p := newTestParser(stubExtractor{text: text}, nil)

	result := p.Parse(context.Background(), "/tmp/invoice.pdf", Options{DocumentType: "invoice"})

	require.True(t, result.Success)
	assert.Equal(t, constants.Invoice, result.DocumentType)
	assert.Equal(t, []string{"INV-1001"}, result.PatternExtraction["invoice_number"])
	assert.Contains(t, result.PatternExtraction["total_amount"], "$1500.00")
	assert.Contains(t, result.PatternExtraction["tax"], "$120.00")
	assert.NotEmpty(t, result.ID)
	assert.NotEmpty(t, result.ExtractionTime)
}

func TestParseUnknownRequestedTypeFallsBackToGeneral(t *testing.T) {
	p := newTestParser(stubExtractor{text: "value of $12.00 on 01/02/2023"}, nil)

	result := p.Parse(context.Background(), "/tmp/doc.pdf", Options{DocumentType: "mystery"})

	require.True(t, result.Success)
	assert.Equal(t, constants.General, result.DocumentType)
	assert.Contains(t, result.PatternExtraction["currency"], "$12.00")
}

func TestParseMLPredictionOverridesRequestedType(t *testing.T) {
	p := newTestParser(
		stubExtractor{text: "Receipt Total: $9.99 Payment: Cash"},
		stubPredictor{trained: true, label: constants.Receipt},
	)

	result := p.Parse(context.Background(), "/tmp/receipt.png", Options{DocumentType: "general", UseML: true})

	require.True(t, result.Success)
	assert.Equal(t, constants.Receipt, result.DocumentType)
}

func TestParseMLErrorRetainsRequestedType(t *testing.T) {
	p := newTestParser(
		stubExtractor{text: "Contract #C-1 between A and B"},
		stubPredictor{trained: true, err: errors.New("model exploded")},
	)

	result := p.Parse(context.Background(), "/tmp/contract.pdf", Options{DocumentType: "contract", UseML: true})

	require.True(t, result.Success, "ML prediction is advisory, never fatal")
	assert.Equal(t, constants.Contract, result.DocumentType)
}

func TestParseUntrainedPredictorIgnored(t *testing.T) {
	p := newTestParser(
		stubExtractor{text: "some general text worth $1.00"},
		stubPredictor{trained: false, label: constants.Invoice},
	)

	result := p.Parse(context.Background(), "/tmp/doc.pdf", Options{UseML: true})

	require.True(t, result.Success)
	assert.Equal(t, constants.General, result.DocumentType)
}

func TestParseExtractorErrorReported(t *testing.T) {
	p := newTestParser(stubExtractor{err: errors.New("unsupported file format")}, nil)

	result := p.Parse(context.Background(), "/tmp/doc.docx", Options{})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "unsupported")
}

func TestParsePreviewTruncated(t *testing.T) {
	long := make([]byte, 0, 300)
	for i := 0; i < 100; i++ {
		long = append(long, "abc"...)
	}
	p := newTestParser(stubExtractor{text: string(long)}, nil)

	result := p.Parse(context.Background(), "/tmp/doc.pdf", Options{})

	require.True(t, result.Success)
	assert.Len(t, result.CleanedTextPreview, 53) // 50 chars + "..."
}

func TestParsePreviewKeepsRunesWhole(t *testing.T) {
	// 30 three-byte runes; a 50-byte cut would land mid-rune.
	text := strings.Repeat("€", 30)
	p := newTestParser(stubExtractor{text: text}, nil)

	result := p.Parse(context.Background(), "/tmp/doc.pdf", Options{})

	require.True(t, result.Success)
	assert.True(t, utf8.ValidString(result.CleanedTextPreview))
	assert.Len(t, result.CleanedTextPreview, 51) // 48 bytes of text + "..."
}

type panicRecognizer struct{}

func (panicRecognizer) Recognize(string) (entities.Entities, error) {
	panic("recognizer blew up")
}

func TestParseRecoversFromPanic(t *testing.T) {
	p := New(Config{}, stubExtractor{text: "hello world"}, panicRecognizer{}, nil, nil)

	result := p.Parse(context.Background(), "/tmp/doc.pdf", Options{})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "internal error")
}

func TestParseAlwaysRunsAncillaryExtraction(t *testing.T) {
	text := "Prepared by: Maria Santos, email: maria@example.com, pay $5.00"
	p := New(Config{}, stubExtractor{text: text},
		entities.Static{Result: entities.Entities{entities.Person: {"Maria Santos"}}}, nil, nil)

	result := p.Parse(context.Background(), "/tmp/doc.pdf", Options{DocumentType: "receipt"})

	require.True(t, result.Success)
	assert.Equal(t, "Maria Santos", result.NameInfo.PrimaryName)
	assert.Equal(t, 1, result.MLFeatures.EmailCount)
	assert.Equal(t, 1, result.MLFeatures.CurrencyCount)
	assert.Contains(t, result.ContactInfo["email"], "maria@example.com")
	assert.Equal(t, []string{"Maria Santos"}, result.Entities.Of(entities.Person))
}
