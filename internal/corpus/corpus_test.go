package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docparse/constants"
	"docparse/internal/textextract"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSVLabeled(t *testing.T) {
	path := writeFile(t, t.TempDir(), "train.csv",
		"text,document_type\n"+
			"Invoice #INV-1 total $50.00,invoice\n"+
			"Receipt from Walmart total $9.99,receipt\n"+
			",invoice\n")

	samples, err := LoadCSV(path, "")
	require.NoError(t, err)
	require.Len(t, samples, 2, "blank text rows are dropped")
	assert.Equal(t, constants.Invoice, samples[0].DocumentType)
	assert.Equal(t, constants.Receipt, samples[1].DocumentType)
	assert.Equal(t, path, samples[0].SourceFile)
}

func TestLoadCSVInvoiceAutodetect(t *testing.T) {
	path := writeFile(t, t.TempDir(), "invoices.csv",
		"first_name,last_name,city,amount,invoice_date,qty\n"+
			"John,Smith,Chicago,125.50,01/15/2024,3\n")

	samples, err := LoadCSV(path, "")
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, constants.Invoice, samples[0].DocumentType)
	assert.Contains(t, samples[0].Text, "INVOICE")
	assert.Contains(t, samples[0].Text, "John Smith")
	assert.Contains(t, samples[0].Text, "Amount: $125.50")
	assert.Contains(t, samples[0].Text, "Invoice Date: 01/15/2024")
}

func TestLoadCSVContract(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tenders.csv",
		"tender_title,buyer_name,tender_value_amount,tender_contracttype\n"+
			"Road Maintenance,City of Austin,98000,services\n")

	samples, err := LoadCSV(path, constants.Contract)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, constants.Contract, samples[0].DocumentType)
	assert.Contains(t, samples[0].Text, "CONTRACT AGREEMENT")
	assert.Contains(t, samples[0].Text, "Buyer: City of Austin")
	assert.Contains(t, samples[0].Text, "Contract Value: $98000")
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"), "")
	assert.Error(t, err)
}

// pathExtractor scripts per-path extraction outcomes.
type pathExtractor struct {
	texts map[string]string
	fail  map[string]bool
}

func (p pathExtractor) Extract(_ context.Context, path string) (textextract.Result, error) {
	name := filepath.Base(path)
	if p.fail[name] {
		return textextract.Result{}, errors.New("extraction failed")
	}
	return textextract.Result{Text: p.texts[name], Method: "stub"}, nil
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.pdf", "%PDF-1.4")
	writeFile(t, dir, "b.png", "fake image")
	writeFile(t, dir, "broken.pdf", "%PDF-1.4")
	writeFile(t, dir, "notes.txt", "not a document")
	writeFile(t, dir, ".hidden.pdf", "%PDF-1.4")

	extractor := pathExtractor{
		texts: map[string]string{
			"a.pdf": "Invoice #INV-7 total $10.00",
			"b.png": "Receipt total $3.50",
		},
		fail: map[string]bool{"broken.pdf": true},
	}

	samples, stats, err := LoadDirectory(context.Background(), dir, constants.Invoice, extractor, nil)
	require.NoError(t, err)

	assert.Len(t, samples, 2)
	assert.Equal(t, 4, stats.Scanned, "hidden files are not scanned")
	assert.Equal(t, 2, stats.Loaded)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 1, stats.Failed)
	for _, s := range samples {
		assert.Equal(t, constants.Invoice, s.DocumentType)
		assert.NotEmpty(t, s.SourceFile)
	}
}

func TestLoadDirectoryNotADirectory(t *testing.T) {
	path := writeFile(t, t.TempDir(), "file.pdf", "%PDF-1.4")
	_, _, err := LoadDirectory(context.Background(), path, constants.Invoice, pathExtractor{}, nil)
	assert.Error(t, err)
}

func TestSynthetic(t *testing.T) {
	samples := Synthetic(5)
	assert.Len(t, samples, 20)

	byType := map[constants.DocumentType]int{}
	for _, s := range samples {
		byType[s.DocumentType]++
		assert.NotEmpty(t, s.Text)
	}
	assert.Equal(t, 5, byType[constants.Invoice])
	assert.Equal(t, 5, byType[constants.Receipt])
	assert.Equal(t, 5, byType[constants.Contract])
	assert.Equal(t, 5, byType[constants.Contact])
}

func TestSyntheticReproducible(t *testing.T) {
	assert.Equal(t, Synthetic(3), Synthetic(3))
}

func TestSyntheticDefaultCount(t *testing.T) {
	assert.Len(t, Synthetic(0), 40)
}
