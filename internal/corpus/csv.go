// Package corpus loads labeled training samples from CSV exports, document
// directories, and a synthetic generator. Loaders normalize everything into
// classifier.TrainingSample rows; training itself does not care where a
// sample came from.
package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"docparse/constants"
	"docparse/internal/classifier"
)

// LoadCSV reads training samples from a CSV file. A file that already has
// text and document_type columns is used directly; otherwise the rows are
// templated into synthetic document text for docType. With an empty docType
// the shape is auto-detected from the header.
func LoadCSV(path string, docType constants.DocumentType) ([]classifier.TrainingSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("close csv", "path", path, "error", cerr)
		}
	}()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := columnIndex(header)

	if _, hasText := cols["text"]; hasText {
		if _, hasLabel := cols["document_type"]; hasLabel {
			return readLabeledRows(reader, cols, path)
		}
	}

	if docType == "" {
		docType = detectDocumentType(cols)
		slog.Info("corpus.autodetected_type", "path", path, "document_type", docType)
	}

	return readTemplatedRows(reader, cols, path, docType)
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

// detectDocumentType guesses the document type from the column names.
func detectDocumentType(cols map[string]int) constants.DocumentType {
	hasAny := func(names ...string) bool {
		for _, n := range names {
			if _, ok := cols[n]; ok {
				return true
			}
		}
		return false
	}

	switch {
	case hasAny("first_name", "last_name", "product_id", "qty", "invoice_date"):
		return constants.Invoice
	case hasAny("tender_title", "buyer_name", "tender_value_amount", "tender_contracttype"):
		return constants.Contract
	case hasAny("store", "total", "payment_method"):
		return constants.Receipt
	default:
		return constants.General
	}
}

func readLabeledRows(reader *csv.Reader, cols map[string]int, path string) ([]classifier.TrainingSample, error) {
	var samples []classifier.TrainingSample
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Warn("corpus.bad_row", "path", path, "error", err)
			continue
		}
		text := field(row, cols, "text")
		label := field(row, cols, "document_type")
		if text == "" || label == "" {
			continue
		}
		dt, _ := constants.ParseDocumentType(label)
		samples = append(samples, classifier.TrainingSample{
			Text:         text,
			DocumentType: dt,
			SourceFile:   path,
		})
	}
	slog.Info("corpus.loaded_csv", "path", path, "samples", len(samples))
	return samples, nil
}

func readTemplatedRows(reader *csv.Reader, cols map[string]int, path string, docType constants.DocumentType) ([]classifier.TrainingSample, error) {
	var samples []classifier.TrainingSample
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Warn("corpus.bad_row", "path", path, "error", err)
			continue
		}

		var text string
		switch docType {
		case constants.Invoice:
			text = invoiceText(row, cols)
		case constants.Contract:
			text = contractText(row, cols)
		default:
			text = genericText(row, cols, docType)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		samples = append(samples, classifier.TrainingSample{
			Text:         text,
			DocumentType: docType,
			SourceFile:   path,
		})
	}
	slog.Info("corpus.converted_csv", "path", path, "samples", len(samples), "document_type", docType)
	return samples, nil
}

func field(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// invoiceText renders an invoice-style document from raw export columns.
func invoiceText(row []string, cols map[string]int) string {
	var b strings.Builder
	b.WriteString("INVOICE\n\nBill To:\n")
	writeLine(&b, "", strings.TrimSpace(field(row, cols, "first_name")+" "+field(row, cols, "last_name")))
	writeLine(&b, "", field(row, cols, "address"))
	writeLine(&b, "City: ", field(row, cols, "city"))
	writeLine(&b, "Contact: ", field(row, cols, "email"))
	writeLine(&b, "Invoice Date: ", field(row, cols, "invoice_date"))
	b.WriteString("\nProduct Details:\n")
	writeLine(&b, "Product ID: ", field(row, cols, "product_id"))
	writeLine(&b, "Quantity: ", field(row, cols, "qty"))
	writeLine(&b, "Amount: ", dollars(field(row, cols, "amount")))
	writeLine(&b, "Stock Code: ", field(row, cols, "stock_code"))
	writeLine(&b, "Job: ", field(row, cols, "job"))
	return b.String()
}

// contractText renders a contract-style document from tender export columns.
func contractText(row []string, cols map[string]int) string {
	var b strings.Builder
	b.WriteString("CONTRACT AGREEMENT\n\n")
	writeLine(&b, "", field(row, cols, "tender_title"))
	b.WriteString("\nParties:\n")
	writeLine(&b, "Buyer: ", field(row, cols, "buyer_name"))
	writeLine(&b, "Procuring Entity: ", field(row, cols, "tender_procuringentity_name"))
	b.WriteString("\nContract Details:\n")
	writeLine(&b, "Contract Type: ", field(row, cols, "tender_contracttype"))
	writeLine(&b, "Contract Value: ", dollars(field(row, cols, "tender_value_amount")))
	writeLine(&b, "Date Published: ", field(row, cols, "tender_datepublished"))
	writeLine(&b, "Description: ", field(row, cols, "tender_description"))
	return b.String()
}

// genericText renders a "column: value" document for any other type.
func genericText(row []string, cols map[string]int, docType constants.DocumentType) string {
	names := make([]string, 0, len(cols))
	for name := range cols {
		names = append(names, name)
	}
	sort.Strings(names)

	var parts []string
	for _, name := range names {
		idx := cols[name]
		if idx < len(row) && strings.TrimSpace(row[idx]) != "" {
			parts = append(parts, name+": "+strings.TrimSpace(row[idx]))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("DOCUMENT\n\n%s\n\nDetails:\n%s",
		strings.ToUpper(string(docType)), strings.Join(parts, " | "))
}

func writeLine(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString(label)
	b.WriteString(value)
	b.WriteString("\n")
}

func dollars(v string) string {
	if v == "" || strings.HasPrefix(v, "$") {
		return v
	}
	return "$" + v
}
