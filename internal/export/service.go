// Package export renders parse results and evaluation reports as XLSX
// workbooks or CSV, for handing off to spreadsheet-driven review.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"docparse/internal/evaluate"
	"docparse/internal/parser"
)

// Service produces XLSX/CSV bytes from in-memory results.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ResultsXLSX returns an XLSX workbook with one row per parsed document.
func (s *Service) ResultsXLSX(results []parser.Result) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Documents"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	headers := []string{
		"ID",
		"Document Type",
		"Success",
		"Primary Name",
		"Extracted Fields",
		"Contact Info",
		"Text Preview",
		"Error",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range results {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, r.ID)
		write(2, string(r.DocumentType))
		write(3, r.Success)
		write(4, r.NameInfo.PrimaryName)
		write(5, flattenFields(r.PatternExtraction))
		write(6, flattenFields(r.ContactInfo))
		write(7, r.CleanedTextPreview)
		write(8, r.Error)
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 38) // id
	_ = f.SetColWidth(sheet, "B", "C", 14)
	_ = f.SetColWidth(sheet, "D", "D", 24)
	_ = f.SetColWidth(sheet, "E", "F", 48)
	_ = f.SetColWidth(sheet, "G", "G", 60)
	_ = f.SetColWidth(sheet, "H", "H", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.results.xlsx.ok",
		"rows", len(results),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// ReportXLSX returns an XLSX workbook with an evaluation summary sheet and a
// confusion sheet listing per (true, predicted) pair counts.
func (s *Service) ReportXLSX(report evaluate.Report) ([]byte, error) {
	f := excelize.NewFile()
	const summary = "Summary"
	index, err := f.NewSheet(summary)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	rows := [][]any{
		{"Run ID", report.RunID},
		{"Generated At", report.GeneratedAt.Format(time.RFC3339)},
		{"Accuracy (%)", report.Accuracy},
		{"Correct", report.Correct},
		{"Total", report.Total},
		{"Skipped", report.Skipped},
		{"Training Samples", report.TrainingSamples},
		{"Label Space", strings.Join(report.LabelSpace, ", ")},
	}
	for i, r := range rows {
		for j, v := range r {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			_ = f.SetCellValue(summary, cell, v)
		}
	}
	_ = f.SetColWidth(summary, "A", "A", 20)
	_ = f.SetColWidth(summary, "B", "B", 44)

	const confusion = "Confusion"
	if _, err := f.NewSheet(confusion); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	_ = f.SetCellValue(confusion, "A1", "True Type")
	_ = f.SetCellValue(confusion, "B1", "Predicted Type")
	_ = f.SetCellValue(confusion, "C1", "Count")

	row := 2
	for _, key := range sortedKeys(report.Confusion) {
		trueType, predicted := splitConfusionKey(key)
		_ = f.SetCellValue(confusion, fmt.Sprintf("A%d", row), trueType)
		_ = f.SetCellValue(confusion, fmt.Sprintf("B%d", row), predicted)
		_ = f.SetCellValue(confusion, fmt.Sprintf("C%d", row), report.Confusion[key])
		row++
	}
	_ = f.SetColWidth(confusion, "A", "B", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.report.xlsx.ok", "run_id", report.RunID)
	return buf.Bytes(), nil
}

// ReportCSV returns the confusion breakdown as CSV with a summary header row.
func (s *Service) ReportCSV(report evaluate.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{
		{"run_id", "accuracy", "correct", "total", "skipped"},
		{
			report.RunID,
			fmt.Sprintf("%.2f", report.Accuracy),
			fmt.Sprintf("%d", report.Correct),
			fmt.Sprintf("%d", report.Total),
			fmt.Sprintf("%d", report.Skipped),
		},
		{"true_type", "predicted_type", "count"},
	}
	for _, key := range sortedKeys(report.Confusion) {
		trueType, predicted := splitConfusionKey(key)
		records = append(records, []string{trueType, predicted, fmt.Sprintf("%d", report.Confusion[key])})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("csv write: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv flush: %w", err)
	}
	return buf.Bytes(), nil
}

// flattenFields renders a field map as "key: v1 | v2; key2: v3" for a single
// spreadsheet cell.
func flattenFields(fields map[string][]string) string {
	if len(fields) == 0 {
		return ""
	}
	parts := make([]string, 0, len(fields))
	for _, key := range sortedFieldKeys(fields) {
		parts = append(parts, key+": "+strings.Join(fields[key], " | "))
	}
	return truncate(strings.Join(parts, "; "), 500)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedFieldKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func splitConfusionKey(key string) (string, string) {
	if i := strings.Index(key, "_"); i >= 0 {
		return key[:i], key[i+1:]
	}
	return key, ""
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
