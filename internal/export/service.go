package export

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/docsplit/internal/entity"
)

const (
	DocumentsSheet = "Documents"
	FieldsSheet    = "Fields"
)

// Service produces XLSX reports for processed packages.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

var documentHeaders = []string{
	"Package",
	"Source",
	"Package Status",
	"#",
	"Filename",
	"Document Type",
	"Category",
	"Title",
	"Pages",
	"Classified As",
	"Confidence",
	"File Size",
	"Notes",
}

var fieldHeaders = []string{"Filename", "Document Type", "Field", "Value"}

// ResultsXLSX returns a workbook with one Documents row per split document and
// one Fields row per extracted field. Nil results are skipped.
func (s *Service) ResultsXLSX(results []*entity.PackageResult) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// The default workbook starts with "Sheet1"; rename it instead of adding.
	if err := f.SetSheetName(f.GetSheetName(0), DocumentsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(FieldsSheet); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	writeRow(f, DocumentsSheet, 1, toAny(documentHeaders))
	writeRow(f, FieldsSheet, 1, toAny(fieldHeaders))

	docRow, fieldRow := 2, 2
	for _, res := range results {
		if res == nil {
			continue
		}
		for i, d := range res.SplitDocuments {
			classified, confidence := "", 0.0
			if d.Classification != nil {
				classified, confidence = string(d.Classification.TypeID), d.Classification.Confidence
			}
			writeRow(f, DocumentsSheet, docRow, []any{
				res.ID.String(),
				res.SourceName,
				string(res.Status),
				i + 1,
				d.Filename,
				string(d.Boundary.TypeID),
				string(d.Boundary.Category),
				d.Boundary.Title,
				fmt.Sprintf("%d-%d", d.Boundary.StartPage+1, d.Boundary.EndPage+1),
				classified,
				confidence,
				d.FileSize,
				truncate(d.Notes, 140),
			})
			docRow++

			names := make([]string, 0, len(d.Fields))
			for name := range d.Fields {
				names = append(names, name)
			}
			slices.Sort(names)
			for _, name := range names {
				writeRow(f, FieldsSheet, fieldRow, []any{d.Filename, classified, name, d.Fields[name]})
				fieldRow++
			}
		}
	}

	// Widen a few columns
	_ = f.SetColWidth(DocumentsSheet, "A", "A", 38) // package id
	_ = f.SetColWidth(DocumentsSheet, "B", "B", 28) // source
	_ = f.SetColWidth(DocumentsSheet, "E", "E", 32) // filename
	_ = f.SetColWidth(DocumentsSheet, "F", "H", 22)
	_ = f.SetColWidth(DocumentsSheet, "M", "M", 48) // notes
	_ = f.SetColWidth(FieldsSheet, "A", "A", 32)
	_ = f.SetColWidth(FieldsSheet, "B", "C", 22)
	_ = f.SetColWidth(FieldsSheet, "D", "D", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"packages", len(results),
		"documents", docRow-2,
		"fields", fieldRow-2,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
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
