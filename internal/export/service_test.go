package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/docsplit/constants"
	"github.com/joseph-ayodele/docsplit/internal/entity"
)

func TestResultsXLSX(t *testing.T) {
	pkgID := uuid.New()
	res := &entity.PackageResult{
		ID:         pkgID,
		SourceName: "loan.pdf",
		Status:     constants.PackageStatusSplitOK,
		SplitDocuments: []entity.SplitDocument{
			{
				Filename: "Promissory Note_1.pdf",
				FileSize: 2048,
				Boundary: entity.Boundary{StartPage: 0, EndPage: 1, TypeID: constants.PromissoryNote, Category: constants.CategoryLoan, Title: "Promissory Note"},
				Classification: &entity.Classification{
					TypeID: constants.PromissoryNote, Confidence: 0.75,
				},
				Fields: entity.FieldMap{"principal_amount": 250000.0, "borrower_name": "Jane Doe"},
				Notes:  "Split from loan.pdf",
			},
			{
				Filename: "General Document_2.pdf",
				Boundary: entity.Boundary{StartPage: 2, EndPage: 2, TypeID: constants.GeneralDocument, Category: constants.CategoryMisc, Title: "General Document"},
			},
		},
	}

	out, err := NewService(nil).ResultsXLSX([]*entity.PackageResult{res, nil})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{DocumentsSheet, FieldsSheet}, f.GetSheetList())

	rows, err := f.GetRows(DocumentsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, documentHeaders, rows[0])
	assert.Equal(t, []string{
		pkgID.String(), "loan.pdf", "SPLIT_OK", "1", "Promissory Note_1.pdf",
		"promissory_note", "loan", "Promissory Note", "1-2", "promissory_note", "0.75", "2048", "Split from loan.pdf",
	}, rows[1])
	assert.Equal(t, "3-3", rows[2][8])

	fieldRows, err := f.GetRows(FieldsSheet)
	require.NoError(t, err)
	require.Len(t, fieldRows, 3)
	assert.Equal(t, fieldHeaders, fieldRows[0])
	assert.Equal(t, []string{"Promissory Note_1.pdf", "promissory_note", "borrower_name", "Jane Doe"}, fieldRows[1])
	assert.Equal(t, []string{"Promissory Note_1.pdf", "promissory_note", "principal_amount", "250000"}, fieldRows[2])
}

func TestResultsXLSX_Empty(t *testing.T) {
	out, err := NewService(nil).ResultsXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows(DocumentsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	long := strings.Repeat("x", 20)
	got := truncate(long, 10)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.Equal(t, strings.Repeat("x", 9), strings.TrimSuffix(got, "…"))
}
