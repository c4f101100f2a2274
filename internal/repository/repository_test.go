package repository

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/docsplit/constants"
	"github.com/joseph-ayodele/docsplit/internal/common"
	"github.com/joseph-ayodele/docsplit/internal/entity"
)

func samplePackage() *entity.PackageResult {
	created := time.Date(2025, 3, 4, 5, 6, 7, 890, time.UTC)
	return &entity.PackageResult{
		ID:          uuid.New(),
		SourceName:  "loan.pdf",
		PageCount:   3,
		TextMethod:  "pdftotext",
		Status:      constants.PackageStatusSplitOK,
		Message:     "Successfully split document into 2 parts",
		ProcessedAt: created,
		SplitDocuments: []entity.SplitDocument{
			{
				ID:       uuid.New(),
				Filename: "Promissory Note_1.pdf",
				FileType: constants.PDFMimeType,
				FileSize: 2048,
				Boundary: entity.Boundary{StartPage: 0, EndPage: 1, TypeID: constants.PromissoryNote, Category: constants.CategoryLoan, Title: "Promissory Note"},
				Classification: &entity.Classification{
					TypeID: constants.PromissoryNote, Category: constants.CategoryLoan, Title: "Promissory Note", Confidence: 0.75,
				},
				Fields:    entity.FieldMap{"principal_amount": 250000.0, "borrower_name": "Jane Doe"},
				Status:    constants.DocumentStatusPending,
				Notes:     "Split from loan.pdf",
				CreatedAt: created,
			},
			{
				ID:        uuid.New(),
				Filename:  "Deed of Trust_2.pdf",
				FileType:  constants.PDFMimeType,
				FileSize:  1024,
				Boundary:  entity.Boundary{StartPage: 2, EndPage: 2, TypeID: constants.DeedOfTrust, Category: constants.CategoryLegal, Title: "Deed of Trust"},
				Status:    constants.DocumentStatusPending,
				CreatedAt: created,
			},
		},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openMemory(t *testing.T) ResultStore {
	t.Helper()
	store, err := Open(context.Background(), Config{DSN: "sqlite://:memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLite_SaveAndList(t *testing.T) {
	ctx := context.Background()
	store := openMemory(t)
	pkg := samplePackage()

	require.NoError(t, store.SavePackage(ctx, pkg))

	docs, err := store.ListDocuments(ctx, pkg.ID)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	note := docs[0]
	want := pkg.SplitDocuments[0]
	assert.Equal(t, want.ID, note.ID)
	assert.Equal(t, want.Filename, note.Filename)
	assert.Equal(t, want.FileSize, note.FileSize)
	assert.Equal(t, want.Boundary, note.Boundary)
	require.NotNil(t, note.Classification)
	assert.Equal(t, constants.PromissoryNote, note.Classification.TypeID)
	assert.Equal(t, 0.75, note.Classification.Confidence)
	assert.Equal(t, want.Fields, note.Fields)
	assert.Equal(t, want.Notes, note.Notes)
	assert.True(t, want.CreatedAt.Equal(note.CreatedAt))
	assert.Nil(t, note.Bytes)

	deed := docs[1]
	assert.Equal(t, "Deed of Trust_2.pdf", deed.Filename)
	assert.Nil(t, deed.Classification)
	assert.Empty(t, deed.Fields)
}

func TestSQLite_DuplicatePackageRollsBack(t *testing.T) {
	ctx := context.Background()
	store := openMemory(t)
	pkg := samplePackage()
	require.NoError(t, store.SavePackage(ctx, pkg))

	again := samplePackage()
	again.ID = pkg.ID
	assert.Error(t, store.SavePackage(ctx, again))

	docs, err := store.ListDocuments(ctx, pkg.ID)
	require.NoError(t, err)
	assert.Equal(t, pkg.SplitDocuments[0].ID, docs[0].ID)
}

func TestSQLite_UnknownPackage(t *testing.T) {
	docs, err := openMemory(t).ListDocuments(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestSQLite_FileDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "docsplit.db")

	store, err := Open(ctx, Config{DSN: path}, nil)
	require.NoError(t, err)
	pkg := samplePackage()
	require.NoError(t, store.SavePackage(ctx, pkg))
	require.NoError(t, HealthCheck(ctx, store, time.Second, testLogger()))
	Close(store, testLogger())

	reopened, err := Open(ctx, Config{DSN: "sqlite://" + path}, nil)
	require.NoError(t, err)
	defer Close(reopened, testLogger())
	docs, err := reopened.ListDocuments(ctx, pkg.ID)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), Config{DSN: "  "}, nil)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestRebind(t *testing.T) {
	assert.Equal(t, "SELECT a FROM t WHERE b = $1 AND c = $2", rebind("SELECT a FROM t WHERE b = ? AND c = ?"))
	assert.Equal(t, 19, strings.Count(rebind(insertDocumentSQL), "$"))
	assert.Contains(t, rebind(insertDocumentSQL), "$19")
	assert.NotContains(t, rebind(insertPackageSQL), "?")
}
