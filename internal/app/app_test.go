package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/docsplit/internal/common"
	"github.com/joseph-ayodele/docsplit/internal/entity"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuild(t *testing.T) {
	ctx := context.Background()
	cfg := &common.Config{Extract: common.ExtractConfig{Method: "native", Timeout: time.Second}}

	a, err := Build(ctx, cfg, quietLogger())
	require.NoError(t, err)
	defer a.Close()
	assert.Nil(t, a.Store)
	assert.Equal(t, 11, a.Registry.Len())
	assert.NotNil(t, a.Processor)

	cfg.Database.DSN = ":memory:"
	withStore, err := Build(ctx, cfg, quietLogger())
	require.NoError(t, err)
	defer withStore.Close()
	assert.NotNil(t, withStore.Store)
}

func TestBuild_CustomRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "types.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`types:
  - id: credit_report
    category: financial
    title: Credit Report
    patterns: [credit report]
    extraction_fields: [credit_score]
`), 0o644))

	a, err := Build(context.Background(), &common.Config{Pipeline: common.PipelineConfig{RegistryFile: path}}, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, a.Registry.Len())

	_, err = Build(context.Background(), &common.Config{Pipeline: common.PipelineConfig{RegistryFile: path + ".missing"}}, quietLogger())
	assert.Error(t, err)
}

func TestWriteOutputs(t *testing.T) {
	dir := t.TempDir()
	res := &entity.PackageResult{
		ID:         uuid.New(),
		SourceName: "/inbox/loan-123.pdf",
		SplitDocuments: []entity.SplitDocument{
			{Filename: "Promissory Note_1.pdf", Bytes: []byte("one")},
			{Filename: "Deed of Trust_2.pdf", Bytes: []byte("two")},
		},
	}

	paths, err := WriteOutputs(dir, res)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "loan-123", "Promissory Note_1.pdf"), paths[0])

	b, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.Equal(t, "two", string(b))

	res.SourceName = ""
	paths, err = WriteOutputs(dir, res)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, res.ID.String(), "Promissory Note_1.pdf"), paths[0])
}
