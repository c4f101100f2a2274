// Package app wires configuration into a ready Processor and its collaborators.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/docsplit/internal/common"
	"github.com/joseph-ayodele/docsplit/internal/core"
	"github.com/joseph-ayodele/docsplit/internal/core/textextract"
	"github.com/joseph-ayodele/docsplit/internal/entity"
	"github.com/joseph-ayodele/docsplit/internal/export"
	"github.com/joseph-ayodele/docsplit/internal/pdf"
	"github.com/joseph-ayodele/docsplit/internal/registry"
	"github.com/joseph-ayodele/docsplit/internal/repository"
	"github.com/joseph-ayodele/docsplit/internal/server"
)

type App struct {
	Config    *common.Config
	Logger    *slog.Logger
	Registry  *registry.Registry
	Engine    *pdf.Engine
	Processor *core.Processor
	Store     repository.ResultStore // nil when DB_URL is empty
	Exporter  *export.Service
}

// NewLogger builds the JSON logger every binary uses.
func NewLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// Build loads the registry, opens the store and assembles the processor.
func Build(ctx context.Context, cfg *common.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	reg := registry.Default()
	if cfg.Pipeline.RegistryFile != "" {
		r, err := registry.LoadFile(cfg.Pipeline.RegistryFile)
		if err != nil {
			return nil, fmt.Errorf("load registry: %w", err)
		}
		reg = r
		logger.Info("registry loaded", "path", cfg.Pipeline.RegistryFile, "types", reg.Len())
	}

	store, err := server.ConnectStore(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	engine := pdf.NewEngine(logger)
	text := textextract.NewExtractor(textextract.Config{
		Pdftotext: cfg.Extract.Pdftotext,
		Method:    cfg.Extract.Method,
	}, logger)

	opts := []core.Option{core.WithExtractTimeout(cfg.Extract.Timeout)}
	if store != nil {
		opts = append(opts, core.WithSink(store))
	}

	return &App{
		Config:    cfg,
		Logger:    logger,
		Registry:  reg,
		Engine:    engine,
		Processor: core.NewProcessor(logger, text, engine, reg, opts...),
		Store:     store,
		Exporter:  export.NewService(logger),
	}, nil
}

// Close releases the store, if any.
func (a *App) Close() {
	if a.Store != nil {
		repository.Close(a.Store, a.Logger)
	}
}

// WriteOutputs writes every split document of res to
// <dir>/<source name without extension>/<filename> and returns the paths.
func WriteOutputs(dir string, res *entity.PackageResult) ([]string, error) {
	base := strings.TrimSuffix(filepath.Base(res.SourceName), filepath.Ext(res.SourceName))
	if base == "" || base == "." {
		base = res.ID.String()
	}
	target := filepath.Join(dir, base)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	paths := make([]string, 0, len(res.SplitDocuments))
	for _, d := range res.SplitDocuments {
		p := filepath.Join(target, d.Filename)
		if err := os.WriteFile(p, d.Bytes, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", p, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}
