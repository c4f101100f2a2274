// Package textextract gets plain text out of PDF bytes, using poppler's
// pdftotext when available and an in-process reader otherwise.
package textextract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joseph-ayodele/docsplit/internal/common"
	"github.com/joseph-ayodele/docsplit/internal/extract"
)

const (
	MethodAuto      = "auto"
	MethodPdftotext = "pdftotext"
	MethodNative    = "native"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Method    string // auto | pdftotext | native; if empty -> auto
	MaxPages  int    // 0 = no limit, native reader only
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Method == "" {
		cfg.Method = MethodAuto
	}
	return &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// WithRunner swaps the command runner, for tests.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	return e
}

var _ extract.TextExtractor = (*Extractor)(nil)

// Extract picks a strategy based on the configured method. In auto mode
// pdftotext runs first and the native reader covers failures or blank output.
func (e *Extractor) Extract(ctx context.Context, src []byte) (extract.TextExtractionResult, error) {
	start := time.Now()
	e.logger.Debug("starting text extraction", "method", e.cfg.Method, "bytes", len(src))

	var (
		res extract.TextExtractionResult
		err error
	)
	switch e.cfg.Method {
	case MethodPdftotext:
		res, err = e.extractPdftotext(ctx, src)
	case MethodNative:
		res, err = e.extractNative(ctx, src)
	case MethodAuto:
		res, err = e.extractPdftotext(ctx, src)
		if err != nil || strings.TrimSpace(res.Text) == "" {
			var warn []string
			if err != nil {
				warn = append(warn, "pdftotext: "+err.Error())
			} else {
				warn = append(warn, "pdftotext: no text")
			}
			if ctx.Err() != nil {
				break
			}
			res, err = e.extractNative(ctx, src)
			res.Warnings = append(warn, res.Warnings...)
		}
	default:
		return extract.TextExtractionResult{}, fmt.Errorf("unsupported extraction method: %q", e.cfg.Method)
	}
	res.Duration = time.Since(start)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = errors.Join(err, ctxErr)
		}
		e.logger.Warn("text extraction failed", "method", e.cfg.Method, "error", err)
		return res, fmt.Errorf("%w: %w", common.ErrExtractionUnavailable, err)
	}
	e.logger.Debug("text extraction ok",
		"method", res.Method,
		"pages", len(res.Pages),
		"chars", len(res.Text),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
