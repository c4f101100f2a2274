// Package pdf wraps pdfcpu for the page-level operations the splitter needs:
// counting pages, copying a page selection into a new document, and joining
// documents back together.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/joseph-ayodele/docsplit/internal/common"
)

// Engine implements the page-copy contract on top of pdfcpu. Each call reads
// its own input, so an Engine can be shared across goroutines.
type Engine struct {
	logger *slog.Logger
}

func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

func newConfig() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// PageCount returns the number of pages in src.
func (e *Engine) PageCount(ctx context.Context, src []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n, err := api.PageCount(bytes.NewReader(src), newConfig())
	if err != nil {
		return 0, fmt.Errorf("%w: page count: %v", common.ErrMalformedPDF, err)
	}
	return n, nil
}

// CopyPages returns a new document holding the zero-based pages of src, in
// the order given. Indices must be ascending and in range.
func (e *Engine) CopyPages(ctx context.Context, src []byte, pages []int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("copy pages: empty page selection")
	}
	start := time.Now()

	selection, err := Selection(pages)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := api.Trim(bytes.NewReader(src), &out, selection, newConfig()); err != nil {
		e.logger.Error("pdf copy failed", "pages", len(pages), "error", err)
		return nil, fmt.Errorf("copy pages %v: %w", selection, err)
	}

	e.logger.Debug("pdf copy ok",
		"pages", len(pages),
		"selection", selection,
		"bytes", out.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out.Bytes(), nil
}

// Merge concatenates docs in order into one document.
func (e *Engine) Merge(ctx context.Context, docs [][]byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch len(docs) {
	case 0:
		return nil, fmt.Errorf("merge: no documents")
	case 1:
		// MergeRaw wants at least two inputs; a rewrite keeps the output normalized.
		var out bytes.Buffer
		if err := api.Optimize(bytes.NewReader(docs[0]), &out, newConfig()); err != nil {
			return nil, fmt.Errorf("merge: %w", err)
		}
		return out.Bytes(), nil
	}

	readers := make([]io.ReadSeeker, len(docs))
	for i, d := range docs {
		readers[i] = bytes.NewReader(d)
	}
	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, newConfig()); err != nil {
		return nil, fmt.Errorf("merge %d documents: %w", len(docs), err)
	}
	return out.Bytes(), nil
}

// Selection turns ascending zero-based indices into pdfcpu page selection
// strings (one-based, with consecutive runs collapsed to "a-b").
func Selection(pages []int) ([]string, error) {
	var out []string
	for i := 0; i < len(pages); {
		if pages[i] < 0 {
			return nil, fmt.Errorf("page index %d out of range", pages[i])
		}
		if i > 0 && pages[i] <= pages[i-1] {
			return nil, fmt.Errorf("page indices must be ascending: %d after %d", pages[i], pages[i-1])
		}
		j := i
		for j+1 < len(pages) && pages[j+1] == pages[j]+1 {
			j++
		}
		if i == j {
			out = append(out, strconv.Itoa(pages[i]+1))
		} else {
			out = append(out, strconv.Itoa(pages[i]+1)+"-"+strconv.Itoa(pages[j]+1))
		}
		i = j + 1
	}
	return out, nil
}
