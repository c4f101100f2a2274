package textextract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joseph-ayodele/docsplit/internal/extract"
)

// extractPdftotext writes src to a temp file and runs
// `pdftotext -layout -enc UTF-8 -eol unix <file> -`.
func (e *Extractor) extractPdftotext(ctx context.Context, src []byte) (extract.TextExtractionResult, error) {
	f, err := os.CreateTemp("", "docsplit-*.pdf")
	if err != nil {
		return extract.TextExtractionResult{}, fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	defer func() { _ = os.Remove(path) }()

	if _, err := f.Write(src); err != nil {
		_ = f.Close()
		return extract.TextExtractionResult{}, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return extract.TextExtractionResult{}, fmt.Errorf("close temp file: %w", err)
	}

	args := []string{"-layout", "-enc", "UTF-8", "-eol", "unix", path, "-"}
	stdout, stderr, err := e.runner.Run(ctx, e.cfg.Pdftotext, args...)
	if err != nil {
		return extract.TextExtractionResult{}, fmt.Errorf("pdftotext: %w (stderr: %s)", err, strings.TrimSpace(truncate(string(stderr), 512)))
	}

	pages := splitPages(string(stdout))
	return extract.TextExtractionResult{
		Text:   joinPages(pages),
		Pages:  pages,
		Method: MethodPdftotext,
	}, nil
}
