package textextract

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/joseph-ayodele/docsplit/internal/extract"
)

// extractNative reads text page by page with the pure-Go reader. The reader
// panics on some malformed inputs, so panics are turned into errors.
func (e *Extractor) extractNative(ctx context.Context, src []byte) (res extract.TextExtractionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = extract.TextExtractionResult{}
			err = fmt.Errorf("native reader panic: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(src), int64(len(src)))
	if err != nil {
		return extract.TextExtractionResult{}, fmt.Errorf("open pdf: %w", err)
	}

	n := r.NumPage()
	if e.cfg.MaxPages > 0 && n > e.cfg.MaxPages {
		res.Warnings = append(res.Warnings, fmt.Sprintf("read first %d of %d pages", e.cfg.MaxPages, n))
		n = e.cfg.MaxPages
	}

	pages := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return extract.TextExtractionResult{}, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, perr := p.GetPlainText(nil)
		if perr != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("page %d: %v", i, perr))
			pages = append(pages, "")
			continue
		}
		pages = append(pages, Normalize(text))
	}

	res.Text = joinPages(pages)
	res.Method = MethodNative
	// A truncated read cannot be mapped back onto the document's pages.
	if e.cfg.MaxPages == 0 || r.NumPage() <= e.cfg.MaxPages {
		res.Pages = pages
	}
	return res, nil
}
