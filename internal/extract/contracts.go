package extract

import (
	"context"
	"time"
)

// TextExtractor turns PDF bytes into plain text. Implementations may shell
// out or parse in process; callers treat any error as "text unavailable".
type TextExtractor interface {
	Extract(ctx context.Context, src []byte) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text     string
	Pages    []string // per-page text when the method can tell pages apart
	Method   string   // "pdftotext" | "native"
	Duration time.Duration
	Warnings []string
}

// Func adapts a plain function to TextExtractor.
type Func func(ctx context.Context, src []byte) (TextExtractionResult, error)

func (f Func) Extract(ctx context.Context, src []byte) (TextExtractionResult, error) {
	return f(ctx, src)
}
