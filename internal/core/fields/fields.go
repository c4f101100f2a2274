// Package fields pulls named values out of document text with ordered
// regular expressions and normalizes them to numbers or trimmed strings.
package fields

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/docsplit/internal/common"
	"github.com/joseph-ayodele/docsplit/internal/entity"
)

// Extractor applies Patterns to text. It is read-only after construction.
type Extractor struct {
	patterns Patterns
	logger   *slog.Logger
}

func New(patterns Patterns, logger *slog.Logger) *Extractor {
	if patterns == nil {
		patterns = DefaultPatterns()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{patterns: patterns, logger: logger}
}

// Has reports whether any expression is registered for name.
func (e *Extractor) Has(name string) bool {
	return len(e.patterns[name]) > 0
}

// ExtractRaw returns the first non-empty capture for each requested field.
// Patterns are tried in order and the first one that captures wins. Fields
// with no registered patterns or no match are left out.
func (e *Extractor) ExtractRaw(text string, names []string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		for _, re := range e.patterns[name] {
			if v, ok := firstCapture(re, text); ok {
				out[name] = v
				break
			}
		}
	}
	return out
}

// Extract runs ExtractRaw and normalizes the values. Values that cannot be
// normalized are dropped.
func (e *Extractor) Extract(text string, names []string) entity.FieldMap {
	raw := e.ExtractRaw(text, names)
	out, dropped := Normalize(raw)
	for _, d := range dropped {
		e.logger.Debug("field dropped", "field", d.Field, "raw", d.Raw, "error", d.Err)
	}
	return out
}

// TextSource yields the text body to extract from.
type TextSource func(ctx context.Context) (string, error)

// ExtractFrom obtains the text from src and extracts names from it. If the
// text cannot be obtained the result is an empty map, never an error.
func (e *Extractor) ExtractFrom(ctx context.Context, src TextSource, names []string) entity.FieldMap {
	text, err := src(ctx)
	if err != nil {
		e.logger.Warn("field extraction skipped", "error", fmt.Errorf("%w: %v", common.ErrExtractionUnavailable, err))
		return entity.FieldMap{}
	}
	return e.Extract(text, names)
}

func firstCapture(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return "", false
	}
	v := strings.TrimSpace(m[1])
	if v == "" {
		return "", false
	}
	return v, true
}

// Dropped records a raw value that failed normalization.
type Dropped struct {
	Field string
	Raw   string
	Err   error
}

// Kind is how a field's raw value is normalized, decided by its name.
type Kind int

const (
	KindText Kind = iota
	KindAmount
	KindRate
)

// KindOf classifies a field name: names containing amount, price or value are
// amounts; names containing rate are percentages; everything else is text.
func KindOf(name string) Kind {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "amount"), strings.Contains(n, "price"), strings.Contains(n, "value"):
		return KindAmount
	case strings.Contains(n, "rate"):
		return KindRate
	default:
		return KindText
	}
}

// Normalize converts raw captures into typed values. Amounts lose thousands
// separators and a leading currency sign; rates lose a trailing percent sign;
// both become float64. Text is trimmed. Numeric values that do not parse are
// dropped and reported.
func Normalize(raw map[string]string) (entity.FieldMap, []Dropped) {
	out := make(entity.FieldMap, len(raw))
	var dropped []Dropped
	for name, v := range raw {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		switch KindOf(name) {
		case KindAmount:
			f, err := parseAmount(v)
			if err != nil {
				dropped = append(dropped, Dropped{Field: name, Raw: v, Err: err})
				continue
			}
			out[name] = f
		case KindRate:
			f, err := parseRate(v)
			if err != nil {
				dropped = append(dropped, Dropped{Field: name, Raw: v, Err: err})
				continue
			}
			out[name] = f
		default:
			out[name] = v
		}
	}
	return out, dropped
}

func parseAmount(v string) (float64, error) {
	s := strings.ReplaceAll(v, ",", "")
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q", common.ErrFieldParse, v)
	}
	return f, nil
}

func parseRate(v string) (float64, error) {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "%"))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: rate %q", common.ErrFieldParse, v)
	}
	return f, nil
}
