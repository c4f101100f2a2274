// Package classify scores a text body against every registered document type.
package classify

import (
	"slices"
	"sort"
	"strings"

	"github.com/joseph-ayodele/docsplit/constants"
	"github.com/joseph-ayodele/docsplit/internal/entity"
	"github.com/joseph-ayodele/docsplit/internal/registry"
)

// Scoring policy. These are tuning knobs, not derived values.
const (
	// DampeningFactor scales the pattern count so that hitting about 70% of a
	// type's phrases already yields full confidence.
	DampeningFactor = 0.7
	// AcceptanceThreshold is the minimum top confidence accepted as a match.
	AcceptanceThreshold = 0.3
	// FallbackConfidence is reported with the generic classification.
	FallbackConfidence = 0.1
)

// Classifier ranks document types by phrase frequency. It holds only a
// read-only registry and is safe for concurrent use.
type Classifier struct {
	reg *registry.Registry
}

func New(reg *registry.Registry) *Classifier {
	if reg == nil {
		reg = registry.Default()
	}
	return &Classifier{reg: reg}
}

// Rank scores every registered type against text and returns all candidates,
// highest confidence first. Equal confidences keep registry order.
func (c *Classifier) Rank(text string) []entity.Classification {
	lower := strings.ToLower(text)
	out := make([]entity.Classification, 0, c.reg.Len())
	c.reg.Scan(func(d registry.Definition) bool {
		out = append(out, entity.Classification{
			TypeID:           d.TypeID,
			Category:         d.Category,
			Title:            d.Title,
			Confidence:       Confidence(CountMatches(lower, d.Patterns), len(d.Patterns)),
			ExtractionFields: slices.Clone(d.ExtractionFields),
		})
		return true
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

// Classify returns the best candidate for text, or the generic fallback when
// the best confidence is below AcceptanceThreshold.
func (c *Classifier) Classify(text string) entity.Classification {
	ranked := c.Rank(text)
	if len(ranked) == 0 || ranked[0].Confidence < AcceptanceThreshold {
		return Fallback()
	}
	return ranked[0]
}

// Fallback is the result used when no type is confident enough or no text is available.
func Fallback() entity.Classification {
	return entity.Classification{
		TypeID:           constants.GenericDocument,
		Category:         constants.CategoryMisc,
		Title:            constants.GenericDocument.FallbackTitle(),
		Confidence:       FallbackConfidence,
		ExtractionFields: []string{},
	}
}

// CountMatches counts every non-overlapping occurrence of every pattern in
// lower, which must already be lower-cased.
func CountMatches(lower string, patterns []string) int {
	n := 0
	for _, p := range patterns {
		if p == "" {
			continue
		}
		n += strings.Count(lower, p)
	}
	return n
}

// Confidence is min(matches / (patterns * DampeningFactor), 1).
func Confidence(matches, patterns int) float64 {
	if patterns <= 0 || matches <= 0 {
		return 0
	}
	conf := float64(matches) / (float64(patterns) * DampeningFactor)
	if conf > 1 {
		conf = 1
	}
	return conf
}
