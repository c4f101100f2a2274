// Package boundary finds where each embedded document starts inside a package.
//
// Detection is a greedy single pass: a page that contains any registered
// phrase opens a new boundary for the first type (in registry order) with a
// matching phrase, unless that type is already open. There is no look-ahead and
// no confirmation over several pages, so a stray phrase on one page switches
// the type for every page after it.
package boundary

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/docsplit/constants"
	"github.com/joseph-ayodele/docsplit/internal/common"
	"github.com/joseph-ayodele/docsplit/internal/entity"
	"github.com/joseph-ayodele/docsplit/internal/registry"
)

// Trigger returns the first definition, in registry order, with a phrase that
// occurs in text.
func Trigger(text string, reg *registry.Registry) (registry.Definition, bool) {
	lower := strings.ToLower(text)
	var hit registry.Definition
	found := false
	reg.Scan(func(d registry.Definition) bool {
		for _, p := range d.Patterns {
			if strings.Contains(lower, p) {
				hit, found = d, true
				return false
			}
		}
		return true
	})
	return hit, found
}

// Detect scans windows in page order and returns boundaries that partition
// [0, len(windows)-1]. With no trigger anywhere it returns one
// general_document boundary spanning every page. windows must be non-empty
// and ordered by PageIndex.
func Detect(windows []entity.PageWindow, reg *registry.Registry) []entity.Boundary {
	if len(windows) == 0 {
		return nil
	}
	lastPage := len(windows) - 1

	var (
		out     []entity.Boundary
		current *entity.Boundary
	)
	for i, w := range windows {
		d, ok := Trigger(w.Text, reg)
		if !ok {
			continue
		}
		if current != nil && current.TypeID == d.TypeID {
			continue
		}
		if current != nil {
			current.EndPage = i - 1
			out = append(out, *current)
		}
		start := i
		if current == nil {
			// Untyped leading pages belong to the first detected document.
			start = 0
		}
		current = &entity.Boundary{
			StartPage: start,
			TypeID:    d.TypeID,
			Category:  d.Category,
			Title:     d.Title,
		}
	}

	if current == nil {
		return []entity.Boundary{Whole(len(windows))}
	}
	current.EndPage = lastPage
	return append(out, *current)
}

// Whole returns the single fallback boundary covering every page.
func Whole(pageCount int) entity.Boundary {
	return entity.Boundary{
		StartPage: 0,
		EndPage:   pageCount - 1,
		TypeID:    constants.GeneralDocument,
		Category:  constants.CategoryMisc,
		Title:     constants.GeneralDocument.FallbackTitle(),
	}
}

// Validate checks that bs partitions [0, pageCount-1] exactly, in order.
func Validate(bs []entity.Boundary, pageCount int) error {
	if pageCount <= 0 {
		return fmt.Errorf("%w: page count %d", common.ErrInvalidBoundaries, pageCount)
	}
	if len(bs) == 0 {
		return fmt.Errorf("%w: no boundaries", common.ErrInvalidBoundaries)
	}
	next := 0
	for i, b := range bs {
		if b.StartPage != next {
			return fmt.Errorf("%w: boundary %d starts at page %d, expected %d", common.ErrInvalidBoundaries, i, b.StartPage, next)
		}
		if b.EndPage < b.StartPage {
			return fmt.Errorf("%w: boundary %d ends before it starts (%d < %d)", common.ErrInvalidBoundaries, i, b.EndPage, b.StartPage)
		}
		next = b.EndPage + 1
	}
	if next != pageCount {
		return fmt.Errorf("%w: last boundary ends at page %d, expected %d", common.ErrInvalidBoundaries, next-1, pageCount-1)
	}
	return nil
}
