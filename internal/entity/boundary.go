package entity

import (
	"github.com/joseph-ayodele/docsplit/constants"
)

// PageWindow is the approximate text of one physical page.
type PageWindow struct {
	PageIndex int    `json:"page_index"`
	Text      string `json:"text"`
}

// Boundary is a contiguous, zero-based, inclusive page range assigned to one document type.
type Boundary struct {
	StartPage int                `json:"start_page"`
	EndPage   int                `json:"end_page"`
	TypeID    constants.DocType  `json:"type_id"`
	Category  constants.Category `json:"category"`
	Title     string             `json:"title"`
}

// PageCount returns the number of pages covered by b.
func (b Boundary) PageCount() int {
	return b.EndPage - b.StartPage + 1
}

// Pages returns the zero-based page indices covered by b, in order.
func (b Boundary) Pages() []int {
	if b.EndPage < b.StartPage {
		return nil
	}
	out := make([]int, 0, b.PageCount())
	for i := b.StartPage; i <= b.EndPage; i++ {
		out = append(out, i)
	}
	return out
}
