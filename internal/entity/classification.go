package entity

import (
	"github.com/joseph-ayodele/docsplit/constants"
)

// Classification is one scored candidate for a text body. It is recomputed on
// demand and never persisted on its own.
type Classification struct {
	TypeID           constants.DocType  `json:"type_id"`
	Category         constants.Category `json:"category"`
	Title            string             `json:"title"`
	Confidence       float64            `json:"confidence"`
	ExtractionFields []string           `json:"extraction_fields"`
}

// IsFallback reports whether c is the generic low-confidence result.
func (c Classification) IsFallback() bool {
	return c.TypeID.IsFallback()
}
