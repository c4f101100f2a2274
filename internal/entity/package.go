package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/docsplit/constants"
)

// SplitDocument is one output of splitting a package along a boundary.
type SplitDocument struct {
	ID             uuid.UUID                `json:"id"`
	Filename       string                   `json:"filename"`
	FileType       string                   `json:"file_type"`
	FileSize       int                      `json:"file_size"`
	Bytes          []byte                   `json:"-"`
	Boundary       Boundary                 `json:"boundary"`
	Classification *Classification          `json:"classification,omitempty"`
	Fields         FieldMap                 `json:"fields,omitempty"`
	Status         constants.DocumentStatus `json:"status"`
	Notes          string                   `json:"notes,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
}

// PackageResult is everything one pipeline invocation produces for a package.
type PackageResult struct {
	ID             uuid.UUID               `json:"id"`
	SourceName     string                  `json:"source_name"`
	PageCount      int                     `json:"page_count"`
	TextMethod     string                  `json:"text_method,omitempty"`
	Boundaries     []Boundary              `json:"boundaries"`
	SplitDocuments []SplitDocument         `json:"split_documents"`
	Status         constants.PackageStatus `json:"status"`
	Message        string                  `json:"message"`
	ProcessedAt    time.Time               `json:"processed_at"`
}
