package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/docsplit/constants"
	"github.com/joseph-ayodele/docsplit/internal/entity"
)

// Both backends share these statements; Postgres rebinds the ? placeholders.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS packages (
		id           TEXT PRIMARY KEY,
		source_name  TEXT NOT NULL,
		page_count   INTEGER NOT NULL,
		text_method  TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL,
		message      TEXT NOT NULL DEFAULT '',
		processed_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS split_documents (
		id          TEXT PRIMARY KEY,
		package_id  TEXT NOT NULL REFERENCES packages(id) ON DELETE CASCADE,
		idx         INTEGER NOT NULL,
		filename    TEXT NOT NULL,
		file_type   TEXT NOT NULL,
		file_size   INTEGER NOT NULL,
		start_page  INTEGER NOT NULL,
		end_page    INTEGER NOT NULL,
		doc_type    TEXT NOT NULL,
		category    TEXT NOT NULL,
		title       TEXT NOT NULL,
		class_type  TEXT NOT NULL DEFAULT '',
		class_category TEXT NOT NULL DEFAULT '',
		class_title TEXT NOT NULL DEFAULT '',
		confidence  DOUBLE PRECISION NOT NULL DEFAULT 0,
		fields      TEXT NOT NULL DEFAULT '{}',
		status      TEXT NOT NULL,
		notes       TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		UNIQUE (package_id, idx)
	)`,
}

const (
	insertPackageSQL = `INSERT INTO packages (id, source_name, page_count, text_method, status, message, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	insertDocumentSQL = `INSERT INTO split_documents (id, package_id, idx, filename, file_type, file_size,
		start_page, end_page, doc_type, category, title, class_type, class_category, class_title, confidence,
		fields, status, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	selectDocumentsSQL = `SELECT id, filename, file_type, file_size, start_page, end_page, doc_type, category,
		title, class_type, class_category, class_title, confidence, fields, status, notes, created_at
		FROM split_documents WHERE package_id = ? ORDER BY idx`
)

const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// documentArgs flattens doc for insertDocumentSQL.
func documentArgs(packageID string, idx int, doc entity.SplitDocument) ([]any, error) {
	fields := doc.Fields
	if fields == nil {
		fields = entity.FieldMap{}
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}
	var (
		classType, classCategory, classTitle string
		confidence                           float64
	)
	if c := doc.Classification; c != nil {
		classType, classCategory, classTitle = string(c.TypeID), string(c.Category), c.Title
		confidence = c.Confidence
	}
	return []any{
		doc.ID.String(), packageID, idx, doc.Filename, doc.FileType, doc.FileSize,
		doc.Boundary.StartPage, doc.Boundary.EndPage, string(doc.Boundary.TypeID),
		string(doc.Boundary.Category), doc.Boundary.Title, classType, classCategory, classTitle, confidence,
		string(raw), string(doc.Status), doc.Notes, doc.CreatedAt.UTC().Format(timeLayout),
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(r rowScanner) (entity.SplitDocument, error) {
	var (
		doc                                  entity.SplitDocument
		id, docType, category, status        string
		classType, classCategory, classTitle string
		confidence                           float64
		fields, createdAt                    string
	)
	if err := r.Scan(&id, &doc.Filename, &doc.FileType, &doc.FileSize,
		&doc.Boundary.StartPage, &doc.Boundary.EndPage, &docType, &category,
		&doc.Boundary.Title, &classType, &classCategory, &classTitle, &confidence,
		&fields, &status, &doc.Notes, &createdAt); err != nil {
		return doc, err
	}

	var err error
	if doc.ID, err = uuid.Parse(id); err != nil {
		return doc, fmt.Errorf("parse document id: %w", err)
	}
	doc.Boundary.TypeID = constants.DocType(docType)
	doc.Boundary.Category = constants.Category(category)
	doc.Status = constants.DocumentStatus(status)
	if classType != "" {
		doc.Classification = &entity.Classification{
			TypeID:     constants.DocType(classType),
			Category:   constants.Category(classCategory),
			Title:      classTitle,
			Confidence: confidence,
		}
	}
	doc.Fields = entity.FieldMap{}
	if err := json.Unmarshal([]byte(fields), &doc.Fields); err != nil {
		return doc, fmt.Errorf("decode fields: %w", err)
	}
	if doc.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return doc, fmt.Errorf("parse created_at: %w", err)
	}
	return doc, nil
}
