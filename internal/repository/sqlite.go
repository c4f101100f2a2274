package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/docsplit/internal/entity"
)

type sqliteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func openSQLite(ctx context.Context, path string, logger *slog.Logger) (*sqliteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Every pooled connection to ":memory:" would be a separate database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=10000",
	}
	if path != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL", "PRAGMA synchronous=NORMAL")
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &sqliteStore{db: db, logger: logger}, nil
}

func (s *sqliteStore) SavePackage(ctx context.Context, res *entity.PackageResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	pkgID := res.ID.String()
	if _, err := tx.ExecContext(ctx, insertPackageSQL,
		pkgID, res.SourceName, res.PageCount, res.TextMethod, string(res.Status), res.Message,
		res.ProcessedAt.UTC().Format(timeLayout),
	); err != nil {
		s.logger.Error("failed to insert package", "package_id", pkgID, "error", err)
		return fmt.Errorf("insert package: %w", err)
	}
	for i, doc := range res.SplitDocuments {
		args, err := documentArgs(pkgID, i, doc)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insertDocumentSQL, args...); err != nil {
			s.logger.Error("failed to insert split document", "package_id", pkgID, "index", i, "error", err)
			return fmt.Errorf("insert document %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.logger.Debug("package stored", "package_id", pkgID, "documents", len(res.SplitDocuments))
	return nil
}

func (s *sqliteStore) ListDocuments(ctx context.Context, packageID uuid.UUID) ([]entity.SplitDocument, error) {
	rows, err := s.db.QueryContext(ctx, selectDocumentsSQL, packageID.String())
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []entity.SplitDocument
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *sqliteStore) Close() error { return s.db.Close() }
