package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joseph-ayodele/docsplit/internal/common"
	"github.com/joseph-ayodele/docsplit/internal/entity"
)

type pgStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func openPostgres(ctx context.Context, cfg Config, logger *slog.Logger) (*pgStore, error) {
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		pc.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		pc.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	pc.ConnConfig.RuntimeParams["application_name"] = "docsplit"

	dialCtx, cancel := common.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		return nil, err
	}
	for _, stmt := range schema {
		if _, err := pool.Exec(dialCtx, stmt); err != nil {
			pool.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &pgStore{pool: pool, logger: logger}, nil
}

// rebind rewrites ? placeholders as $1, $2, ...
func rebind(query string) string {
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (s *pgStore) SavePackage(ctx context.Context, res *entity.PackageResult) error {
	pkgID := res.ID.String()
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, rebind(insertPackageSQL),
			pkgID, res.SourceName, res.PageCount, res.TextMethod, string(res.Status), res.Message,
			res.ProcessedAt.UTC().Format(timeLayout),
		); err != nil {
			s.logger.Error("failed to insert package", "package_id", pkgID, "error", err)
			return fmt.Errorf("insert package: %w", err)
		}

		batch := &pgx.Batch{}
		for i, doc := range res.SplitDocuments {
			args, err := documentArgs(pkgID, i, doc)
			if err != nil {
				return err
			}
			batch.Queue(rebind(insertDocumentSQL), args...)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			s.logger.Error("failed to insert split documents", "package_id", pkgID, "error", err)
			return fmt.Errorf("insert documents: %w", err)
		}
		return nil
	})
}

func (s *pgStore) ListDocuments(ctx context.Context, packageID uuid.UUID) ([]entity.SplitDocument, error) {
	rows, err := s.pool.Query(ctx, rebind(selectDocumentsSQL), packageID.String())
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

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

func (s *pgStore) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *pgStore) Close() error {
	s.pool.Close()
	return nil
}
