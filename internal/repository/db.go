package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/docsplit/internal/common"
	"github.com/joseph-ayodele/docsplit/internal/entity"
)

// ResultStore persists package results and their split documents. Document
// bytes are never stored; only metadata, classification and fields are.
type ResultStore interface {
	SavePackage(ctx context.Context, res *entity.PackageResult) error
	ListDocuments(ctx context.Context, packageID uuid.UUID) ([]entity.SplitDocument, error)
	Ping(ctx context.Context) error
	Close() error
}

type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// Open picks a backend from the DSN: postgres:// and postgresql:// go to
// Postgres, anything else (a path, "file:..." or ":memory:", optionally
// prefixed with "sqlite://") is an SQLite database. The schema is created if
// missing.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (ResultStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, fmt.Errorf("%w: empty database dsn", common.ErrInvalidInput)
	}

	var (
		store ResultStore
		err   error
	)
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		logger.Info("connecting to database", "driver", "postgres")
		store, err = openPostgres(ctx, cfg, logger)
	default:
		logger.Info("connecting to database", "driver", "sqlite", "path", strings.TrimPrefix(dsn, "sqlite://"))
		store, err = openSQLite(ctx, strings.TrimPrefix(dsn, "sqlite://"), logger)
	}
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrDatabase, err)
	}
	logger.Info("successfully connected to database")
	return store, nil
}

// HealthCheck pings the store, bounded by timeout when positive.
func HealthCheck(ctx context.Context, store ResultStore, timeout time.Duration, logger *slog.Logger) error {
	logger.Debug("pinging database")
	ctx, cancel := common.WithTimeout(ctx, timeout)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("%w: ping: %w", common.ErrDatabase, err)
	}
	logger.Debug("database ping successful")
	return nil
}

// Close closes the store, logging any error.
func Close(store ResultStore, logger *slog.Logger) {
	if store == nil {
		return
	}
	logger.Info("closing database connections")
	if err := store.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
		return
	}
	logger.Info("database connections closed")
}
