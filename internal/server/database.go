package server

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/docsplit/internal/common"
	repo "github.com/joseph-ayodele/docsplit/internal/repository"
)

// ConnectStore opens the result store described by cfg and pings it. An
// empty DSN means no store: it returns nil and no error.
func ConnectStore(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (repo.ResultStore, error) {
	if cfg.DSN == "" {
		logger.Info("no DB_URL set; results will not be stored")
		return nil, nil
	}
	store, err := repo.Open(ctx, repo.Config{
		DSN:             cfg.DSN,
		MaxConns:        cfg.MaxConns,
		MinConns:        cfg.MinConns,
		MaxConnLifetime: cfg.MaxConnLifetime,
		MaxConnIdleTime: cfg.MaxConnIdleTime,
		DialTimeout:     cfg.DialTimeout,
	}, logger)
	if err != nil {
		return nil, err
	}
	if err := repo.HealthCheck(ctx, store, cfg.DialTimeout, logger); err != nil {
		logger.Error("database ping failed", "error", err)
		repo.Close(store, logger)
		return nil, err
	}
	return store, nil
}
