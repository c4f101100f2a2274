package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
)

// Discover walks root and returns every PDF under it, skipping hidden
// entries if requested. Files with identical content are returned once, at
// the first path seen in walk order.
func Discover(ctx context.Context, root string, skipHidden bool, logger *slog.Logger) ([]Candidate, DirStats, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	var (
		out   []Candidate
		stats DirStats
		seen  = map[string]string{}
	)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats.Scanned++
		if walkErr != nil {
			logger.Warn("walk error", "path", path, "error", walkErr)
			stats.Failed++
			return nil // continue walking
		}
		if skipHidden && path != root && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !AllowedExt(filepath.Ext(path)) {
			return nil
		}
		stats.Matched++

		hash, size, err := hashFile(path)
		if err != nil {
			logger.Warn("hash failed", "path", path, "error", err)
			stats.Failed++
			return nil
		}
		if first, dup := seen[hash]; dup {
			logger.Info("duplicate package skipped", "path", path, "same_as", first)
			stats.Deduplicated++
			return nil
		}
		seen[hash] = path
		out = append(out, Candidate{Path: path, Size: size, HashHex: hash})
		return nil
	})
	if err != nil {
		return out, stats, fmt.Errorf("walk: %w", err)
	}
	logger.Info("discover.ok", "root", root, "scanned", stats.Scanned, "matched", stats.Matched, "packages", len(out))
	return out, stats, nil
}
