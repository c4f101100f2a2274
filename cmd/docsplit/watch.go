package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/docsplit/internal/app"
	jobs "github.com/joseph-ayodele/docsplit/internal/async"
	"github.com/joseph-ayodele/docsplit/internal/core/async"
	"github.com/joseph-ayodele/docsplit/internal/entity"
	"github.com/joseph-ayodele/docsplit/internal/ingest"
)

var (
	watchOutDir      string
	watchInitialScan bool
	watchDebounce    time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>...",
	Short: "Watch inbox directories and split packages as they arrive",
	Long: `Watch processes every PDF created or rewritten under the given
directories. Packages are queued and handled by WORKERS workers; split files
go to the output directory and results to the store when DB_URL is set.
Stop with Ctrl+C; queued packages are finished first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := application.Logger
		cfg := application.Config.Pipeline
		dir := outDir(watchOutDir)

		queue := async.NewProcessorQueue(application.Processor, logger,
			async.WithWorkers(cfg.Workers),
			async.WithQueueSize(cfg.QueueSize),
			async.WithProcessTimeout(cfg.ProcessTimeout),
			async.WithResultHandler(func(_ context.Context, job jobs.Job, res *entity.PackageResult, err error) {
				if res == nil {
					return
				}
				paths, werr := app.WriteOutputs(dir, res)
				if werr != nil {
					logger.Error("write outputs failed", "path", job.Path, "error", werr)
					return
				}
				logger.Info("outputs written", "path", job.Path, "files", len(paths), "dir", dir)
			}),
		)

		events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Roots:       args,
			InitialScan: watchInitialScan,
			Debounce:    watchDebounce,
			SkipHidden:  true,
			Logger:      logger,
		})
		if err != nil {
			queue.Shutdown(context.Background())
			return err
		}
		logger.Info("watching", "roots", args)

	loop:
		for {
			select {
			case p, ok := <-events:
				if !ok {
					break loop
				}
				if err := queue.Enqueue(ctx, jobs.Job{Path: p, TraceID: uuid.NewString()}); err != nil {
					logger.Warn("enqueue failed", "path", p, "error", err)
				}
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				logger.Warn("watcher error", "error", err)
			case <-ctx.Done():
				break loop
			}
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ProcessTimeout)
		defer cancel()
		queue.Shutdown(shutdownCtx)
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchOutDir, "out", "", "output directory (default: OUTPUT_DIR)")
	watchCmd.Flags().BoolVar(&watchInitialScan, "initial-scan", false, "also process PDFs already present")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 2*time.Second, "wait this long after the last write before processing a file")
}
