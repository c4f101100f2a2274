package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/docsplit/internal/app"
	"github.com/joseph-ayodele/docsplit/internal/core"
	"github.com/joseph-ayodele/docsplit/internal/entity"
	"github.com/joseph-ayodele/docsplit/internal/ingest"
)

var (
	batchOutDir     string
	batchXLSX       string
	batchWorkers    int
	batchSkipHidden bool
)

type batchLine struct {
	Source    string   `json:"source"`
	PackageID string   `json:"package_id,omitempty"`
	Status    string   `json:"status,omitempty"`
	Documents int      `json:"documents"`
	Files     []string `json:"files,omitempty"`
	Error     string   `json:"error,omitempty"`
}

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Split every package PDF under a directory",
	Long: `Batch walks a directory, skips files with duplicate content and
processes the rest in parallel. A failing package is reported and does not
stop the others. The XLSX report defaults to <dir>/../docsplit.xlsx.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cands, _, err := ingest.Discover(ctx, args[0], batchSkipHidden, application.Logger)
		if err != nil {
			return err
		}

		inputs := make([]core.Input, len(cands))
		for i, c := range cands {
			inputs[i] = core.FileInput(c.Path)
		}
		workers := batchWorkers
		if workers <= 0 {
			workers = application.Config.Pipeline.Workers
		}
		items, err := application.Processor.ProcessBatch(ctx, inputs, workers)
		if err != nil {
			return err
		}

		dir := outDir(batchOutDir)
		var (
			lines   []batchLine
			results []*entity.PackageResult
		)
		for _, it := range items {
			line := batchLine{Source: it.Name}
			if it.Result == nil {
				line.Error = errString(it.Err)
				lines = append(lines, line)
				continue
			}
			if it.Err != nil {
				line.Error = it.Err.Error()
			}
			res := it.Result
			results = append(results, res)
			line.PackageID, line.Status, line.Documents = res.ID.String(), string(res.Status), len(res.SplitDocuments)
			paths, err := app.WriteOutputs(dir, res)
			if err != nil {
				line.Error = err.Error()
			}
			line.Files = paths
			lines = append(lines, line)
		}

		report := batchXLSX
		if report == "" {
			report = filepath.Join(filepath.Dir(filepath.Clean(args[0])), "docsplit.xlsx")
		}
		if err := writeReport(report, results); err != nil {
			return err
		}
		return printOutput(cmd.OutOrStdout(), map[string]any{
			"packages": lines,
			"report":   report,
		})
	},
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func init() {
	batchCmd.Flags().StringVar(&batchOutDir, "out", "", "output directory (default: OUTPUT_DIR)")
	batchCmd.Flags().StringVar(&batchXLSX, "xlsx", "", "XLSX report path")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "packages processed in parallel (default: WORKERS)")
	batchCmd.Flags().BoolVar(&batchSkipHidden, "skip-hidden", true, "skip hidden files and directories")
}
