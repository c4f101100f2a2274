package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/docsplit/internal/app"
	"github.com/joseph-ayodele/docsplit/internal/entity"
)

var (
	splitOutDir string
	splitXLSX   string
)

var splitCmd = &cobra.Command{
	Use:   "split <package.pdf>",
	Short: "Split a loan package into one PDF per document",
	Long: `Split runs the whole pipeline on one package: boundaries are detected,
each range is copied into its own PDF, classified and mined for fields.
Outputs are written to <out>/<package name>/<Title>_<n>.pdf.

Examples:
  docsplit split package.pdf
  docsplit split package.pdf --out ./parts --xlsx report.xlsx -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		res, err := application.Processor.ProcessPackage(cmd.Context(), src, filepath.Base(args[0]))
		if res == nil {
			return err
		}
		if err != nil {
			application.Logger.Warn("result not stored", "error", err)
		}

		paths, err := app.WriteOutputs(outDir(splitOutDir), res)
		if err != nil {
			return err
		}
		if splitXLSX != "" {
			if err := writeReport(splitXLSX, []*entity.PackageResult{res}); err != nil {
				return err
			}
		}
		return printOutput(cmd.OutOrStdout(), map[string]any{
			"result": res,
			"files":  paths,
		})
	},
}

func outDir(flag string) string {
	if flag != "" {
		return flag
	}
	return application.Config.Pipeline.OutputDir
}

func writeReport(path string, results []*entity.PackageResult) error {
	xlsx, err := application.Exporter.ResultsXLSX(results)
	if err != nil {
		return err
	}
	return os.WriteFile(path, xlsx, 0o644)
}

func init() {
	splitCmd.Flags().StringVar(&splitOutDir, "out", "", "output directory (default: OUTPUT_DIR)")
	splitCmd.Flags().StringVar(&splitXLSX, "xlsx", "", "also write an XLSX report to this path")
}
