package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/docsplit/internal/app"
	"github.com/joseph-ayodele/docsplit/internal/common"
)

var version = "dev"

var (
	cfgFile      string
	outputFormat string

	application *app.App
)

var rootCmd = &cobra.Command{
	Use:   "docsplit",
	Short: "Split loan packages into their component documents",
	Long: `docsplit takes a multi-document loan package PDF, finds where each
embedded document starts, splits it into one PDF per document, classifies
each part and extracts key fields such as loan amount and interest rate.

Configuration comes from the environment (DB_URL, PDFTOTEXT_BIN,
EXTRACT_METHOD, REGISTRY_FILE, OUTPUT_DIR, ...) or a YAML file given
with --config.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if outputFormat != "yaml" && outputFormat != "json" {
			return fmt.Errorf("unknown output format %q (want yaml or json)", outputFormat)
		}
		cfg, err := common.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		a, err := app.Build(cmd.Context(), cfg, app.NewLogger(cfg.LogLevel))
		if err != nil {
			return err
		}
		application = a
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if application != nil {
			application.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "YAML config file (environment variables take precedence)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	rootCmd.AddCommand(classifyCmd, boundariesCmd, splitCmd, extractCmd, joinCmd, batchCmd, watchCmd)
}
