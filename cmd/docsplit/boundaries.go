package main

import (
	"os"

	"github.com/spf13/cobra"
)

var boundariesCmd = &cobra.Command{
	Use:   "boundaries <package.pdf>",
	Short: "Detect document boundaries without splitting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		a, err := application.Processor.Analyze(cmd.Context(), src)
		if err != nil {
			return err
		}
		return printOutput(cmd.OutOrStdout(), map[string]any{
			"page_count":     a.PageCount,
			"text_available": a.TextAvailable,
			"text_method":    a.TextMethod,
			"exact_pages":    a.ExactPages,
			"boundaries":     a.Boundaries,
			"warnings":       a.Warnings,
		})
	},
}
