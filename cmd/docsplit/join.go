package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var joinCmd = &cobra.Command{
	Use:   "join <out.pdf> <in.pdf>...",
	Short: "Concatenate PDFs into one document",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		docs := make([][]byte, 0, len(args)-1)
		for _, p := range args[1:] {
			b, err := os.ReadFile(p)
			if err != nil {
				return err
			}
			docs = append(docs, b)
		}
		out, err := application.Engine.Merge(cmd.Context(), docs)
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[0], out, 0o644); err != nil {
			return err
		}
		pages, err := application.Engine.PageCount(cmd.Context(), out)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d documents, %d pages)\n", args[0], len(docs), pages)
		return err
	},
}
