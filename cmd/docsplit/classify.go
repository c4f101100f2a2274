package main

import (
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/docsplit/internal/entity"
)

var classifyRank bool

var classifyCmd = &cobra.Command{
	Use:   "classify <file.pdf|file.txt>",
	Short: "Classify a document by its text",
	Long: `Classify scores the document's text against every registered document
type and prints the best match, or generic_document when nothing scores at
least 0.3. With --rank every candidate is printed, best first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, isPDF, err := readInput(args[0])
		if err != nil {
			return err
		}
		proc := application.Processor

		if classifyRank {
			text := string(b)
			if isPDF {
				text = extractedText(cmd, b)
			}
			return printOutput(cmd.OutOrStdout(), proc.RankText(text))
		}

		var c entity.Classification
		if isPDF {
			c = proc.ClassifyDocument(cmd.Context(), b)
		} else {
			c = proc.ClassifyText(string(b))
		}
		return printOutput(cmd.OutOrStdout(), c)
	},
}

// extractedText returns the PDF's text, or nothing when it cannot be extracted.
func extractedText(cmd *cobra.Command, src []byte) string {
	text, err := application.Processor.Text(cmd.Context(), src)
	if err != nil {
		application.Logger.Warn("text unavailable", "error", err)
		return ""
	}
	return text
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyRank, "rank", false, "print every candidate, best first")
}
