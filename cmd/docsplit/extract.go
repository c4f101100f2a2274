package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/docsplit/constants"
	"github.com/joseph-ayodele/docsplit/internal/entity"
)

var (
	extractType   string
	extractFields []string
)

var extractCmd = &cobra.Command{
	Use:   "extract <file.pdf|file.txt>",
	Short: "Extract key fields from a document",
	Long: `Extract pulls named fields out of a document. Field names come from
--fields, or from the registered extraction fields of --type. Without either
the document is classified first and its type's fields are used.

Amounts and rates are printed as numbers; values that do not parse are left out.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, isPDF, err := readInput(args[0])
		if err != nil {
			return err
		}
		proc := application.Processor
		ctx := cmd.Context()

		names := extractFields
		if len(names) == 0 && extractType != "" {
			dt, ok := constants.ParseDocType(extractType)
			if !ok {
				return errors.New("unknown document type: " + extractType +
					" (one of " + strings.Join(constants.DocTypesAsStringSlice(), ", ") + ")")
			}
			names = proc.FieldsFor(dt)
		}

		text := string(b)
		if isPDF {
			text = extractedText(cmd, b)
		}
		if len(names) == 0 {
			c := proc.ClassifyText(text)
			names = c.ExtractionFields
		}

		var fm entity.FieldMap
		if isPDF && text == "" {
			fm = entity.FieldMap{}
		} else {
			fm = proc.ExtractFieldsFromContent(ctx, text, names)
		}
		return printOutput(cmd.OutOrStdout(), fm)
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractType, "type", "", "document type whose fields to extract")
	extractCmd.Flags().StringSliceVar(&extractFields, "fields", nil, "comma separated field names")
}
