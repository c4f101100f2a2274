package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/docsplit/constants"
)

// printOutput writes v to w as YAML or JSON. Values go through JSON first so
// both formats use the same field names.
func printOutput(w io.Writer, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if outputFormat == "json" {
		_, err = fmt.Fprintln(w, string(raw))
		return err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}

// readInput returns the file content and whether it is a PDF (as opposed to plain text).
func readInput(path string) ([]byte, bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	switch constants.MapExtToFormat(filepath.Ext(path)) {
	case constants.PDF:
		return b, true, nil
	case constants.TXT:
		return b, false, nil
	default:
		return nil, false, fmt.Errorf("unsupported file type: %s", path)
	}
}
