package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/docsplit/constants"
)

type fileFormat struct {
	Types []Definition `json:"types"`
}

// BuildRegistryJSONSchema returns the JSON-Schema a registry file must satisfy.
func BuildRegistryJSONSchema() map[string]any {
	typeIDs := []string{}
	for _, id := range constants.DocTypesAsStringSlice() {
		if dt, _ := constants.ParseDocType(id); !dt.IsFallback() {
			typeIDs = append(typeIDs, id)
		}
	}
	def := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"id", "category", "title", "patterns"},
		"properties": map[string]any{
			"id":       map[string]any{"type": "string", "enum": typeIDs},
			"category": map[string]any{"type": "string", "enum": constants.CategoriesAsStringSlice()},
			"title":    map[string]any{"type": "string", "minLength": 1},
			"patterns": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    map[string]any{"type": "string", "minLength": 1},
			},
			"extraction_fields": map[string]any{
				"type":        "array",
				"uniqueItems": true,
				"items":       map[string]any{"type": "string", "pattern": `^[a-z][a-z0-9_]*$`},
			},
		},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"types"},
		"properties": map[string]any{
			"types": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    def,
			},
		},
	}
}

// LoadFile reads a YAML registry file and builds a Registry from it. The file
// replaces the built-in table entirely; declaration order is preserved.
func LoadFile(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry file: %w", err)
	}
	return Parse(raw)
}

// Parse builds a Registry from YAML (or JSON) bytes.
func Parse(raw []byte) (*Registry, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse registry yaml: %w", err)
	}
	// yaml and the schema validator disagree on number types; go through JSON.
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal registry: %w", err)
	}
	if err := validateAgainstSchema(BuildRegistryJSONSchema(), data); err != nil {
		return nil, err
	}

	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	return New(f.Types)
}

func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("registry.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("registry.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("registry does not match schema: %w", err)
	}
	return nil
}
