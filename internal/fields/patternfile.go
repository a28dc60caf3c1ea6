package fields

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// patternFile is the on-disk shape of a pattern override file.
type patternFile struct {
	MinDigits map[string]int      `json:"min_digits,omitempty"`
	Patterns  map[string][]string `json:"patterns,omitempty"`
}

// buildPatternFileSchema returns the JSON-Schema the pattern file must
// satisfy, as a generic map (validated locally before use).
func buildPatternFileSchema() map[string]any {
	patternList := map[string]any{
		"type":     "array",
		"minItems": 1,
		"items":    map[string]any{"type": "string", "minLength": 1},
	}
	patternProps := map[string]any{}
	for _, key := range patternKeys {
		patternProps[key] = patternList
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"min_digits": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					keyRegistroANS: map[string]any{"type": "integer", "minimum": 4, "maximum": 10},
					keyNumeroGuia:  map[string]any{"type": "integer", "minimum": 4, "maximum": 10},
				},
			},
			"patterns": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties":           patternProps,
			},
		},
	}
}

// LoadPatternFile reads a JSON pattern file, validates it against the
// embedded schema, and merges it into cfg. Pattern lists replace the
// defaults wholesale for the fields they name.
func LoadPatternFile(path string, cfg Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read pattern file: %w", err)
	}
	if err := validateAgainstSchema(buildPatternFileSchema(), data); err != nil {
		return cfg, fmt.Errorf("pattern file %s: %w", path, err)
	}

	var pf patternFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return cfg, fmt.Errorf("decode pattern file: %w", err)
	}

	if n, ok := pf.MinDigits[keyRegistroANS]; ok {
		cfg.MinRegistroDigits = n
	}
	if n, ok := pf.MinDigits[keyNumeroGuia]; ok {
		cfg.MinGuiaDigits = n
	}
	if len(pf.Patterns) > 0 {
		if cfg.Patterns == nil {
			cfg.Patterns = map[string][]string{}
		}
		for key, list := range pf.Patterns {
			cfg.Patterns[key] = list
		}
	}
	return cfg, nil
}

// validateAgainstSchema validates data against schemaMap.
func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("patterns.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("patterns.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
