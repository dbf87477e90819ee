package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildOrderJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. It is embedded in the extraction prompt and used locally to
// validate what the backend returned.
func BuildOrderJSONSchema() map[string]any {
	item := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":       map[string]any{"type": "string"},
			"sku":        map[string]any{"type": []string{"string", "null"}},
			"qty":        map[string]any{"type": "integer", "minimum": 1},
			"unit_price": map[string]any{"type": "number", "minimum": 0},
		},
		"required": []string{"name"},
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"merchant":      map[string]any{"type": "string", "minLength": 1},
			"order_id":      map[string]any{"type": []string{"string", "null"}},
			"purchase_date": map[string]any{"type": []string{"string", "null"}, "pattern": `^\d{4}-\d{2}-\d{2}$`},
			"items":         map[string]any{"type": "array", "items": item},
		},
		"required": []string{"merchant"},
	}
}

// BuildPolicyJSONSchema constrains policy summarization output.
func BuildPolicyJSONSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"window_days":          map[string]any{"type": "integer", "minimum": 0},
			"restocking_fee_pct":   map[string]any{"type": "number", "minimum": 0},
			"in_store_allowed":     map[string]any{"type": "boolean"},
			"mail_allowed":         map[string]any{"type": "boolean"},
			"return_bar_supported": map[string]any{"type": "boolean"},
			"requires_rma":         map[string]any{"type": "boolean"},
			"notes":                map[string]any{"type": "string"},
			"portal_url":           map[string]any{"type": "string"},
		},
		"required": []string{"window_days", "mail_allowed", "in_store_allowed"},
	}
}

// ValidateJSONAgainstSchema compiles the schema map and validates doc.
func ValidateJSONAgainstSchema(schema map[string]any, doc []byte) error {
	sb, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", bytes.NewReader(sb)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	compiled, err := c.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	if err := compiled.Validate(v); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	return nil
}
