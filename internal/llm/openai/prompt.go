package openai

import (
	"encoding/json"
	"strings"
)

// exampleOrderShape is shown to the model inside the instruction so the keys
// come back exactly as we store them.
var exampleOrderShape = map[string]any{
	"merchant":      "string",
	"order_id":      "string|null",
	"purchase_date": "YYYY-MM-DD|null",
	"items": []map[string]any{
		{"name": "string", "sku": "string|null", "qty": 1, "unit_price": 0.0},
	},
}

var examplePolicyShape = map[string]any{
	"window_days":          0,
	"restocking_fee_pct":   0,
	"in_store_allowed":     true,
	"mail_allowed":         true,
	"return_bar_supported": false,
	"requires_rma":         false,
	"notes":                "string",
}

const maxPromptChars = 6000

func buildOrderSystemPrompt() string {
	parts := []string{
		"You are a purchase receipt parser. Return ONLY strict JSON with keys: " + mustJSON(exampleOrderShape) + ".",
		"Normalize dates to YYYY-MM-DD.",
		"Use null if a value is unknown.",
		"Never wrap the JSON in markdown fences.",
	}
	return strings.Join(parts, " ")
}

func buildOrderUserPrompt(text string) string {
	var b strings.Builder
	b.WriteString("Receipt:\n---\n")
	if len(text) > maxPromptChars {
		b.WriteString(text[:maxPromptChars])
	} else {
		b.WriteString(text)
	}
	b.WriteString("\n---")
	return b.String()
}

const visionInstruction = "Read this receipt image and extract the order fields."

func buildPolicyPrompt(policyText string) string {
	var b strings.Builder
	b.WriteString("Given this retailer return policy text, return ONLY strict JSON with keys ")
	b.WriteString(mustJSON(examplePolicyShape))
	b.WriteString(". Be conservative; if unstated, set false/0 and add a note.\n---\n")
	if len(policyText) > maxPromptChars {
		b.WriteString(policyText[:maxPromptChars])
	} else {
		b.WriteString(policyText)
	}
	b.WriteString("\n---")
	return b.String()
}

func mustJSON(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
