package llm

import (
	"encoding/json"
	"strconv"
	"strings"
)

// StripCodeFence removes an optional ```json ... ``` (or bare ```) wrapper
// that models sometimes emit around the JSON body.
func StripCodeFence(doc []byte) []byte {
	s := strings.TrimSpace(string(doc))
	if !strings.HasPrefix(s, "```") {
		return []byte(s)
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		// drop the language tag line ("json", "JSON", or empty)
		first := strings.TrimSpace(s[:i])
		if len(first) <= 8 && !strings.ContainsAny(first, "{}[]") {
			s = s[i+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return []byte(strings.TrimSpace(s))
}

// CoerceOrderDocument normalizes an extraction payload in place: item qty
// and unit_price become usable numbers (qty→1, unit_price→0 when absent or
// malformed), null SKUs survive, and a missing merchant becomes "Unknown".
// Returns the rewritten document and the names of coerced fields.
func CoerceOrderDocument(doc []byte) ([]byte, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, nil, err
	}

	var coerced []string

	if v, ok := m["merchant"].(string); !ok || strings.TrimSpace(v) == "" {
		m["merchant"] = "Unknown"
		coerced = append(coerced, "merchant")
	} else {
		m["merchant"] = strings.TrimSpace(v)
	}

	if v, ok := m["purchase_date"].(string); ok {
		m["purchase_date"] = strings.TrimSpace(v)
	}

	items, _ := m["items"].([]any)
	for i, raw := range items {
		it, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		q, qtyCoerced := coerceInt(it["qty"], 1)
		it["qty"] = q
		if qtyCoerced {
			coerced = append(coerced, "items["+strconv.Itoa(i)+"].qty")
		}
		p, priceCoerced := coerceFloat(it["unit_price"], 0)
		it["unit_price"] = p
		if priceCoerced {
			coerced = append(coerced, "items["+strconv.Itoa(i)+"].unit_price")
		}
		if _, ok := it["name"].(string); !ok {
			it["name"] = "Item"
			coerced = append(coerced, "items["+strconv.Itoa(i)+"].name")
		}
		items[i] = it
	}
	if items == nil {
		m["items"] = []any{}
	}

	b, err := json.Marshal(m)
	if err != nil {
		return nil, nil, err
	}
	return b, coerced, nil
}

// coerceInt returns a positive integer from v, or def when v is absent or
// malformed. The second return reports whether a rewrite happened.
func coerceInt(v any, def int) (int, bool) {
	switch t := v.(type) {
	case float64:
		if t == float64(int(t)) && int(t) >= 1 {
			return int(t), false
		}
		return def, true
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil && n >= 1 {
			return n, true
		}
		return def, true
	default:
		return def, true
	}
}

// coerceFloat returns a non-negative number from v, or def otherwise.
func coerceFloat(v any, def float64) (float64, bool) {
	switch t := v.(type) {
	case float64:
		if t >= 0 {
			return t, false
		}
		return def, true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil && f >= 0 {
			return f, true
		}
		return def, true
	default:
		return def, true
	}
}

// DecodeOrderFields turns a raw backend response into validated OrderFields:
// fence strip, coercion, schema validation, then unmarshal.
func DecodeOrderFields(raw []byte) (OrderFields, []string, error) {
	doc := StripCodeFence(raw)
	doc, coerced, err := CoerceOrderDocument(doc)
	if err != nil {
		return OrderFields{}, nil, err
	}
	if err := ValidateJSONAgainstSchema(BuildOrderJSONSchema(), doc); err != nil {
		return OrderFields{}, coerced, err
	}
	var out OrderFields
	if err := json.Unmarshal(doc, &out); err != nil {
		return OrderFields{}, coerced, err
	}
	return out, coerced, nil
}

// DecodePolicyFields validates and decodes a policy summarization response.
func DecodePolicyFields(raw []byte) (PolicyFields, error) {
	doc := StripCodeFence(raw)
	if err := ValidateJSONAgainstSchema(BuildPolicyJSONSchema(), doc); err != nil {
		return PolicyFields{}, err
	}
	var out PolicyFields
	if err := json.Unmarshal(doc, &out); err != nil {
		return PolicyFields{}, err
	}
	return out, nil
}
