package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":                        "{\"a\":1}",
		"```json\n{\"a\":1}\n```":          "{\"a\":1}",
		"```\n{\"a\":1}\n```":              "{\"a\":1}",
		"  ```JSON\n{\"a\": 1}\n```  ":     "{\"a\": 1}",
		"```json\n{\"a\":\n\"b\"}\n```":    "{\"a\":\n\"b\"}",
	}
	for in, want := range cases {
		assert.Equal(t, want, string(StripCodeFence([]byte(in))), "input %q", in)
	}
}

func TestCoerceOrderDocumentDefaults(t *testing.T) {
	doc := []byte(`{"items":[{"sku":null}]}`)

	out, coerced, err := CoerceOrderDocument(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"merchant":"Unknown"`)
	assert.Contains(t, string(out), `"qty":1`)
	assert.Contains(t, string(out), `"unit_price":0`)
	assert.Contains(t, string(out), `"name":"Item"`)
	assert.NotEmpty(t, coerced)
}

func TestCoerceOrderDocumentStringNumbers(t *testing.T) {
	doc := []byte(`{"merchant":"Target","items":[{"name":"Mug","qty":"2","unit_price":"9.99"}]}`)

	out, _, err := CoerceOrderDocument(doc)
	require.NoError(t, err)

	fields, _, err := DecodeOrderFields(out)
	require.NoError(t, err)
	require.Len(t, fields.Items, 1)
	assert.Equal(t, 2, fields.Items[0].Qty)
	assert.InDelta(t, 9.99, fields.Items[0].UnitPrice, 0.0001)
}

func TestCoerceOrderDocumentRejectsNonJSON(t *testing.T) {
	_, _, err := CoerceOrderDocument([]byte("not json at all"))
	assert.Error(t, err)
}

func TestDecodeOrderFieldsFencedPayload(t *testing.T) {
	raw := []byte("```json\n{\"merchant\":\"Amazon\",\"order_id\":\"111-222\",\"purchase_date\":\"2024-01-01\",\"items\":[{\"name\":\"Cable\",\"sku\":null,\"qty\":1,\"unit_price\":12.5}]}\n```")

	fields, coerced, err := DecodeOrderFields(raw)
	require.NoError(t, err)
	assert.Empty(t, coerced)
	assert.Equal(t, "Amazon", fields.Merchant)
	require.NotNil(t, fields.OrderID)
	assert.Equal(t, "111-222", *fields.OrderID)
	require.NotNil(t, fields.PurchaseDate)
	assert.Equal(t, "2024-01-01", *fields.PurchaseDate)
	require.Len(t, fields.Items, 1)
	assert.Nil(t, fields.Items[0].SKU)
}

func TestDecodeOrderFieldsBadDatePattern(t *testing.T) {
	raw := []byte(`{"merchant":"Amazon","purchase_date":"January 1st"}`)

	_, _, err := DecodeOrderFields(raw)
	assert.Error(t, err)
}

func TestDecodePolicyFields(t *testing.T) {
	raw := []byte("```json\n{\"window_days\":15,\"restocking_fee_pct\":15,\"in_store_allowed\":true,\"mail_allowed\":true,\"return_bar_supported\":false,\"requires_rma\":false,\"notes\":\"ok\"}\n```")

	fields, err := DecodePolicyFields(raw)
	require.NoError(t, err)
	assert.Equal(t, 15, fields.WindowDays)
	assert.True(t, fields.MailAllowed)
}

func TestDecodePolicyFieldsMissingRequired(t *testing.T) {
	_, err := DecodePolicyFields([]byte(`{"notes":"no windows here"}`))
	assert.Error(t, err)
}
