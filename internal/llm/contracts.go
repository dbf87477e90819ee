package llm

import "context"

// OrderFields is the normalized shape we want from the extraction backend.
type OrderFields struct {
	Merchant     string      `json:"merchant"`
	OrderID      *string     `json:"order_id"`
	PurchaseDate *string     `json:"purchase_date"` // YYYY-MM-DD
	Items        []ItemField `json:"items"`
}

// ItemField is a single extracted line item. Qty and UnitPrice are coerced
// to safe defaults (1 and 0) before decoding, so they are always usable.
type ItemField struct {
	Name      string  `json:"name"`
	SKU       *string `json:"sku"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unit_price"`
}

// PolicyFields is the normalized shape we want from policy summarization.
type PolicyFields struct {
	WindowDays         int     `json:"window_days"`
	RestockingFeePct   float64 `json:"restocking_fee_pct"`
	InStoreAllowed     bool    `json:"in_store_allowed"`
	MailAllowed        bool    `json:"mail_allowed"`
	ReturnBarSupported bool    `json:"return_bar_supported"`
	RequiresRMA        bool    `json:"requires_rma"`
	Notes              string  `json:"notes"`
	PortalURL          string  `json:"portal_url,omitempty"`
}

// Backend is the interface the extraction pipeline and policy summarizer
// depend on. Implementations call an external text/vision service; tests
// substitute deterministic stubs.
type Backend interface {
	ExtractFromText(ctx context.Context, text string) (OrderFields, []byte, error)
	ExtractFromImage(ctx context.Context, image []byte, mimeType string) (OrderFields, []byte, error)
	SummarizePolicy(ctx context.Context, policyText string) (PolicyFields, []byte, error)
}
