package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a persisted purchase with its computed return deadline. Deadline
// and days-remaining are snapshots taken at ingestion time; they are not
// re-derived on reads.
type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Merchant      string          `gorm:"index" json:"merchant"`
	OrderIDText   string          `json:"order_id_text"`
	PurchaseDate  string          `json:"purchase_date"` // YYYY-MM-DD
	DeadlineDate  string          `json:"deadline_date"` // YYYY-MM-DD
	DaysRemaining int             `json:"days_remaining"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_amount"`
	Source        string          `gorm:"default:upload" json:"source"`
	CreatedAt     time.Time       `json:"created_at"`

	Items []LineItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// LineItem always belongs to exactly one order.
type LineItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"index" json:"order_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku,omitempty"`
	Quantity  int             `gorm:"default:1" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2)" json:"unit_price"`
}
