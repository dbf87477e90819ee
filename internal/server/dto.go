package server

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sendbackhq/sendback/internal/common"
	"github.com/sendbackhq/sendback/internal/entity"
)

// orderJSON is the order summary returned by ingestion and order reads.
type orderJSON struct {
	ID            uint   `json:"id"`
	Merchant      string `json:"merchant"`
	OrderIDText   string `json:"order_id_text"`
	PurchaseDate  string `json:"purchase_date"`
	DeadlineDate  string `json:"deadline_date"`
	DaysRemaining int    `json:"days_remaining"`
	TotalAmount   string `json:"total_amount"`
}

func toOrderJSON(o *entity.Order) orderJSON {
	return orderJSON{
		ID:            o.ID,
		Merchant:      o.Merchant,
		OrderIDText:   o.OrderIDText,
		PurchaseDate:  o.PurchaseDate,
		DeadlineDate:  o.DeadlineDate,
		DaysRemaining: o.DaysRemaining,
		TotalAmount:   o.TotalAmount.StringFixed(2),
	}
}

type itemJSON struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	SKU       string `json:"sku,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

func toItemJSON(it entity.LineItem) itemJSON {
	return itemJSON{
		ID:        it.ID,
		Name:      it.Name,
		SKU:       it.SKU,
		Quantity:  it.Quantity,
		UnitPrice: it.UnitPrice.StringFixed(2),
	}
}

type initiateRequest struct {
	ItemIDs []uint `json:"item_ids"`
	Method  string `json:"method"`
}

// respondError maps the error taxonomy to HTTP statuses: not-found → 404,
// validation/business denial → 400, everything else → 500.
func respondError(c *gin.Context, err error) {
	switch {
	case common.IsNotFound(err):
		c.JSON(404, gin.H{"detail": messageOf(err)})
	case common.IsValidation(err):
		c.JSON(400, gin.H{"detail": messageOf(err)})
	default:
		c.JSON(500, gin.H{"detail": "internal error"})
	}
}

func messageOf(err error) string {
	var app *common.AppError
	if errors.As(err, &app) {
		return app.Message
	}
	return err.Error()
}
