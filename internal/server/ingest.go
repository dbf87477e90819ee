package server

import (
	"io"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sendbackhq/sendback/constants"
	"github.com/sendbackhq/sendback/internal/common"
	"github.com/sendbackhq/sendback/internal/entity"
	"github.com/sendbackhq/sendback/internal/extract"
	"github.com/sendbackhq/sendback/internal/returns"
)

const maxUploadBytes = 20 << 20 // 20 MiB

// ingestReceipt accepts a multipart receipt file, runs the extraction
// fallback chain, computes the return deadline, and persists the order with
// its line items. Upstream extraction failures never fail the request; they
// degrade to the static fallback record.
func (s *Server) ingestReceipt(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, common.ValidationError("file is required"))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		respondError(c, common.ValidationError("file too large"))
		return
	}
	if ext := constants.NormalizeExt(filepath.Ext(fileHeader.Filename)); ext != "" {
		if _, ok := constants.AllowedExtensions[ext]; !ok {
			respondError(c, common.ValidationErrorf("unsupported file type %q", ext))
			return
		}
	}

	f, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("ingest.file_close_failed", zap.Error(err))
		}
	}()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		respondError(c, err)
		return
	}

	mediaType := constants.MapMediaType(fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
	if mediaType == "" {
		// undeclared payloads get a best-effort text decode
		mediaType = constants.TEXT
	}

	fields, failures := s.pipeline.Extract(c.Request.Context(), extract.Input{
		Data:      data,
		MediaType: mediaType,
		MIME:      fileHeader.Header.Get("Content-Type"),
	})
	for _, f := range failures {
		s.logger.Warn("ingest.strategy_failed",
			zap.String("strategy", f.Strategy), zap.Error(f.Err))
	}

	now := s.now()
	merchant := fields.Merchant
	if merchant == "" {
		merchant = "Unknown"
	}
	purchaseDate := now.Format("2006-01-02")
	if fields.PurchaseDate != nil && *fields.PurchaseDate != "" {
		purchaseDate = *fields.PurchaseDate
	}
	deadline, daysRemaining := returns.ComputeDeadline(purchaseDate, merchant, now, s.policies)

	orderIDText := "N/A"
	if fields.OrderID != nil && *fields.OrderID != "" {
		orderIDText = *fields.OrderID
	}

	total := decimal.Zero
	items := make([]entity.LineItem, 0, len(fields.Items))
	for _, it := range fields.Items {
		qty := it.Qty
		if qty < 1 {
			qty = 1
		}
		price := decimal.NewFromFloat(it.UnitPrice)
		if price.IsNegative() {
			price = decimal.Zero
		}
		sku := ""
		if it.SKU != nil {
			sku = *it.SKU
		}
		items = append(items, entity.LineItem{
			Name:      it.Name,
			SKU:       sku,
			Quantity:  qty,
			UnitPrice: price,
		})
		total = total.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}

	order := &entity.Order{
		Merchant:      merchant,
		OrderIDText:   orderIDText,
		PurchaseDate:  purchaseDate,
		DeadlineDate:  deadline,
		DaysRemaining: daysRemaining,
		TotalAmount:   total,
		Source:        "upload",
		Items:         items,
	}
	if err := s.orders.Create(c.Request.Context(), order); err != nil {
		respondError(c, err)
		return
	}

	s.logger.Info("ingest.ok",
		zap.Uint("order_id", order.ID),
		zap.String("merchant", merchant),
		zap.String("media_type", mediaType),
		zap.Int("items", len(items)),
		zap.Int("extract_failures", len(failures)),
	)

	c.JSON(200, gin.H{"ok": true, "order": toOrderJSON(order)})
}
