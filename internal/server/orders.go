package server

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sendbackhq/sendback/constants"
	"github.com/sendbackhq/sendback/internal/calendar"
	"github.com/sendbackhq/sendback/internal/common"
	"github.com/sendbackhq/sendback/internal/entity"
	"github.com/sendbackhq/sendback/internal/policy"
	"github.com/sendbackhq/sendback/internal/returns"
)

func (s *Server) listOrders(c *gin.Context) {
	orders, err := s.orders.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]orderJSON, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderJSON(&orders[i]))
	}
	c.JSON(200, gin.H{"orders": out})
}

func (s *Server) getOrder(c *gin.Context) {
	order, ok := s.loadOrder(c)
	if !ok {
		return
	}
	c.JSON(200, toOrderJSON(order))
}

func (s *Server) listOrderItems(c *gin.Context) {
	order, ok := s.loadOrder(c)
	if !ok {
		return
	}
	items, err := s.orders.ListItems(c.Request.Context(), order.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]itemJSON, 0, len(items))
	for _, it := range items {
		out = append(out, toItemJSON(it))
	}
	c.JSON(200, gin.H{"order_id": order.ID, "items": out})
}

// orderEligibility applies the decision table. Business denials are 200s
// with allowed=false; only missing orders fail the request.
func (s *Server) orderEligibility(c *gin.Context) {
	order, ok := s.loadOrder(c)
	if !ok {
		return
	}
	elig := returns.Evaluate(order, s.policyFor(order.Merchant), s.now())
	c.JSON(200, elig)
}

func (s *Server) orderOptions(c *gin.Context) {
	order, ok := s.loadOrder(c)
	if !ok {
		return
	}
	opts := returns.BuildOptions(order.Merchant, s.policies.Resolve(order.Merchant))
	c.JSON(200, gin.H{"order_id": order.ID, "options": opts})
}

// initiateReturn validates eligibility, method, and item ownership before
// handing back the next step for the chosen method.
func (s *Server) initiateReturn(c *gin.Context) {
	order, ok := s.loadOrder(c)
	if !ok {
		return
	}

	var req initiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.ValidationError("invalid request body"))
		return
	}

	elig := returns.Evaluate(order, s.policyFor(order.Merchant), s.now())
	if !elig.Allowed {
		respondError(c, common.ValidationError(elig.Reason))
		return
	}

	if !constants.IsReturnMethod(req.Method) {
		respondError(c, common.ValidationErrorf("invalid method %q: must be %q or %q",
			req.Method, constants.MethodMail, constants.MethodDropoff))
		return
	}

	if len(req.ItemIDs) == 0 {
		respondError(c, common.ValidationError("item_ids is required"))
		return
	}
	missing, err := s.orders.MissingItemIDs(c.Request.Context(), order.ID, req.ItemIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(missing) > 0 {
		ids := make([]string, len(missing))
		for i, id := range missing {
			ids[i] = strconv.FormatUint(uint64(id), 10)
		}
		respondError(c, common.ValidationErrorf("item id(s) %s do not belong to order %d",
			strings.Join(ids, ", "), order.ID))
		return
	}

	nextStep := "mail-label"
	if req.Method == constants.MethodDropoff {
		nextStep = "dropoff-pass"
	}

	s.logger.Info("return.initiated",
		zap.Uint("order_id", order.ID),
		zap.String("method", req.Method),
		zap.Int("items", len(req.ItemIDs)),
	)

	c.JSON(200, gin.H{
		"ok":        true,
		"order_id":  order.ID,
		"method":    req.Method,
		"next_step": nextStep,
	})
}

// orderCalendar streams the deadline reminder as an .ics download.
func (s *Server) orderCalendar(c *gin.Context) {
	order, ok := s.loadOrder(c)
	if !ok {
		return
	}
	doc, err := calendar.BuildDeadlineReminder(order)
	if err != nil {
		c.JSON(404, gin.H{"detail": "order has no return deadline"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=return-reminder-%d.ics", order.ID))
	c.Data(200, "text/calendar; charset=utf-8", []byte(doc))
}

func (s *Server) exportOrders(c *gin.Context) {
	xlsx, err := s.exporter.ExportOrdersXLSX(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", xlsx)
}

// loadOrder parses the :id param and loads the order, writing the error
// response itself when anything is off.
func (s *Server) loadOrder(c *gin.Context) (*entity.Order, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(404, gin.H{"detail": "no such order"})
		return nil, false
	}
	order, err := s.orders.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if common.IsNotFound(err) {
			c.JSON(404, gin.H{"detail": "no such order"})
		} else {
			respondError(c, err)
		}
		return nil, false
	}
	return order, true
}

// policyFor resolves a merchant policy for eligibility checks; unknown
// merchants yield nil, which the evaluator treats as permissive.
func (s *Server) policyFor(merchant string) *policy.Policy {
	if p, ok := s.policies.Lookup(merchant); ok {
		return &p
	}
	return nil
}
