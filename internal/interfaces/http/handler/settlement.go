package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	settlementapp "github.com/pharmacy/backend/internal/application/settlement"
	"github.com/pharmacy/backend/internal/domain/procurement"
)

// SettlementHandler handles payment allocation, credit and return endpoints
type SettlementHandler struct {
	BaseHandler
	allocations *settlementapp.AllocationService
	credits     *settlementapp.CreditService
	returns     *settlementapp.ReturnService
}

// NewSettlementHandler creates a new SettlementHandler
func NewSettlementHandler(
	allocations *settlementapp.AllocationService,
	credits *settlementapp.CreditService,
	returns *settlementapp.ReturnService,
) *SettlementHandler {
	return &SettlementHandler{
		allocations: allocations,
		credits:     credits,
		returns:     returns,
	}
}

// RegisterRoutes registers the settlement routes
func (h *SettlementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	suppliers := rg.Group("/suppliers/:id")
	{
		suppliers.POST("/payments", h.PayItems)
		suppliers.GET("/credit", h.GetCredit)
		suppliers.POST("/credit/apply", h.ApplyCredit)
		suppliers.POST("/credit/refund", h.CashRefund)
		suppliers.POST("/returns", h.PurchaseReturn)
	}
	payments := rg.Group("/payments")
	{
		payments.DELETE("/:id", h.VoidPayment)
	}
}

// AllocationItemRequest is one supply target in a payment allocation
type AllocationItemRequest struct {
	SupplyID uuid.UUID `json:"supply_id" binding:"required"`
	Amount   string    `json:"amount" binding:"required,decimal"`
}

// PayItemsRequest is the request body for an item-level payment
type PayItemsRequest struct {
	Items  []AllocationItemRequest `json:"items" binding:"required,min=1,dive"`
	Method string                  `json:"method" binding:"required,paymentmethod"`
	Date   *time.Time              `json:"date"`
	Notes  string                  `json:"notes" binding:"max=1000"`
}

// PayItems allocates one payment across supply lines
func (h *SettlementHandler) PayItems(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	var req PayItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items := make([]settlementapp.AllocationItem, 0, len(req.Items))
	for _, item := range req.Items {
		amount, err := decimal.NewFromString(item.Amount)
		if err != nil {
			h.BadRequest(c, "Invalid amount format")
			return
		}
		items = append(items, settlementapp.AllocationItem{
			SupplyID: item.SupplyID,
			Amount:   amount,
		})
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	result, err := h.allocations.AllocatePayment(c.Request.Context(), supplierID, items, settlementapp.PaymentMeta{
		Method:         procurement.PaymentMethod(req.Method),
		Date:           date,
		Notes:          req.Notes,
		IdempotencyKey: c.GetHeader("X-Idempotency-Key"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// VoidPayment removes a payment that has no allocations against it
func (h *SettlementHandler) VoidPayment(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	if err := h.allocations.VoidPayment(c.Request.Context(), paymentID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GetCredit returns the supplier's derived credit
func (h *SettlementHandler) GetCredit(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	credit, err := h.credits.GetCredit(c.Request.Context(), supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"credit": credit})
}

// ApplyCreditRequest is the request body for consuming supplier credit
type ApplyCreditRequest struct {
	Amount    string      `json:"amount" binding:"required,decimal"`
	SupplyIDs []uuid.UUID `json:"supply_ids"`
	Notes     string      `json:"notes" binding:"max=1000"`
}

// ApplyCredit settles outstanding supplies from the supplier's credit
func (h *SettlementHandler) ApplyCredit(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	var req ApplyCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		h.BadRequest(c, "Invalid amount format")
		return
	}

	result, err := h.credits.ApplyCredit(c.Request.Context(), supplierID, amount, req.SupplyIDs, req.Notes)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// CashRefundRequest is the request body for a cash refund from the supplier
type CashRefundRequest struct {
	Amount string     `json:"amount" binding:"required,decimal"`
	Date   *time.Time `json:"date"`
	Notes  string     `json:"notes" binding:"max=1000"`
}

// CashRefund records cash received back against supplier credit
func (h *SettlementHandler) CashRefund(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	var req CashRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		h.BadRequest(c, "Invalid amount format")
		return
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	result, err := h.credits.RecordCashRefund(c.Request.Context(), supplierID, amount, req.Notes, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ReturnItemRequest is one line of a purchase return
type ReturnItemRequest struct {
	StockItemID *uuid.UUID `json:"stock_item_id"`
	SupplyID    *uuid.UUID `json:"supply_id"`
	Name        string     `json:"name" binding:"max=255"`
	Quantity    int64      `json:"quantity" binding:"required,gt=0"`
	Total       string     `json:"total" binding:"required,decimal"`
}

// PurchaseReturnRequest is the request body for returning goods
type PurchaseReturnRequest struct {
	Items  []ReturnItemRequest `json:"items" binding:"required,min=1,dive"`
	Reason string              `json:"reason" binding:"max=1000"`
	Date   *time.Time          `json:"date"`
}

// PurchaseReturn sends goods back and books a debit note
func (h *SettlementHandler) PurchaseReturn(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	var req PurchaseReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items := make([]settlementapp.ReturnItem, 0, len(req.Items))
	for _, item := range req.Items {
		total, err := decimal.NewFromString(item.Total)
		if err != nil {
			h.BadRequest(c, "Invalid total format")
			return
		}
		items = append(items, settlementapp.ReturnItem{
			StockItemID: item.StockItemID,
			SupplyID:    item.SupplyID,
			Name:        item.Name,
			Quantity:    item.Quantity,
			Total:       total,
		})
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	result, err := h.returns.PurchaseReturn(c.Request.Context(), supplierID, items, req.Reason, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
