package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	procurementapp "github.com/pharmacy/backend/internal/application/procurement"
)

// SupplyHandler handles supply booking endpoints
type SupplyHandler struct {
	BaseHandler
	supplies *procurementapp.SupplyService
}

// NewSupplyHandler creates a new SupplyHandler
func NewSupplyHandler(supplies *procurementapp.SupplyService) *SupplyHandler {
	return &SupplyHandler{supplies: supplies}
}

// RecordSupplyRequest is the request body for booking a supply.
// Exactly one of supplier_id or supplier_name identifies the supplier;
// an unknown name registers a new supplier on the fly.
type RecordSupplyRequest struct {
	SupplierID     *uuid.UUID `json:"supplier_id"`
	SupplierName   string     `json:"supplier_name" binding:"max=255"`
	MedicineName   string     `json:"medicine_name" binding:"required,min=1,max=255"`
	Quantity       int64      `json:"quantity" binding:"required,gt=0"`
	UnitCost       string     `json:"unit_cost" binding:"required,decimal"`
	Unit           string     `json:"unit" binding:"max=64"`
	BatchNumber    string     `json:"batch_number" binding:"max=128"`
	InvoiceNumber  string     `json:"invoice_number" binding:"max=128"`
	InvoiceDueDate *time.Time `json:"invoice_due_date"`
	AddedDate      *time.Time `json:"added_date"`
}

// RegisterRoutes registers the supply routes
func (h *SupplyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	supplies := rg.Group("/supplies")
	{
		supplies.POST("", h.Record)
		supplies.GET("/unsettled", h.ListUnsettled)
		supplies.DELETE("/:id", h.Void)
	}
}

// ListUnsettled returns a supplier's open supplies, oldest first
func (h *SupplyHandler) ListUnsettled(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Query("supplier_id"))
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	supplies, err := h.supplies.ListUnsettled(c.Request.Context(), supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplies)
}

// Record books a supply, updating stock and the supplier balance
func (h *SupplyHandler) Record(c *gin.Context) {
	var req RecordSupplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	unitCost, err := decimal.NewFromString(req.UnitCost)
	if err != nil {
		h.BadRequest(c, "Invalid unit cost format")
		return
	}

	addedDate := time.Now()
	if req.AddedDate != nil {
		addedDate = *req.AddedDate
	}

	supply, err := h.supplies.RecordSupply(c.Request.Context(), procurementapp.RecordSupplyInput{
		SupplierID:     req.SupplierID,
		SupplierName:   req.SupplierName,
		MedicineName:   req.MedicineName,
		Quantity:       req.Quantity,
		UnitCost:       unitCost,
		Unit:           req.Unit,
		BatchNumber:    req.BatchNumber,
		InvoiceNumber:  req.InvoiceNumber,
		InvoiceDueDate: req.InvoiceDueDate,
		AddedDate:      addedDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, supply)
}

// Void reverses a supply that has no allocations against it
func (h *SupplyHandler) Void(c *gin.Context) {
	supplyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supply ID format")
		return
	}

	if err := h.supplies.VoidSupply(c.Request.Context(), supplyID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
