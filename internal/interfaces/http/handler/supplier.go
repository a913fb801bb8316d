package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ledgerapp "github.com/pharmacy/backend/internal/application/ledger"
	procurementapp "github.com/pharmacy/backend/internal/application/procurement"
	"github.com/pharmacy/backend/internal/interfaces/http/dto"
)

// SupplierHandler handles supplier API endpoints
type SupplierHandler struct {
	BaseHandler
	suppliers  *procurementapp.SupplierService
	statements *ledgerapp.StatementService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(suppliers *procurementapp.SupplierService, statements *ledgerapp.StatementService) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers, statements: statements}
}

// SupplierRequest is the request body for creating or updating a supplier
type SupplierRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=255"`
	ContactPerson string `json:"contact_person" binding:"max=255"`
	Phone         string `json:"phone" binding:"max=64"`
	Email         string `json:"email" binding:"omitempty,email,max=255"`
	Address       string `json:"address" binding:"max=1000"`
}

func (r SupplierRequest) toInput() procurementapp.SupplierInput {
	return procurementapp.SupplierInput{
		Name:          r.Name,
		ContactPerson: r.ContactPerson,
		Phone:         r.Phone,
		Email:         r.Email,
		Address:       r.Address,
	}
}

// Create registers a new supplier
func (h *SupplierHandler) Create(c *gin.Context) {
	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.suppliers.CreateSupplier(c.Request.Context(), req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, supplier)
}

// Update changes a supplier's name or contact details
func (h *SupplierHandler) Update(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.suppliers.UpdateSupplier(c.Request.Context(), supplierID, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// GetByID retrieves one supplier
func (h *SupplierHandler) GetByID(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	supplier, err := h.suppliers.GetSupplier(c.Request.Context(), supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// List returns a paginated supplier listing
func (h *SupplierHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.suppliers.ListSuppliers(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Delete removes a supplier and its full financial history
func (h *SupplierHandler) Delete(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	if err := h.suppliers.DeleteSupplier(c.Request.Context(), supplierID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers the supplier routes
func (h *SupplierHandler) RegisterRoutes(rg *gin.RouterGroup) {
	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.Create)
		suppliers.GET("", h.List)
		suppliers.GET("/:id", h.GetByID)
		suppliers.PUT("/:id", h.Update)
		suppliers.DELETE("/:id", h.Delete)
		suppliers.GET("/:id/statement", h.Statement)
	}
}

// Statement returns the supplier's ledger, stats and top products
func (h *SupplierHandler) Statement(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	statement, err := h.statements.GetStatement(c.Request.Context(), supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, statement)
}
