package procurement

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmacy/backend/internal/domain/shared"
)

// PaymentStatus represents the settlement state of a supply line
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// IsValid checks if the payment status is valid
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid:
		return true
	}
	return false
}

// Supply is the aggregate root for a received purchase line. The supplier
// name is denormalized so supply history survives supplier renames, and
// StockItemID is nil for supplies recorded before inventory linking existed.
type Supply struct {
	shared.BaseAggregateRoot
	SupplierID            uuid.UUID       `gorm:"type:uuid;not null;index" json:"supplier_id"`
	SupplierName          string          `gorm:"not null;size:255" json:"supplier_name"`
	MedicineName          string          `gorm:"not null;size:255" json:"medicine_name"`
	StockItemID           *uuid.UUID      `gorm:"type:uuid;index" json:"stock_item_id,omitempty"`
	BatchNumber           string          `gorm:"size:100" json:"batch_number"`
	Quantity              int64           `gorm:"not null" json:"quantity"`
	PurchaseCost          decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"purchase_cost"`
	PurchaseInvoiceNumber string          `gorm:"size:100;index" json:"purchase_invoice_number"`
	InvoiceDueDate        *time.Time      `json:"invoice_due_date,omitempty"`
	AddedDate             time.Time       `gorm:"not null;index" json:"added_date"`
	PaidAmount            decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"paid_amount"`
	PaymentStatus         PaymentStatus   `gorm:"not null;size:20;default:'unpaid'" json:"payment_status"`
}

// TableName returns the database table name
func (Supply) TableName() string {
	return "supplies"
}

// NewSupply creates a new supply line in unpaid state.
// PurchaseCost is the unit cost; the invoice total is quantity times unit cost.
func NewSupply(supplierID uuid.UUID, supplierName, medicineName string, quantity int64, purchaseCost decimal.Decimal, addedDate time.Time) (*Supply, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "supplier ID is required")
	}
	if strings.TrimSpace(medicineName) == "" {
		return nil, shared.NewDomainError("INVALID_MEDICINE_NAME", "medicine name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "quantity must be positive")
	}
	if purchaseCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "purchase cost cannot be negative")
	}
	if addedDate.IsZero() {
		addedDate = time.Now()
	}

	supply := &Supply{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SupplierID:        supplierID,
		SupplierName:      strings.TrimSpace(supplierName),
		MedicineName:      strings.TrimSpace(medicineName),
		Quantity:          quantity,
		PurchaseCost:      purchaseCost,
		AddedDate:         addedDate,
		PaidAmount:        decimal.Zero,
		PaymentStatus:     PaymentStatusUnpaid,
	}

	supply.AddDomainEvent(NewSupplyRecordedEvent(supply.ID, supplierID, supply.MedicineName, supply.TotalCost()))
	return supply, nil
}

// TotalCost returns the invoice total for this line, quantity times unit cost
func (s *Supply) TotalCost() decimal.Decimal {
	return s.PurchaseCost.Mul(decimal.NewFromInt(s.Quantity))
}

// WithInvoice attaches invoice metadata to the supply
func (s *Supply) WithInvoice(invoiceNumber string, dueDate *time.Time) *Supply {
	s.PurchaseInvoiceNumber = strings.TrimSpace(invoiceNumber)
	s.InvoiceDueDate = dueDate
	return s
}

// WithBatch attaches batch tracking metadata to the supply
func (s *Supply) WithBatch(batchNumber string, stockItemID *uuid.UUID) *Supply {
	s.BatchNumber = strings.TrimSpace(batchNumber)
	s.StockItemID = stockItemID
	return s
}

// DueAmount returns the outstanding amount on this supply line.
// It can be negative when the line was overpaid.
func (s *Supply) DueAmount() decimal.Decimal {
	return s.TotalCost().Sub(s.PaidAmount)
}

// IsSettled returns true when nothing remains due
func (s *Supply) IsSettled() bool {
	return !s.DueAmount().IsPositive()
}

// ApplyPayment records a payment against this supply line and recomputes
// the payment status. Amounts beyond the outstanding due are accepted:
// the line simply ends up overpaid, matching how bookkeepers correct
// entry mistakes with a follow-up adjustment.
func (s *Supply) ApplyPayment(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "payment amount cannot be negative")
	}
	s.PaidAmount = s.PaidAmount.Add(amount)
	s.recomputeStatus()
	s.MarkUpdated()
	s.AddDomainEvent(NewSupplyPaymentAppliedEvent(s.ID, s.SupplierID, amount, s.PaidAmount, s.PaymentStatus))
	return nil
}

func (s *Supply) recomputeStatus() {
	switch {
	case s.PaidAmount.IsZero():
		s.PaymentStatus = PaymentStatusUnpaid
	case s.PaidAmount.GreaterThanOrEqual(s.TotalCost()):
		s.PaymentStatus = PaymentStatusPaid
	default:
		s.PaymentStatus = PaymentStatusPartial
	}
}

// IsOverdue reports whether the supply has an unpaid balance past its
// invoice due date. Supplies without a due date are never overdue.
func (s *Supply) IsOverdue(now time.Time) bool {
	if s.InvoiceDueDate == nil || s.IsSettled() {
		return false
	}
	return s.InvoiceDueDate.Before(now)
}

// IsDueWithin reports whether the supply has an unpaid balance with a due
// date inside the window [now, now+window].
func (s *Supply) IsDueWithin(now time.Time, window time.Duration) bool {
	if s.InvoiceDueDate == nil || s.IsSettled() {
		return false
	}
	due := *s.InvoiceDueDate
	return !due.Before(now) && !due.After(now.Add(window))
}

var _ shared.AggregateRoot = (*Supply)(nil)
