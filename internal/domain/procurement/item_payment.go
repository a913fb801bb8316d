package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmacy/backend/internal/domain/shared"
)

// ItemPayment links a slice of a payment to one supply line. It is an
// immutable audit record: once written it is never updated, only read when
// reconstructing how a supply was settled.
type ItemPayment struct {
	shared.BaseEntity
	PaymentID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"payment_id"`
	SupplyID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"supply_id"`
	SupplierID uuid.UUID       `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Amount     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	AppliedAt  time.Time       `gorm:"not null" json:"applied_at"`
}

// TableName returns the database table name
func (ItemPayment) TableName() string {
	return "item_payments"
}

// NewItemPayment creates a new item payment allocation record
func NewItemPayment(paymentID, supplyID, supplierID uuid.UUID, amount decimal.Decimal) (*ItemPayment, error) {
	if paymentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PAYMENT", "payment ID is required")
	}
	if supplyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLY", "supply ID is required")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "supplier ID is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "allocation amount must be positive")
	}

	return &ItemPayment{
		BaseEntity: shared.NewBaseEntity(),
		PaymentID:  paymentID,
		SupplyID:   supplyID,
		SupplierID: supplierID,
		Amount:     amount,
		AppliedAt:  time.Now(),
	}, nil
}
