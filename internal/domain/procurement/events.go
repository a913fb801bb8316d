package procurement

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmacy/backend/internal/domain/shared"
)

// Event types for procurement aggregates
const (
	EventTypeSupplyRecorded       = "supply.recorded"
	EventTypeSupplyVoided         = "supply.voided"
	EventTypeSupplyPaymentApplied = "supply.payment_applied"
	EventTypePaymentRecorded      = "payment.recorded"
)

// SupplyRecordedEvent is raised when a new supply line is received
type SupplyRecordedEvent struct {
	shared.BaseDomainEvent
	SupplierID   uuid.UUID       `json:"supplier_id"`
	MedicineName string          `json:"medicine_name"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
}

// NewSupplyRecordedEvent creates a new supply recorded event
func NewSupplyRecordedEvent(supplyID, supplierID uuid.UUID, medicineName string, purchaseCost decimal.Decimal) *SupplyRecordedEvent {
	return &SupplyRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplyRecorded, "Supply", supplyID),
		SupplierID:      supplierID,
		MedicineName:    medicineName,
		PurchaseCost:    purchaseCost,
	}
}

// SupplyVoidedEvent is raised when a supply line is removed from the books
type SupplyVoidedEvent struct {
	shared.BaseDomainEvent
	SupplierID uuid.UUID       `json:"supplier_id"`
	DueAmount  decimal.Decimal `json:"due_amount"`
}

// NewSupplyVoidedEvent creates a new supply voided event
func NewSupplyVoidedEvent(supplyID, supplierID uuid.UUID, dueAmount decimal.Decimal) *SupplyVoidedEvent {
	return &SupplyVoidedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplyVoided, "Supply", supplyID),
		SupplierID:      supplierID,
		DueAmount:       dueAmount,
	}
}

// SupplyPaymentAppliedEvent is raised when a payment is allocated to a supply
type SupplyPaymentAppliedEvent struct {
	shared.BaseDomainEvent
	SupplierID uuid.UUID       `json:"supplier_id"`
	Amount     decimal.Decimal `json:"amount"`
	PaidTotal  decimal.Decimal `json:"paid_total"`
	Status     PaymentStatus   `json:"status"`
}

// NewSupplyPaymentAppliedEvent creates a new payment applied event
func NewSupplyPaymentAppliedEvent(supplyID, supplierID uuid.UUID, amount, paidTotal decimal.Decimal, status PaymentStatus) *SupplyPaymentAppliedEvent {
	return &SupplyPaymentAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplyPaymentApplied, "Supply", supplyID),
		SupplierID:      supplierID,
		Amount:          amount,
		PaidTotal:       paidTotal,
		Status:          status,
	}
}

// PaymentRecordedEvent is raised when a payment record is created
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	SupplierID uuid.UUID       `json:"supplier_id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     PaymentMethod   `json:"method"`
}

// NewPaymentRecordedEvent creates a new payment recorded event
func NewPaymentRecordedEvent(paymentID, supplierID uuid.UUID, amount decimal.Decimal, method PaymentMethod) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRecorded, "Payment", paymentID),
		SupplierID:      supplierID,
		Amount:          amount,
		Method:          method,
	}
}
