package partner

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmacy/backend/internal/domain/shared"
)

// Event types for the supplier aggregate
const (
	EventTypeSupplierCreated        = "supplier.created"
	EventTypeSupplierDeleted        = "supplier.deleted"
	EventTypeSupplierBalanceChanged = "supplier.balance_changed"
)

// SupplierCreatedEvent is raised when a new supplier is registered
type SupplierCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewSupplierCreatedEvent creates a new supplier created event
func NewSupplierCreatedEvent(supplierID uuid.UUID, name string) *SupplierCreatedEvent {
	return &SupplierCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplierCreated, "Supplier", supplierID),
		Name:            name,
	}
}

// SupplierDeletedEvent is raised when a supplier and its records are removed
type SupplierDeletedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewSupplierDeletedEvent creates a new supplier deleted event
func NewSupplierDeletedEvent(supplierID uuid.UUID, name string) *SupplierDeletedEvent {
	return &SupplierDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplierDeleted, "Supplier", supplierID),
		Name:            name,
	}
}

// SupplierBalanceChangedEvent is raised whenever the payable balance moves.
// Delta is signed: positive for new debt, negative for payments and returns.
type SupplierBalanceChangedEvent struct {
	shared.BaseDomainEvent
	Delta      decimal.Decimal `json:"delta"`
	NewBalance decimal.Decimal `json:"new_balance"`
	Reason     string          `json:"reason"`
}

// NewSupplierBalanceChangedEvent creates a new balance changed event
func NewSupplierBalanceChangedEvent(supplierID uuid.UUID, delta, newBalance decimal.Decimal, reason string) *SupplierBalanceChangedEvent {
	return &SupplierBalanceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplierBalanceChanged, "Supplier", supplierID),
		Delta:           delta,
		NewBalance:      newBalance,
		Reason:          reason,
	}
}
