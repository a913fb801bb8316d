package settlement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmacy/backend/internal/domain/procurement"
)

// AllocationItem is one supply target inside a payment allocation
type AllocationItem struct {
	SupplyID uuid.UUID       `json:"supply_id"`
	Amount   decimal.Decimal `json:"amount"`
}

// PaymentMeta carries the payment-level attributes of an allocation
type PaymentMeta struct {
	Method         procurement.PaymentMethod `json:"method"`
	Date           time.Time                 `json:"date"`
	Notes          string                    `json:"notes"`
	IdempotencyKey string                    `json:"idempotency_key"`
}

// AllocationResult reports the outcome of a payment allocation.
// ItemsUpdated can be lower than the requested item count when some
// supplies no longer exist; callers reconcile against it.
type AllocationResult struct {
	Payment      *procurement.Payment `json:"payment"`
	ItemsUpdated int                  `json:"items_updated"`
}

// CreditResult reports the outcome of a credit application or cash refund
type CreditResult struct {
	Payment         *procurement.Payment `json:"payment"`
	RemainingCredit decimal.Decimal      `json:"remaining_credit"`
}

// ReturnItem is one line of a purchase return. The stock position is
// resolved through StockItemID, the originating SupplyID, or the medicine
// name, in that order.
type ReturnItem struct {
	StockItemID *uuid.UUID      `json:"stock_item_id,omitempty"`
	SupplyID    *uuid.UUID      `json:"supply_id,omitempty"`
	Name        string          `json:"name,omitempty"`
	Quantity    int64           `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
}

// ReturnResult reports the outcome of a purchase return
type ReturnResult struct {
	Payment     *procurement.Payment `json:"payment"`
	TotalAmount decimal.Decimal      `json:"total_amount"`
}
