package procurement

import (
	"context"

	"github.com/google/uuid"

	"github.com/pharmacy/backend/internal/domain/shared"
)

// SupplyRepository defines the persistence contract for supplies
type SupplyRepository interface {
	shared.Repository[Supply]

	// FindBySupplier returns all supplies for a supplier ordered by
	// added date ascending, oldest first
	FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]Supply, error)

	// FindUnsettledBySupplier returns supplies with outstanding due for a
	// supplier ordered by added date ascending
	FindUnsettledBySupplier(ctx context.Context, supplierID uuid.UUID) ([]Supply, error)

	// FindByIDs fetches supplies by ID, skipping IDs that do not exist
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Supply, error)

	// DeleteBySupplier removes all supplies for a supplier
	DeleteBySupplier(ctx context.Context, supplierID uuid.UUID) error
}

// PaymentRepository defines the persistence contract for payments
type PaymentRepository interface {
	shared.Repository[Payment]

	// FindBySupplier returns all payments for a supplier ordered by
	// payment date ascending
	FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]Payment, error)

	// DeleteBySupplier removes all payments for a supplier
	DeleteBySupplier(ctx context.Context, supplierID uuid.UUID) error
}

// ItemPaymentRepository defines the persistence contract for allocation records
type ItemPaymentRepository interface {
	// Save persists an item payment record
	Save(ctx context.Context, itemPayment *ItemPayment) error

	// FindBySupply returns allocation records for a supply
	FindBySupply(ctx context.Context, supplyID uuid.UUID) ([]ItemPayment, error)

	// FindByPayment returns allocation records created by a payment
	FindByPayment(ctx context.Context, paymentID uuid.UUID) ([]ItemPayment, error)

	// CountBySupply returns the number of allocation records for a supply
	CountBySupply(ctx context.Context, supplyID uuid.UUID) (int64, error)

	// DeleteBySupplier removes all allocation records for a supplier
	DeleteBySupplier(ctx context.Context, supplierID uuid.UUID) error
}
