package partner

import (
	"context"

	"github.com/pharmacy/backend/internal/domain/shared"
)

// SupplierRepository defines the persistence contract for suppliers
type SupplierRepository interface {
	shared.Repository[Supplier]

	// SaveWithLock updates a supplier guarded by its version so that two
	// concurrent balance mutations cannot both win. Returns
	// shared.ErrConcurrencyConflict when the stored version moved.
	SaveWithLock(ctx context.Context, supplier *Supplier) error

	// FindByNameKey looks up a supplier by its normalized name key.
	// Returns shared.ErrNotFound if no supplier matches.
	FindByNameKey(ctx context.Context, nameKey string) (*Supplier, error)

	// FindWithCredit returns all suppliers with a negative payable balance
	FindWithCredit(ctx context.Context) ([]Supplier, error)
}
