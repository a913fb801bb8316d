package inventory

import (
	"context"

	"github.com/pharmacy/backend/internal/domain/shared"
)

// StockItemRepository defines the persistence contract for stock items
type StockItemRepository interface {
	shared.Repository[StockItem]

	// FindByNameKey looks up a stock item by its normalized name key.
	// Returns shared.ErrNotFound if no item matches.
	FindByNameKey(ctx context.Context, nameKey string) (*StockItem, error)
}
