package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pharmacy/backend/internal/domain/inventory"
	"github.com/pharmacy/backend/internal/domain/procurement"
	"github.com/pharmacy/backend/internal/domain/shared"
)

// ReturnService records purchase returns. A return posts a debit note
// payment, reduces the linked stock positions and decrements the supplier
// balance. The originating supply records stay untouched so the invoice
// history remains accurate; the return is its own ledger entry.
type ReturnService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewReturnService creates a new return service
func NewReturnService(scope TransactionScope, logger *zap.Logger) *ReturnService {
	return &ReturnService{scope: scope, logger: logger}
}

// PurchaseReturn returns goods to a supplier. Stock availability is
// validated across all items before anything is written; an insufficient
// position aborts the whole return with every record unmodified.
func (s *ReturnService) PurchaseReturn(ctx context.Context, supplierID uuid.UUID, items []ReturnItem, reason string, date time.Time) (*ReturnResult, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: return requires at least one item", shared.ErrInvalidInput)
	}
	totalAmount := decimal.Zero
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: return quantities must be positive", shared.ErrInvalidInput)
		}
		if item.Total.IsNegative() {
			return nil, fmt.Errorf("%w: return totals cannot be negative", shared.ErrInvalidInput)
		}
		totalAmount = totalAmount.Add(item.Total)
	}
	if date.IsZero() {
		date = time.Now()
	}

	var result ReturnResult
	err := s.scope.Execute(ctx, func(ctx context.Context, repos TransactionalRepositories) error {
		supplier, err := repos.Suppliers.FindByID(ctx, supplierID)
		if err != nil {
			return fmt.Errorf("load supplier: %w", err)
		}

		// Resolve and decrement every position in memory first. Items
		// hitting the same stock record accumulate on one aggregate, so
		// the insufficient-stock check sees the combined quantity.
		stockByID := make(map[uuid.UUID]*inventory.StockItem)
		for _, item := range items {
			stock, err := s.resolveStock(ctx, repos, item, stockByID)
			if err != nil {
				return err
			}
			if err := stock.Decrease(item.Quantity); err != nil {
				return err
			}
		}

		payment, err := procurement.NewPayment(supplierID, totalAmount, procurement.MethodDebitNote, date, reason)
		if err != nil {
			return err
		}
		if err := repos.Payments.Save(ctx, payment); err != nil {
			return fmt.Errorf("save payment: %w", err)
		}

		for _, stock := range stockByID {
			if err := repos.StockItems.Save(ctx, stock); err != nil {
				return fmt.Errorf("save stock item: %w", err)
			}
		}

		supplier.AdjustPayable(payment.PayableDelta(), "purchase return")
		if err := repos.Suppliers.SaveWithLock(ctx, supplier); err != nil {
			return fmt.Errorf("save supplier: %w", err)
		}

		result.Payment = payment
		result.TotalAmount = totalAmount
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase return recorded",
		zap.String("supplier_id", supplierID.String()),
		zap.String("amount", totalAmount.String()),
		zap.Int("items", len(items)))
	return &result, nil
}

// resolveStock finds the stock position a return item points at, through
// the explicit stock ID, the originating supply, or the medicine name
func (s *ReturnService) resolveStock(ctx context.Context, repos TransactionalRepositories, item ReturnItem, cache map[uuid.UUID]*inventory.StockItem) (*inventory.StockItem, error) {
	load := func(id uuid.UUID) (*inventory.StockItem, error) {
		if stock, ok := cache[id]; ok {
			return stock, nil
		}
		stock, err := repos.StockItems.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load stock item: %w", err)
		}
		cache[id] = stock
		return stock, nil
	}

	switch {
	case item.StockItemID != nil:
		return load(*item.StockItemID)
	case item.SupplyID != nil:
		supply, err := repos.Supplies.FindByID(ctx, *item.SupplyID)
		if err != nil {
			return nil, fmt.Errorf("load supply: %w", err)
		}
		if supply.StockItemID == nil {
			return nil, fmt.Errorf("%w: supply %s has no linked stock item", shared.ErrNotFound, supply.ID)
		}
		return load(*supply.StockItemID)
	case item.Name != "":
		stock, err := repos.StockItems.FindByNameKey(ctx, inventory.NameKeyOf(item.Name))
		if err != nil {
			return nil, fmt.Errorf("load stock item by name: %w", err)
		}
		if cached, ok := cache[stock.ID]; ok {
			return cached, nil
		}
		cache[stock.ID] = stock
		return stock, nil
	default:
		return nil, fmt.Errorf("%w: return item needs a stock item, supply or name reference", shared.ErrInvalidInput)
	}
}
