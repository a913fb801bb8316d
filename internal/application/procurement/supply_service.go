package procurement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pharmacy/backend/internal/application/settlement"
	"github.com/pharmacy/backend/internal/domain/inventory"
	"github.com/pharmacy/backend/internal/domain/partner"
	"github.com/pharmacy/backend/internal/domain/procurement"
	"github.com/pharmacy/backend/internal/domain/shared"
)

// RecordSupplyInput carries everything needed to book a purchase line
type RecordSupplyInput struct {
	SupplierID     *uuid.UUID      `json:"supplier_id,omitempty"`
	SupplierName   string          `json:"supplier_name"`
	MedicineName   string          `json:"medicine_name"`
	Quantity       int64           `json:"quantity"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	Unit           string          `json:"unit"`
	BatchNumber    string          `json:"batch_number"`
	InvoiceNumber  string          `json:"invoice_number"`
	InvoiceDueDate *time.Time      `json:"invoice_due_date,omitempty"`
	AddedDate      time.Time       `json:"added_date"`
}

// SupplyService books and voids purchase invoice lines. Recording a supply
// raises the supplier balance and the stock position together; voiding
// reverses both, but only while no payment has been allocated against it.
type SupplyService struct {
	scope  settlement.TransactionScope
	logger *zap.Logger
}

// NewSupplyService creates a new supply service
func NewSupplyService(scope settlement.TransactionScope, logger *zap.Logger) *SupplyService {
	return &SupplyService{scope: scope, logger: logger}
}

// RecordSupply books a purchase line. The supplier is resolved by ID or by
// normalized name and created on first purchase; the stock position is
// found or created by medicine name and increased by the received quantity.
func (s *SupplyService) RecordSupply(ctx context.Context, input RecordSupplyInput) (*procurement.Supply, error) {
	var recorded *procurement.Supply
	err := s.scope.Execute(ctx, func(ctx context.Context, repos settlement.TransactionalRepositories) error {
		supplier, err := s.resolveSupplier(ctx, repos, input)
		if err != nil {
			return err
		}

		supply, err := procurement.NewSupply(supplier.ID, supplier.Name, input.MedicineName, input.Quantity, input.UnitCost, input.AddedDate)
		if err != nil {
			return err
		}
		supply.WithInvoice(input.InvoiceNumber, input.InvoiceDueDate)

		stock, err := s.resolveStock(ctx, repos, input)
		if err != nil {
			return err
		}
		if err := stock.Increase(input.Quantity); err != nil {
			return err
		}
		if err := repos.StockItems.Save(ctx, stock); err != nil {
			return fmt.Errorf("save stock item: %w", err)
		}
		supply.WithBatch(input.BatchNumber, &stock.ID)

		if err := repos.Supplies.Save(ctx, supply); err != nil {
			return fmt.Errorf("save supply: %w", err)
		}

		if err := supplier.IncreasePayable(supply.TotalCost(), "supply recorded"); err != nil {
			return err
		}
		if err := repos.Suppliers.SaveWithLock(ctx, supplier); err != nil {
			return fmt.Errorf("save supplier: %w", err)
		}

		recorded = supply
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("supply recorded",
		zap.String("supply_id", recorded.ID.String()),
		zap.String("supplier", recorded.SupplierName),
		zap.String("medicine", recorded.MedicineName),
		zap.String("total_cost", recorded.TotalCost().String()))
	return recorded, nil
}

// VoidSupply removes a supply line and reverses its stock and balance
// contribution. A supply with allocated payments cannot be voided; the
// allocations would be left pointing at nothing.
func (s *SupplyService) VoidSupply(ctx context.Context, supplyID uuid.UUID) error {
	err := s.scope.Execute(ctx, func(ctx context.Context, repos settlement.TransactionalRepositories) error {
		supply, err := repos.Supplies.FindByID(ctx, supplyID)
		if err != nil {
			return fmt.Errorf("load supply: %w", err)
		}

		allocations, err := repos.ItemPayments.CountBySupply(ctx, supplyID)
		if err != nil {
			return fmt.Errorf("count allocations: %w", err)
		}
		if allocations > 0 {
			return fmt.Errorf("%w: supply has %d allocated payments", shared.ErrInvalidState, allocations)
		}

		if supply.StockItemID != nil {
			stock, err := repos.StockItems.FindByID(ctx, *supply.StockItemID)
			if err != nil {
				return fmt.Errorf("load stock item: %w", err)
			}
			if err := stock.Decrease(supply.Quantity); err != nil {
				return err
			}
			if err := repos.StockItems.Save(ctx, stock); err != nil {
				return fmt.Errorf("save stock item: %w", err)
			}
		}

		supplier, err := repos.Suppliers.FindByID(ctx, supply.SupplierID)
		if err != nil {
			return fmt.Errorf("load supplier: %w", err)
		}
		supplier.AdjustPayable(supply.TotalCost().Neg(), "supply voided")
		if err := repos.Suppliers.SaveWithLock(ctx, supplier); err != nil {
			return fmt.Errorf("save supplier: %w", err)
		}

		if err := repos.Supplies.Delete(ctx, supplyID); err != nil {
			return fmt.Errorf("delete supply: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("supply voided", zap.String("supply_id", supplyID.String()))
	return nil
}

// ListUnsettled returns the supplier's open invoice lines, oldest first.
// This is the candidate set a caller picks allocation targets from.
func (s *SupplyService) ListUnsettled(ctx context.Context, supplierID uuid.UUID) ([]procurement.Supply, error) {
	var supplies []procurement.Supply
	err := s.scope.Execute(ctx, func(ctx context.Context, repos settlement.TransactionalRepositories) error {
		var err error
		supplies, err = repos.Supplies.FindUnsettledBySupplier(ctx, supplierID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load unsettled supplies: %w", err)
	}
	return supplies, nil
}

func (s *SupplyService) resolveSupplier(ctx context.Context, repos settlement.TransactionalRepositories, input RecordSupplyInput) (*partner.Supplier, error) {
	if input.SupplierID != nil {
		supplier, err := repos.Suppliers.FindByID(ctx, *input.SupplierID)
		if err != nil {
			return nil, fmt.Errorf("load supplier: %w", err)
		}
		return supplier, nil
	}

	supplier, err := repos.Suppliers.FindByNameKey(ctx, partner.NameKeyOf(input.SupplierName))
	if err == nil {
		return supplier, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("lookup supplier: %w", err)
	}

	supplier, err = partner.NewSupplier(input.SupplierName)
	if err != nil {
		return nil, err
	}
	if err := repos.Suppliers.Save(ctx, supplier); err != nil {
		return nil, fmt.Errorf("save supplier: %w", err)
	}
	s.logger.Info("supplier created on first purchase",
		zap.String("supplier_id", supplier.ID.String()),
		zap.String("name", supplier.Name))
	return supplier, nil
}

func (s *SupplyService) resolveStock(ctx context.Context, repos settlement.TransactionalRepositories, input RecordSupplyInput) (*inventory.StockItem, error) {
	stock, err := repos.StockItems.FindByNameKey(ctx, inventory.NameKeyOf(input.MedicineName))
	if err == nil {
		return stock, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("lookup stock item: %w", err)
	}

	stock, err = inventory.NewStockItem(input.MedicineName, input.Unit, 0)
	if err != nil {
		return nil, err
	}
	return stock, nil
}
