package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pharmacy/backend/internal/domain/procurement"
	"github.com/pharmacy/backend/internal/domain/shared"
)

// AllocationService applies a payment across supply lines. The whole
// allocation runs in one transaction scope; an optional idempotency key is
// claimed before any write so a replayed request cannot decrement the
// supplier balance twice.
type AllocationService struct {
	scope       TransactionScope
	idempotency shared.IdempotencyStore
	idemConfig  shared.IdempotencyConfig
	logger      *zap.Logger
}

// NewAllocationService creates a new allocation service
func NewAllocationService(
	scope TransactionScope,
	idempotency shared.IdempotencyStore,
	idemConfig shared.IdempotencyConfig,
	logger *zap.Logger,
) *AllocationService {
	return &AllocationService{
		scope:       scope,
		idempotency: idempotency,
		idemConfig:  idemConfig,
		logger:      logger,
	}
}

// AllocatePayment records one payment and distributes it across the given
// supply lines. Missing supplies are skipped, not fatal: the result reports
// how many items were actually updated. Per-item amounts above a supply's
// outstanding due are accepted as given.
//
// Credit-backed methods are refused here: they settle from the supplier's
// derived credit, and only the credit operations check that enough credit
// exists before writing.
func (s *AllocationService) AllocatePayment(ctx context.Context, supplierID uuid.UUID, items []AllocationItem, meta PaymentMeta) (*AllocationResult, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: allocation requires at least one item", shared.ErrInvalidInput)
	}
	if meta.Method.ConsumesCredit() {
		return nil, fmt.Errorf("%w: method %s settles from supplier credit, use the credit operations", shared.ErrInvalidInput, meta.Method)
	}
	totalAmount := decimal.Zero
	for _, item := range items {
		if !item.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: item amounts must be positive", shared.ErrInvalidInput)
		}
		totalAmount = totalAmount.Add(item.Amount)
	}

	if err := s.claimIdempotencyKey(ctx, meta.IdempotencyKey); err != nil {
		return nil, err
	}

	var result AllocationResult
	err := s.scope.Execute(ctx, func(ctx context.Context, repos TransactionalRepositories) error {
		supplier, err := repos.Suppliers.FindByID(ctx, supplierID)
		if err != nil {
			return fmt.Errorf("load supplier: %w", err)
		}

		payment, err := procurement.NewPayment(supplierID, totalAmount, meta.Method, meta.Date, meta.Notes)
		if err != nil {
			return err
		}
		payment.IdempotencyKey = meta.IdempotencyKey
		if err := repos.Payments.Save(ctx, payment); err != nil {
			return fmt.Errorf("save payment: %w", err)
		}

		for _, item := range items {
			supply, err := repos.Supplies.FindByID(ctx, item.SupplyID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					s.logger.Warn("skipping allocation item, supply not found",
						zap.String("supply_id", item.SupplyID.String()),
						zap.String("supplier_id", supplierID.String()))
					continue
				}
				return fmt.Errorf("load supply: %w", err)
			}
			if supply.SupplierID != supplierID {
				s.logger.Warn("skipping allocation item, supply belongs to another supplier",
					zap.String("supply_id", item.SupplyID.String()),
					zap.String("supplier_id", supplierID.String()))
				continue
			}

			itemPayment, err := procurement.NewItemPayment(payment.ID, supply.ID, supplierID, item.Amount)
			if err != nil {
				return err
			}
			if err := supply.ApplyPayment(item.Amount); err != nil {
				return err
			}
			if err := repos.Supplies.Save(ctx, supply); err != nil {
				return fmt.Errorf("save supply: %w", err)
			}
			if err := repos.ItemPayments.Save(ctx, itemPayment); err != nil {
				return fmt.Errorf("save item payment: %w", err)
			}
			result.ItemsUpdated++
		}

		// credit adjustments have a zero delta, everything else moves the
		// aggregate by the method's effect on the full requested amount
		supplier.AdjustPayable(meta.Method.PayableDelta(totalAmount), "payment allocation")
		if err := repos.Suppliers.SaveWithLock(ctx, supplier); err != nil {
			return fmt.Errorf("save supplier: %w", err)
		}

		result.Payment = payment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment allocated",
		zap.String("supplier_id", supplierID.String()),
		zap.String("method", string(meta.Method)),
		zap.String("amount", totalAmount.String()),
		zap.Int("items_updated", result.ItemsUpdated))
	return &result, nil
}

// VoidPayment removes a payment that has no item allocations and reverses
// its balance effect. A payment with allocations stays: deleting it would
// strand the per-supply paid state its items produced.
func (s *AllocationService) VoidPayment(ctx context.Context, paymentID uuid.UUID) error {
	err := s.scope.Execute(ctx, func(ctx context.Context, repos TransactionalRepositories) error {
		payment, err := repos.Payments.FindByID(ctx, paymentID)
		if err != nil {
			return fmt.Errorf("load payment: %w", err)
		}

		allocations, err := repos.ItemPayments.FindByPayment(ctx, paymentID)
		if err != nil {
			return fmt.Errorf("load allocations: %w", err)
		}
		if len(allocations) > 0 {
			return fmt.Errorf("%w: payment has %d item allocations", shared.ErrInvalidState, len(allocations))
		}

		supplier, err := repos.Suppliers.FindByID(ctx, payment.SupplierID)
		if err != nil {
			return fmt.Errorf("load supplier: %w", err)
		}
		supplier.AdjustPayable(payment.PayableDelta().Neg(), "payment voided")
		if err := repos.Suppliers.SaveWithLock(ctx, supplier); err != nil {
			return fmt.Errorf("save supplier: %w", err)
		}

		if err := repos.Payments.Delete(ctx, paymentID); err != nil {
			return fmt.Errorf("delete payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("payment voided", zap.String("payment_id", paymentID.String()))
	return nil
}

func (s *AllocationService) claimIdempotencyKey(ctx context.Context, key string) error {
	if key == "" || !s.idemConfig.Enabled || s.idempotency == nil {
		return nil
	}
	fresh, err := s.idempotency.MarkProcessed(ctx, key, s.idemConfig.TTL)
	if err != nil {
		return fmt.Errorf("idempotency check: %w", err)
	}
	if !fresh {
		return shared.ErrDuplicateRequest
	}
	return nil
}
