package settlement

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pharmacy/backend/internal/application/ledger"
	"github.com/pharmacy/backend/internal/domain/procurement"
	"github.com/pharmacy/backend/internal/domain/shared"
)

// CreditService manages the supplier credit pool: applying accrued credit
// to open invoices and paying credit out as a cash refund. Both operations
// recompute the derived credit first and abort before any write when the
// requested amount exceeds it.
type CreditService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewCreditService creates a new credit service
func NewCreditService(scope TransactionScope, logger *zap.Logger) *CreditService {
	return &CreditService{scope: scope, logger: logger}
}

// GetCredit returns the supplier's current derived credit
func (s *CreditService) GetCredit(ctx context.Context, supplierID uuid.UUID) (decimal.Decimal, error) {
	credit := decimal.Zero
	err := s.scope.Execute(ctx, func(ctx context.Context, repos TransactionalRepositories) error {
		var err error
		credit, err = s.computeCredit(ctx, repos, supplierID)
		return err
	})
	return credit, err
}

// ApplyCredit settles open supplies using accrued supplier credit. When
// supplyIDs are given the amount is distributed oldest-first across them,
// each capped at its remaining due; without them only the aggregate moves.
func (s *CreditService) ApplyCredit(ctx context.Context, supplierID uuid.UUID, amount decimal.Decimal, supplyIDs []uuid.UUID, note string) (*CreditResult, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: credit amount must be positive", shared.ErrInvalidInput)
	}

	var result CreditResult
	err := s.scope.Execute(ctx, func(ctx context.Context, repos TransactionalRepositories) error {
		supplier, err := repos.Suppliers.FindByID(ctx, supplierID)
		if err != nil {
			return fmt.Errorf("load supplier: %w", err)
		}

		credit, err := s.computeCredit(ctx, repos, supplierID)
		if err != nil {
			return err
		}
		if amount.GreaterThan(credit) {
			return fmt.Errorf("%w: requested %s, available %s", shared.ErrInsufficientCredit, amount.String(), credit.String())
		}

		payment, err := procurement.NewPayment(supplierID, amount, procurement.MethodCreditApplication, time.Now(), note)
		if err != nil {
			return err
		}
		if err := repos.Payments.Save(ctx, payment); err != nil {
			return fmt.Errorf("save payment: %w", err)
		}

		if len(supplyIDs) > 0 {
			if err := s.distribute(ctx, repos, payment, supplyIDs, amount); err != nil {
				return err
			}
		}

		supplier.AdjustPayable(payment.PayableDelta(), "credit application")
		if err := repos.Suppliers.SaveWithLock(ctx, supplier); err != nil {
			return fmt.Errorf("save supplier: %w", err)
		}

		result.Payment = payment
		result.RemainingCredit = credit.Sub(amount)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("credit applied",
		zap.String("supplier_id", supplierID.String()),
		zap.String("amount", amount.String()),
		zap.String("remaining_credit", result.RemainingCredit.String()))
	return &result, nil
}

// RecordCashRefund records the supplier paying accrued credit back in cash.
// No supply is touched; only the payment record and the aggregate balance.
func (s *CreditService) RecordCashRefund(ctx context.Context, supplierID uuid.UUID, amount decimal.Decimal, note string, date time.Time) (*CreditResult, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: refund amount must be positive", shared.ErrInvalidInput)
	}

	var result CreditResult
	err := s.scope.Execute(ctx, func(ctx context.Context, repos TransactionalRepositories) error {
		supplier, err := repos.Suppliers.FindByID(ctx, supplierID)
		if err != nil {
			return fmt.Errorf("load supplier: %w", err)
		}

		credit, err := s.computeCredit(ctx, repos, supplierID)
		if err != nil {
			return err
		}
		if amount.GreaterThan(credit) {
			return fmt.Errorf("%w: requested %s, available %s", shared.ErrInsufficientCredit, amount.String(), credit.String())
		}

		payment, err := procurement.NewPayment(supplierID, amount, procurement.MethodCashRefund, date, note)
		if err != nil {
			return err
		}
		if err := repos.Payments.Save(ctx, payment); err != nil {
			return fmt.Errorf("save payment: %w", err)
		}

		supplier.AdjustPayable(payment.PayableDelta(), "cash refund")
		if err := repos.Suppliers.SaveWithLock(ctx, supplier); err != nil {
			return fmt.Errorf("save supplier: %w", err)
		}

		result.Payment = payment
		result.RemainingCredit = credit.Sub(amount)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("cash refund recorded",
		zap.String("supplier_id", supplierID.String()),
		zap.String("amount", amount.String()))
	return &result, nil
}

func (s *CreditService) computeCredit(ctx context.Context, repos TransactionalRepositories, supplierID uuid.UUID) (decimal.Decimal, error) {
	supplies, err := repos.Supplies.FindBySupplier(ctx, supplierID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("load supplies: %w", err)
	}
	payments, err := repos.Payments.FindBySupplier(ctx, supplierID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("load payments: %w", err)
	}
	return ledger.ComputeCredit(supplies, payments), nil
}

// distribute spreads amount across the given supplies oldest-first, each
// share capped at the supply's remaining due
func (s *CreditService) distribute(ctx context.Context, repos TransactionalRepositories, payment *procurement.Payment, supplyIDs []uuid.UUID, amount decimal.Decimal) error {
	supplies, err := repos.Supplies.FindByIDs(ctx, supplyIDs)
	if err != nil {
		return fmt.Errorf("load supplies: %w", err)
	}
	sort.SliceStable(supplies, func(i, j int) bool {
		return supplies[i].AddedDate.Before(supplies[j].AddedDate)
	})

	remaining := amount
	for i := range supplies {
		if !remaining.IsPositive() {
			break
		}
		due := supplies[i].DueAmount()
		if !due.IsPositive() {
			continue
		}
		share := due
		if remaining.LessThan(share) {
			share = remaining
		}

		itemPayment, err := procurement.NewItemPayment(payment.ID, supplies[i].ID, supplies[i].SupplierID, share)
		if err != nil {
			return err
		}
		if err := supplies[i].ApplyPayment(share); err != nil {
			return err
		}
		if err := repos.Supplies.Save(ctx, &supplies[i]); err != nil {
			return fmt.Errorf("save supply: %w", err)
		}
		if err := repos.ItemPayments.Save(ctx, itemPayment); err != nil {
			return fmt.Errorf("save item payment: %w", err)
		}
		remaining = remaining.Sub(share)
	}
	return nil
}
