package settlement

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pharmacy/backend/internal/domain/partner"
	"github.com/pharmacy/backend/internal/domain/procurement"
	"github.com/pharmacy/backend/internal/domain/shared"
)

// seedCredit arranges history giving the supplier a derived credit of 500:
// purchases 1000, cash paid 1500
func seedCredit(t *testing.T, r *testRepos) *partner.Supplier {
	t.Helper()
	supplier := testSupplier(t, 0)
	supplier.AdjustPayable(decimal.NewFromInt(-500), "seed")
	supplier.ClearDomainEvents()

	supply := testSupplyFor(t, supplier.ID, 10, 100)
	payment, err := procurement.NewPayment(supplier.ID, decimal.NewFromInt(1500), procurement.MethodCash, time.Now(), "")
	require.NoError(t, err)

	ctx := context.Background()
	r.suppliers.On("FindByID", ctx, supplier.ID).Return(supplier, nil)
	r.supplies.On("FindBySupplier", ctx, supplier.ID).Return([]procurement.Supply{*supply}, nil)
	r.payments.On("FindBySupplier", ctx, supplier.ID).Return([]procurement.Payment{*payment}, nil)
	return supplier
}

func TestCreditService_GetCredit(t *testing.T) {
	r := newTestRepos()
	service := NewCreditService(r.scope, zap.NewNop())
	supplier := seedCredit(t, r)

	credit, err := service.GetCredit(context.Background(), supplier.ID)
	require.NoError(t, err)
	assert.True(t, credit.Equal(decimal.NewFromInt(500)))
}

func TestCreditService_ApplyCredit(t *testing.T) {
	ctx := context.Background()

	t.Run("applies within available credit", func(t *testing.T) {
		r := newTestRepos()
		service := NewCreditService(r.scope, zap.NewNop())
		supplier := seedCredit(t, r)

		r.payments.On("Save", ctx, mock.AnythingOfType("*procurement.Payment")).Return(nil)
		r.suppliers.On("SaveWithLock", ctx, supplier).Return(nil)

		result, err := service.ApplyCredit(ctx, supplier.ID, decimal.NewFromInt(300), nil, "use credit")
		require.NoError(t, err)

		assert.Equal(t, procurement.MethodCreditApplication, result.Payment.Method)
		assert.True(t, result.RemainingCredit.Equal(decimal.NewFromInt(200)))
		// the application moves the aggregate deeper into credit
		assert.True(t, supplier.TotalPayable.Equal(decimal.NewFromInt(-800)))
	})

	t.Run("fails when amount exceeds credit", func(t *testing.T) {
		r := newTestRepos()
		service := NewCreditService(r.scope, zap.NewNop())
		supplier := seedCredit(t, r)

		_, err := service.ApplyCredit(ctx, supplier.ID, decimal.NewFromInt(600), nil, "")
		assert.ErrorIs(t, err, shared.ErrInsufficientCredit)
		r.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("distributes oldest-first capped at remaining due", func(t *testing.T) {
		r := newTestRepos()
		service := NewCreditService(r.scope, zap.NewNop())
		supplier := seedCredit(t, r)
		supplierID := supplier.ID

		older, err := procurement.NewSupply(supplierID, "Acme", "Old invoice", 2, decimal.NewFromInt(50), time.Now().AddDate(0, 0, -10))
		require.NoError(t, err) // total 100
		newer, err := procurement.NewSupply(supplierID, "Acme", "New invoice", 3, decimal.NewFromInt(100), time.Now().AddDate(0, 0, -1))
		require.NoError(t, err) // total 300

		ids := []uuid.UUID{newer.ID, older.ID}
		r.supplies.On("FindByIDs", ctx, ids).Return([]procurement.Supply{*newer, *older}, nil)
		r.payments.On("Save", ctx, mock.AnythingOfType("*procurement.Payment")).Return(nil)
		r.supplies.On("Save", ctx, mock.MatchedBy(func(s *procurement.Supply) bool {
			return s.ID == older.ID && s.PaidAmount.Equal(decimal.NewFromInt(100))
		})).Return(nil).Once()
		r.supplies.On("Save", ctx, mock.MatchedBy(func(s *procurement.Supply) bool {
			return s.ID == newer.ID && s.PaidAmount.Equal(decimal.NewFromInt(150))
		})).Return(nil).Once()
		r.itemPayments.On("Save", ctx, mock.AnythingOfType("*procurement.ItemPayment")).Return(nil)
		r.suppliers.On("SaveWithLock", ctx, supplier).Return(nil)

		result, err := service.ApplyCredit(ctx, supplierID, decimal.NewFromInt(250), ids, "")
		require.NoError(t, err)
		assert.True(t, result.RemainingCredit.Equal(decimal.NewFromInt(250)))
		r.supplies.AssertExpectations(t)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		r := newTestRepos()
		service := NewCreditService(r.scope, zap.NewNop())

		_, err := service.ApplyCredit(ctx, uuid.New(), decimal.Zero, nil, "")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestCreditService_RecordCashRefund(t *testing.T) {
	ctx := context.Background()

	t.Run("records refund and raises payable toward zero", func(t *testing.T) {
		r := newTestRepos()
		service := NewCreditService(r.scope, zap.NewNop())
		supplier := seedCredit(t, r)

		r.payments.On("Save", ctx, mock.AnythingOfType("*procurement.Payment")).Return(nil)
		r.suppliers.On("SaveWithLock", ctx, supplier).Return(nil)

		result, err := service.RecordCashRefund(ctx, supplier.ID, decimal.NewFromInt(200), "refund", time.Now())
		require.NoError(t, err)

		assert.Equal(t, procurement.MethodCashRefund, result.Payment.Method)
		assert.True(t, result.RemainingCredit.Equal(decimal.NewFromInt(300)))
		// refund raises the balance from -500 toward zero
		assert.True(t, supplier.TotalPayable.Equal(decimal.NewFromInt(-300)))
	})

	t.Run("fails when refund exceeds credit", func(t *testing.T) {
		r := newTestRepos()
		service := NewCreditService(r.scope, zap.NewNop())
		supplier := seedCredit(t, r)

		_, err := service.RecordCashRefund(ctx, supplier.ID, decimal.NewFromInt(501), "", time.Now())
		assert.ErrorIs(t, err, shared.ErrInsufficientCredit)
		r.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
