package procurement

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentMethod_PayableDelta(t *testing.T) {
	amount := decimal.NewFromInt(100)

	tests := []struct {
		method   PaymentMethod
		expected decimal.Decimal
	}{
		{MethodCash, decimal.NewFromInt(-100)},
		{MethodBankTransfer, decimal.NewFromInt(-100)},
		{MethodCheck, decimal.NewFromInt(-100)},
		{MethodDebitNote, decimal.NewFromInt(-100)},
		{MethodCreditAdjustment, decimal.Zero},
		{MethodCreditApplication, decimal.NewFromInt(-100)},
		{MethodCashRefund, decimal.NewFromInt(100)},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			assert.True(t, tt.method.PayableDelta(amount).Equal(tt.expected))
		})
	}
}

func TestPaymentMethod_Classification(t *testing.T) {
	tests := []struct {
		method         PaymentMethod
		disbursement   bool
		consumesCredit bool
		isReturn       bool
	}{
		{MethodCash, true, false, false},
		{MethodBankTransfer, true, false, false},
		{MethodCheck, true, false, false},
		{MethodDebitNote, false, false, true},
		{MethodCreditAdjustment, false, false, false},
		{MethodCreditApplication, false, true, false},
		{MethodCashRefund, false, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			assert.Equal(t, tt.disbursement, tt.method.IsCashDisbursement())
			assert.Equal(t, tt.consumesCredit, tt.method.ConsumesCredit())
			assert.Equal(t, tt.isReturn, tt.method.IsReturn())
		})
	}
}

func TestNewPayment(t *testing.T) {
	supplierID := uuid.New()

	t.Run("creates payment record", func(t *testing.T) {
		payment, err := NewPayment(supplierID, decimal.NewFromInt(250), MethodBankTransfer, time.Now(), "august invoice")
		require.NoError(t, err)

		assert.True(t, payment.Amount.Equal(decimal.NewFromInt(250)))
		assert.Equal(t, MethodBankTransfer, payment.Method)
		assert.True(t, payment.PayableDelta().Equal(decimal.NewFromInt(-250)))
		assert.Len(t, payment.GetDomainEvents(), 1)
	})

	t.Run("credit adjustment stores zero amount", func(t *testing.T) {
		payment, err := NewPayment(supplierID, decimal.NewFromInt(999), MethodCreditAdjustment, time.Now(), "")
		require.NoError(t, err)

		assert.True(t, payment.Amount.IsZero())
		assert.True(t, payment.PayableDelta().IsZero())
	})

	t.Run("cash refund increases payable", func(t *testing.T) {
		payment, err := NewPayment(supplierID, decimal.NewFromInt(80), MethodCashRefund, time.Now(), "")
		require.NoError(t, err)

		assert.True(t, payment.PayableDelta().Equal(decimal.NewFromInt(80)))
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		_, err := NewPayment(supplierID, decimal.NewFromInt(10), PaymentMethod("barter"), time.Now(), "")
		assert.Error(t, err)
	})

	t.Run("rejects nil supplier", func(t *testing.T) {
		_, err := NewPayment(uuid.Nil, decimal.NewFromInt(10), MethodCash, time.Now(), "")
		assert.Error(t, err)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := NewPayment(supplierID, decimal.NewFromInt(-10), MethodCash, time.Now(), "")
		assert.Error(t, err)
	})
}

func TestNewItemPayment(t *testing.T) {
	t.Run("creates allocation record", func(t *testing.T) {
		ip, err := NewItemPayment(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(50))
		require.NoError(t, err)
		assert.True(t, ip.Amount.Equal(decimal.NewFromInt(50)))
		assert.False(t, ip.AppliedAt.IsZero())
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewItemPayment(uuid.New(), uuid.New(), uuid.New(), decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("rejects nil IDs", func(t *testing.T) {
		_, err := NewItemPayment(uuid.Nil, uuid.New(), uuid.New(), decimal.NewFromInt(1))
		assert.Error(t, err)

		_, err = NewItemPayment(uuid.New(), uuid.Nil, uuid.New(), decimal.NewFromInt(1))
		assert.Error(t, err)
	})
}
