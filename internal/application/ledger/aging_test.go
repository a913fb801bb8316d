package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmacy/backend/internal/domain/procurement"
)

func agingSupply(t *testing.T, qty, unitCost int64, added time.Time, due *time.Time) procurement.Supply {
	t.Helper()
	s, err := procurement.NewSupply(uuid.New(), "Acme", "Medicine", qty, decimal.NewFromInt(unitCost), added)
	require.NoError(t, err)
	s.WithInvoice("INV", due)
	return *s
}

func TestEstimateAging(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -5)
	soon := now.AddDate(0, 0, 10)
	far := now.AddDate(0, 0, 40)

	t.Run("zero or negative balance has no aging", func(t *testing.T) {
		supplies := []procurement.Supply{
			agingSupply(t, 10, 100, now.AddDate(0, 0, -1), &past),
		}

		for _, balance := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-500)} {
			aging := EstimateAging(supplies, balance, now)
			assert.True(t, aging.OverdueAmount.IsZero())
			assert.True(t, aging.DueIn15Days.IsZero())
		}
	})

	t.Run("attributes balance to newest invoices first", func(t *testing.T) {
		oldest := agingSupply(t, 10, 100, now.AddDate(0, 0, -30), &past) // 1000, overdue
		newest := agingSupply(t, 10, 50, now.AddDate(0, 0, -2), &soon)   // 500, due soon

		// balance 600: 500 lands on the newest invoice, 100 spills to the oldest
		aging := EstimateAging([]procurement.Supply{oldest, newest}, decimal.NewFromInt(600), now)

		assert.True(t, aging.DueIn15Days.Equal(decimal.NewFromInt(500)))
		assert.True(t, aging.OverdueAmount.Equal(decimal.NewFromInt(100)))
	})

	t.Run("stops once the balance is exhausted", func(t *testing.T) {
		oldest := agingSupply(t, 10, 100, now.AddDate(0, 0, -30), &past)
		newest := agingSupply(t, 10, 100, now.AddDate(0, 0, -1), &soon)

		aging := EstimateAging([]procurement.Supply{oldest, newest}, decimal.NewFromInt(800), now)

		// all 800 fits on the newest invoice, nothing reaches the overdue one
		assert.True(t, aging.DueIn15Days.Equal(decimal.NewFromInt(800)))
		assert.True(t, aging.OverdueAmount.IsZero())
	})

	t.Run("supplies without due date absorb balance silently", func(t *testing.T) {
		noDue := agingSupply(t, 10, 100, now.AddDate(0, 0, -1), nil)
		overdue := agingSupply(t, 10, 100, now.AddDate(0, 0, -30), &past)

		aging := EstimateAging([]procurement.Supply{overdue, noDue}, decimal.NewFromInt(1000), now)

		// the newest invoice has no due date, so its share lands in no bucket
		assert.True(t, aging.OverdueAmount.IsZero())
		assert.True(t, aging.DueIn15Days.IsZero())
	})

	t.Run("due dates beyond the window land in no bucket", func(t *testing.T) {
		future := agingSupply(t, 10, 100, now.AddDate(0, 0, -1), &far)

		aging := EstimateAging([]procurement.Supply{future}, decimal.NewFromInt(500), now)

		assert.True(t, aging.OverdueAmount.IsZero())
		assert.True(t, aging.DueIn15Days.IsZero())
	})

	t.Run("buckets never exceed the positive balance", func(t *testing.T) {
		supplies := []procurement.Supply{
			agingSupply(t, 10, 100, now.AddDate(0, 0, -30), &past),
			agingSupply(t, 10, 100, now.AddDate(0, 0, -2), &soon),
			agingSupply(t, 10, 100, now.AddDate(0, 0, -1), &past),
		}

		for _, balance := range []int64{100, 1500, 5000} {
			b := decimal.NewFromInt(balance)
			aging := EstimateAging(supplies, b, now)
			total := aging.OverdueAmount.Add(aging.DueIn15Days)
			assert.True(t, total.LessThanOrEqual(b), "balance %d", balance)
		}
	})
}
