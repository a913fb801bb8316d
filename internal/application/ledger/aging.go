package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pharmacy/backend/internal/domain/procurement"
)

// DueSoonWindow is how far ahead the aging estimator looks for upcoming
// invoice due dates.
const DueSoonWindow = 15 * 24 * time.Hour

// EstimateAging splits an outstanding balance into overdue and due-soon
// buckets by simulating FIFO settlement: the oldest invoices are assumed
// paid first, so whatever balance remains is attributed to the newest
// invoices. Because payments are applied generically rather than matched
// to specific invoices, the result is a best-effort estimate, not a ledger
// of record.
func EstimateAging(supplies []procurement.Supply, balance decimal.Decimal, now time.Time) Aging {
	aging := Aging{
		OverdueAmount: decimal.Zero,
		DueIn15Days:   decimal.Zero,
	}
	if !balance.IsPositive() {
		return aging
	}

	sorted := make([]procurement.Supply, len(supplies))
	copy(sorted, supplies)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AddedDate.After(sorted[j].AddedDate)
	})

	horizon := now.Add(DueSoonWindow)
	remaining := balance
	for i := range sorted {
		attributed := sorted[i].TotalCost()
		if attributed.GreaterThan(remaining) {
			attributed = remaining
		}
		if attributed.IsPositive() && sorted[i].InvoiceDueDate != nil {
			due := *sorted[i].InvoiceDueDate
			if due.Before(now) {
				aging.OverdueAmount = aging.OverdueAmount.Add(attributed)
			} else if !due.After(horizon) {
				aging.DueIn15Days = aging.DueIn15Days.Add(attributed)
			}
		}
		remaining = remaining.Sub(attributed)
		if !remaining.IsPositive() {
			break
		}
	}

	return aging
}
