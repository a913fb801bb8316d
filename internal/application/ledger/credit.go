package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/pharmacy/backend/internal/domain/procurement"
)

// ComputeCredit derives the supplier credit from trading history:
//
//	netPurchases = gross purchases - debit note returns
//	cashIn       = cash, bank transfer and check payments
//	consumed     = credit applications + cash refunds already drawn
//	credit       = max(0, cashIn - consumed - netPurchases)
//
// Credit accrues when cash settlements outrun net purchases, typically
// after a return against an already-paid invoice or a plain overpayment.
// Credit applications and cash refunds draw the pool back down. Credit
// adjustments are excluded entirely; their stored amount is zero and the
// pool they settle against was already reduced by the originating return.
func ComputeCredit(supplies []procurement.Supply, payments []procurement.Payment) decimal.Decimal {
	gross := decimal.Zero
	for i := range supplies {
		gross = gross.Add(supplies[i].TotalCost())
	}

	returns := decimal.Zero
	cashIn := decimal.Zero
	consumed := decimal.Zero
	for i := range payments {
		switch {
		case payments[i].Method.IsReturn():
			returns = returns.Add(payments[i].Amount)
		case payments[i].Method.IsCashDisbursement():
			cashIn = cashIn.Add(payments[i].Amount)
		case payments[i].Method.ConsumesCredit():
			consumed = consumed.Add(payments[i].Amount)
		}
	}

	credit := cashIn.Sub(consumed).Sub(gross.Sub(returns))
	if credit.IsPositive() {
		return credit
	}
	return decimal.Zero
}
