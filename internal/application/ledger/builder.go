package ledger

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/pharmacy/backend/internal/domain/procurement"
)

// BuildLedger turns a supplier's supplies and payments into a chronological
// ledger with a running balance. Entries come back ascending by date with
// the balance attached after each entry; the final entry's balance equals
// the supplier's total payable when the books are consistent. Callers that
// want newest-first display should use ReverseEntries, never re-sort.
func BuildLedger(supplies []procurement.Supply, payments []procurement.Payment) []Entry {
	entries := make([]Entry, 0, len(supplies)+len(payments))

	for i := range supplies {
		entries = append(entries, supplyEntry(&supplies[i]))
	}
	for i := range payments {
		entries = append(entries, paymentEntry(&payments[i]))
	}

	// Stable keeps the natural input order on same-day entries
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	balance := decimal.Zero
	for i := range entries {
		if entries[i].IsCredit {
			balance = balance.Add(entries[i].Amount)
		} else {
			balance = balance.Sub(entries[i].Amount)
		}
		entries[i].RunningBalance = balance
	}

	return entries
}

func supplyEntry(s *procurement.Supply) Entry {
	var status EntryStatus
	switch s.PaymentStatus {
	case procurement.PaymentStatusPaid:
		status = EntryStatusSettled
	case procurement.PaymentStatusPartial:
		status = EntryStatusPartial
	default:
		status = EntryStatusPosted
	}

	description := s.MedicineName
	if s.PurchaseInvoiceNumber != "" {
		description = fmt.Sprintf("%s (invoice %s)", s.MedicineName, s.PurchaseInvoiceNumber)
	}

	return Entry{
		RefID:          s.ID,
		Type:           EntryTypePurchase,
		Description:    description,
		Date:           s.AddedDate,
		IsCredit:       true,
		Amount:         s.TotalCost(),
		Status:         status,
		PaidAmount:     s.PaidAmount,
		DueAmount:      s.DueAmount(),
		InvoiceDueDate: s.InvoiceDueDate,
	}
}

// paymentEntry maps a payment to its ledger row. Cash refunds post on the
// credit side: the refund raises what the pharmacy owes going forward, and
// posting it as a debit would break the running-balance reconciliation
// against the supplier's total payable.
func paymentEntry(p *procurement.Payment) Entry {
	entryType := EntryTypePayment
	isCredit := false
	switch {
	case p.Method.IsReturn():
		entryType = EntryTypeDebitNote
	case p.Method == procurement.MethodCashRefund:
		entryType = EntryTypeCashRefund
		isCredit = true
	}

	description := string(p.Method)
	if p.Notes != "" {
		description = fmt.Sprintf("%s: %s", p.Method, p.Notes)
	}

	return Entry{
		RefID:       p.ID,
		Type:        entryType,
		Description: description,
		Date:        p.PaymentDate,
		IsCredit:    isCredit,
		Amount:      p.Amount,
	}
}

// ReverseEntries returns a newest-first copy for display. Balances stay as
// computed in ascending order.
func ReverseEntries(entries []Entry) []Entry {
	reversed := make([]Entry, len(entries))
	for i, e := range entries {
		reversed[len(entries)-1-i] = e
	}
	return reversed
}
