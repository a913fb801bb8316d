package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryType labels what kind of record produced a ledger entry
type EntryType string

const (
	EntryTypePurchase   EntryType = "Purchase"
	EntryTypePayment    EntryType = "Payment"
	EntryTypeDebitNote  EntryType = "Debit Note"
	EntryTypeCashRefund EntryType = "Cash Refund"
)

// EntryStatus reflects the settlement state of a purchase entry
type EntryStatus string

const (
	EntryStatusPosted  EntryStatus = "Posted"
	EntryStatusPartial EntryStatus = "Partial"
	EntryStatusSettled EntryStatus = "Settled"
)

// Entry is one row of a supplier's ledger. Credit entries increase the
// payable balance, debit entries decrease it.
type Entry struct {
	RefID          uuid.UUID       `json:"ref_id"`
	Type           EntryType       `json:"type"`
	Description    string          `json:"description"`
	Date           time.Time       `json:"date"`
	IsCredit       bool            `json:"is_credit"`
	Amount         decimal.Decimal `json:"amount"`
	RunningBalance decimal.Decimal `json:"running_balance"`

	// Purchase entries only
	Status         EntryStatus     `json:"status,omitempty"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	DueAmount      decimal.Decimal `json:"due_amount"`
	InvoiceDueDate *time.Time      `json:"invoice_due_date,omitempty"`
}

// Aging is the estimated split of an outstanding balance by urgency
type Aging struct {
	OverdueAmount decimal.Decimal `json:"overdue_amount"`
	DueIn15Days   decimal.Decimal `json:"due_in_15_days"`
}

// Stats summarizes a supplier's trading history
type Stats struct {
	TotalPurchased decimal.Decimal `json:"total_purchased"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	CashPayments   decimal.Decimal `json:"cash_payments"`
	TotalReturns   decimal.Decimal `json:"total_returns"`
	Balance        decimal.Decimal `json:"balance"`
	SupplierCredit decimal.Decimal `json:"supplier_credit"`
	TotalSKUs      int             `json:"total_skus"`
	TotalQuantity  int64           `json:"total_quantity"`
	OverdueAmount  decimal.Decimal `json:"overdue_amount"`
	DueIn15Days    decimal.Decimal `json:"due_in_15_days"`
}

// TopProduct is one line of the most-purchased product ranking
type TopProduct struct {
	Name          string          `json:"name"`
	TotalQty      int64           `json:"total_qty"`
	PurchaseCount int             `json:"purchase_count"`
	LastPrice     decimal.Decimal `json:"last_price"`
}

// SupplierStatement is the full financial view of one supplier
type SupplierStatement struct {
	SupplierID   uuid.UUID       `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	TotalPayable decimal.Decimal `json:"total_payable"`
	Ledger       []Entry         `json:"ledger"`
	Stats        Stats           `json:"stats"`
	TopProducts  []TopProduct    `json:"top_products"`
}
