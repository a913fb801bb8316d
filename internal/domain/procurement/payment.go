package procurement

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmacy/backend/internal/domain/shared"
)

// PaymentMethod identifies how a payment record settles supplier debt.
// Each method carries a distinct balance effect, see PayableDelta.
type PaymentMethod string

const (
	// MethodCash is a cash disbursement to the supplier
	MethodCash PaymentMethod = "cash"
	// MethodBankTransfer is an electronic transfer to the supplier
	MethodBankTransfer PaymentMethod = "bank_transfer"
	// MethodCheck is a check issued to the supplier
	MethodCheck PaymentMethod = "check"
	// MethodDebitNote records value returned to the supplier as goods
	MethodDebitNote PaymentMethod = "debit_note"
	// MethodCreditAdjustment is a bookkeeping marker with no balance effect
	MethodCreditAdjustment PaymentMethod = "credit_adjustment"
	// MethodCreditApplication consumes accumulated supplier credit to
	// settle outstanding supplies
	MethodCreditApplication PaymentMethod = "credit_application"
	// MethodCashRefund records cash received back from the supplier,
	// which increases what the pharmacy owes going forward
	MethodCashRefund PaymentMethod = "cash_refund"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCheck, MethodDebitNote,
		MethodCreditAdjustment, MethodCreditApplication, MethodCashRefund:
		return true
	}
	return false
}

// IsCashDisbursement reports whether the method represents actual money
// leaving the pharmacy. Credit applications and refunds settle supplies
// but move no new cash out.
func (m PaymentMethod) IsCashDisbursement() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCheck:
		return true
	}
	return false
}

// ConsumesCredit reports whether the method draws down accumulated
// supplier credit. Applying credit to invoices and refunding credit in
// cash both reduce what the supplier owes back.
func (m PaymentMethod) ConsumesCredit() bool {
	switch m {
	case MethodCreditApplication, MethodCashRefund:
		return true
	}
	return false
}

// IsReturn reports whether the method records a purchase return
func (m PaymentMethod) IsReturn() bool {
	return m == MethodDebitNote
}

// PayableDelta returns the signed change the payment applies to the
// supplier's total payable balance:
//
//	cash, bank transfer, check   -amount (debt settled with money)
//	debit note                   -amount (debt settled with returned goods)
//	credit adjustment            0       (marker only, amount stored as 0)
//	credit application           -amount (debt settled with supplier credit)
//	cash refund                  +amount (supplier pays credit out in cash)
func (m PaymentMethod) PayableDelta(amount decimal.Decimal) decimal.Decimal {
	switch m {
	case MethodCreditAdjustment:
		return decimal.Zero
	case MethodCashRefund:
		return amount
	default:
		return amount.Neg()
	}
}

// Payment is the aggregate root for a payment record against a supplier.
// Records are append-only: corrections are made with adjusting records,
// never by editing a stored payment.
type Payment struct {
	shared.BaseAggregateRoot
	SupplierID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Amount         decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Method         PaymentMethod   `gorm:"not null;size:30" json:"method"`
	PaymentDate    time.Time       `gorm:"not null;index" json:"payment_date"`
	Notes          string          `gorm:"size:500" json:"notes"`
	IdempotencyKey string          `gorm:"size:100;index" json:"idempotency_key,omitempty"`
}

// TableName returns the database table name
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a new payment record. Credit adjustments always store
// a zero amount regardless of the requested value, so replaying historic
// records cannot drift the balance.
func NewPayment(supplierID uuid.UUID, amount decimal.Decimal, method PaymentMethod, paymentDate time.Time, notes string) (*Payment, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "supplier ID is required")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "unknown payment method: "+string(method))
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "payment amount cannot be negative")
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	storedAmount := amount
	if method == MethodCreditAdjustment {
		storedAmount = decimal.Zero
	}

	payment := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SupplierID:        supplierID,
		Amount:            storedAmount,
		Method:            method,
		PaymentDate:       paymentDate,
		Notes:             strings.TrimSpace(notes),
	}

	payment.AddDomainEvent(NewPaymentRecordedEvent(payment.ID, supplierID, storedAmount, method))
	return payment, nil
}

// PayableDelta returns the signed balance change this payment applies
func (p *Payment) PayableDelta() decimal.Decimal {
	return p.Method.PayableDelta(p.Amount)
}

var _ shared.AggregateRoot = (*Payment)(nil)
