package partner

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/pharmacy/backend/internal/domain/shared"
)

// Supplier is the aggregate root for pharmaceutical suppliers.
// TotalPayable is a signed balance: positive means the pharmacy owes the
// supplier, negative means the supplier owes the pharmacy (a credit).
type Supplier struct {
	shared.BaseAggregateRoot
	Name          string          `gorm:"not null;size:255" json:"name"`
	NameKey       string          `gorm:"not null;size:255;uniqueIndex" json:"-"`
	ContactPerson string          `gorm:"size:255" json:"contact_person"`
	Phone         string          `gorm:"size:50" json:"phone"`
	Email         string          `gorm:"size:255" json:"email"`
	Address       string          `gorm:"size:500" json:"address"`
	TotalPayable  decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"total_payable"`
}

// TableName returns the database table name
func (Supplier) TableName() string {
	return "suppliers"
}

// NameKeyOf normalizes a supplier name for duplicate detection.
// Leading and trailing whitespace is removed, interior runs of whitespace
// collapse to a single space, and the result is Unicode case-folded so that
// "ACME Pharma" and "acme pharma" resolve to the same supplier.
func NameKeyOf(name string) string {
	normalized := strings.Join(strings.Fields(name), " ")
	return cases.Fold().String(normalized)
}

// NewSupplier creates a new supplier with a zero payable balance
func NewSupplier(name string) (*Supplier, error) {
	if err := validateSupplierName(name); err != nil {
		return nil, err
	}

	supplier := &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		NameKey:           NameKeyOf(name),
		TotalPayable:      decimal.Zero,
	}

	supplier.AddDomainEvent(NewSupplierCreatedEvent(supplier.ID, supplier.Name))
	return supplier, nil
}

func validateSupplierName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_SUPPLIER_NAME", "supplier name cannot be empty")
	}
	if len(trimmed) > 255 {
		return shared.NewDomainError("INVALID_SUPPLIER_NAME", "supplier name cannot exceed 255 characters")
	}
	return nil
}

// UpdateContact updates the supplier's contact details
func (s *Supplier) UpdateContact(contactPerson, phone, email, address string) {
	s.ContactPerson = strings.TrimSpace(contactPerson)
	s.Phone = strings.TrimSpace(phone)
	s.Email = strings.TrimSpace(email)
	s.Address = strings.TrimSpace(address)
	s.MarkUpdated()
}

// Rename changes the supplier's display name and its normalized key
func (s *Supplier) Rename(name string) error {
	if err := validateSupplierName(name); err != nil {
		return err
	}
	s.Name = strings.TrimSpace(name)
	s.NameKey = NameKeyOf(name)
	s.MarkUpdated()
	return nil
}

// IncreasePayable adds amount to the supplier's outstanding balance.
// Used when a supply is recorded or a cash refund is issued against credit.
func (s *Supplier) IncreasePayable(amount decimal.Decimal, reason string) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "payable adjustment amount cannot be negative")
	}
	if amount.IsZero() {
		return nil
	}

	s.TotalPayable = s.TotalPayable.Add(amount)
	s.MarkUpdated()
	s.AddDomainEvent(NewSupplierBalanceChangedEvent(s.ID, amount, s.TotalPayable, reason))
	return nil
}

// DecreasePayable subtracts amount from the supplier's outstanding balance.
// The balance may go negative: that represents supplier credit owed back to
// the pharmacy.
func (s *Supplier) DecreasePayable(amount decimal.Decimal, reason string) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "payable adjustment amount cannot be negative")
	}
	if amount.IsZero() {
		return nil
	}

	s.TotalPayable = s.TotalPayable.Sub(amount)
	s.MarkUpdated()
	s.AddDomainEvent(NewSupplierBalanceChangedEvent(s.ID, amount.Neg(), s.TotalPayable, reason))
	return nil
}

// AdjustPayable applies a signed delta to the balance. Used when voiding a
// supply or reversing a payment, where the sign depends on the record being
// undone.
func (s *Supplier) AdjustPayable(delta decimal.Decimal, reason string) {
	if delta.IsZero() {
		return
	}
	s.TotalPayable = s.TotalPayable.Add(delta)
	s.MarkUpdated()
	s.AddDomainEvent(NewSupplierBalanceChangedEvent(s.ID, delta, s.TotalPayable, reason))
}

// HasCredit returns true if the supplier owes the pharmacy
func (s *Supplier) HasCredit() bool {
	return s.TotalPayable.IsNegative()
}

// CreditAmount returns the credit owed to the pharmacy, zero if none
func (s *Supplier) CreditAmount() decimal.Decimal {
	if s.TotalPayable.IsNegative() {
		return s.TotalPayable.Neg()
	}
	return decimal.Zero
}

var _ shared.AggregateRoot = (*Supplier)(nil)
