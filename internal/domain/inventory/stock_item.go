package inventory

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/pharmacy/backend/internal/domain/shared"
)

// StockItem is the aggregate root for an inventory position. Quantities are
// whole units; the pharmacy does not track fractional stock.
type StockItem struct {
	shared.BaseAggregateRoot
	Name     string `gorm:"not null;size:255" json:"name"`
	NameKey  string `gorm:"not null;size:255;uniqueIndex" json:"-"`
	Unit     string `gorm:"size:50" json:"unit"`
	Quantity int64  `gorm:"not null;default:0" json:"quantity"`
}

// TableName returns the database table name
func (StockItem) TableName() string {
	return "stock_items"
}

// NameKeyOf normalizes a stock item name for lookup, same folding rules
// as supplier names
func NameKeyOf(name string) string {
	normalized := strings.Join(strings.Fields(name), " ")
	return cases.Fold().String(normalized)
}

// NewStockItem creates a new stock item
func NewStockItem(name, unit string, quantity int64) (*StockItem, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "stock item name cannot be empty")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "stock quantity cannot be negative")
	}

	return &StockItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              trimmed,
		NameKey:           NameKeyOf(name),
		Unit:              strings.TrimSpace(unit),
		Quantity:          quantity,
	}, nil
}

// Increase adds quantity to the stock position
func (s *StockItem) Increase(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "increase quantity must be positive")
	}
	s.Quantity += quantity
	s.MarkUpdated()
	return nil
}

// Decrease removes quantity from the stock position.
// Returns ErrInsufficientStock if the position would go negative.
func (s *StockItem) Decrease(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "decrease quantity must be positive")
	}
	if s.Quantity < quantity {
		return fmt.Errorf("%w: item %q has %d, requested %d", shared.ErrInsufficientStock, s.Name, s.Quantity, quantity)
	}
	s.Quantity -= quantity
	s.MarkUpdated()
	return nil
}

var _ shared.AggregateRoot = (*StockItem)(nil)
