package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/pharmacy/backend/internal/application/settlement"
)

// GormTransactionScope implements TransactionScope using GORM
// transactions. Every repository handed to the unit of work is bound to
// the same database transaction.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside a database transaction. An error from fn rolls
// everything back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(ctx context.Context, repos settlement.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := settlement.TransactionalRepositories{
			Suppliers:    NewGormSupplierRepository(tx),
			Supplies:     NewGormSupplyRepository(tx),
			Payments:     NewGormPaymentRepository(tx),
			ItemPayments: NewGormItemPaymentRepository(tx),
			StockItems:   NewGormStockItemRepository(tx),
		}
		return fn(ctx, repos)
	})
}

var _ settlement.TransactionScope = (*GormTransactionScope)(nil)
