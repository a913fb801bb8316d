package settlement

import (
	"context"

	"github.com/pharmacy/backend/internal/domain/inventory"
	"github.com/pharmacy/backend/internal/domain/partner"
	"github.com/pharmacy/backend/internal/domain/procurement"
)

// TransactionalRepositories bundles the repositories participating in a
// settlement transaction. Inside a scope all of them ride the same
// database transaction.
type TransactionalRepositories struct {
	Suppliers    partner.SupplierRepository
	Supplies     procurement.SupplyRepository
	Payments     procurement.PaymentRepository
	ItemPayments procurement.ItemPaymentRepository
	StockItems   inventory.StockItemRepository
}

// TransactionScope executes a unit of work atomically. A multi-record
// settlement (one payment, N allocation records, N supply updates, one
// supplier update) either lands completely or not at all; partial writes
// from a crash mid-sequence cannot leave the books inconsistent.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(ctx context.Context, repos TransactionalRepositories) error) error
}

// NoOpTransactionScope runs the unit of work without transaction
// boundaries. Used in tests and with stores that lack transactions.
type NoOpTransactionScope struct {
	Repos TransactionalRepositories
}

// Execute runs fn directly against the configured repositories
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(ctx context.Context, repos TransactionalRepositories) error) error {
	return fn(ctx, s.Repos)
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
