package procurement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pharmacy/backend/internal/application/settlement"
	"github.com/pharmacy/backend/internal/domain/inventory"
	"github.com/pharmacy/backend/internal/domain/partner"
	procurementdomain "github.com/pharmacy/backend/internal/domain/procurement"
	"github.com/pharmacy/backend/internal/domain/shared"
)

type mockSupplierRepo struct {
	mock.Mock
}

func (m *mockSupplierRepo) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *mockSupplierRepo) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *mockSupplierRepo) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *mockSupplierRepo) SaveWithLock(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *mockSupplierRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSupplierRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSupplierRepo) FindByNameKey(ctx context.Context, nameKey string) (*partner.Supplier, error) {
	args := m.Called(ctx, nameKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *mockSupplierRepo) FindWithCredit(ctx context.Context) ([]partner.Supplier, error) {
	args := m.Called(ctx)
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

type mockSupplyRepo struct {
	mock.Mock
}

func (m *mockSupplyRepo) FindByID(ctx context.Context, id uuid.UUID) (*procurementdomain.Supply, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurementdomain.Supply), args.Error(1)
}

func (m *mockSupplyRepo) FindAll(ctx context.Context, filter shared.Filter) ([]procurementdomain.Supply, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]procurementdomain.Supply), args.Error(1)
}

func (m *mockSupplyRepo) Save(ctx context.Context, supply *procurementdomain.Supply) error {
	args := m.Called(ctx, supply)
	return args.Error(0)
}

func (m *mockSupplyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSupplyRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSupplyRepo) FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]procurementdomain.Supply, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).([]procurementdomain.Supply), args.Error(1)
}

func (m *mockSupplyRepo) FindUnsettledBySupplier(ctx context.Context, supplierID uuid.UUID) ([]procurementdomain.Supply, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).([]procurementdomain.Supply), args.Error(1)
}

func (m *mockSupplyRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]procurementdomain.Supply, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]procurementdomain.Supply), args.Error(1)
}

func (m *mockSupplyRepo) DeleteBySupplier(ctx context.Context, supplierID uuid.UUID) error {
	args := m.Called(ctx, supplierID)
	return args.Error(0)
}

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*procurementdomain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurementdomain.Payment), args.Error(1)
}

func (m *mockPaymentRepo) FindAll(ctx context.Context, filter shared.Filter) ([]procurementdomain.Payment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]procurementdomain.Payment), args.Error(1)
}

func (m *mockPaymentRepo) Save(ctx context.Context, payment *procurementdomain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *mockPaymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPaymentRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPaymentRepo) FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]procurementdomain.Payment, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).([]procurementdomain.Payment), args.Error(1)
}

func (m *mockPaymentRepo) DeleteBySupplier(ctx context.Context, supplierID uuid.UUID) error {
	args := m.Called(ctx, supplierID)
	return args.Error(0)
}

type mockItemPaymentRepo struct {
	mock.Mock
}

func (m *mockItemPaymentRepo) Save(ctx context.Context, itemPayment *procurementdomain.ItemPayment) error {
	args := m.Called(ctx, itemPayment)
	return args.Error(0)
}

func (m *mockItemPaymentRepo) FindBySupply(ctx context.Context, supplyID uuid.UUID) ([]procurementdomain.ItemPayment, error) {
	args := m.Called(ctx, supplyID)
	return args.Get(0).([]procurementdomain.ItemPayment), args.Error(1)
}

func (m *mockItemPaymentRepo) FindByPayment(ctx context.Context, paymentID uuid.UUID) ([]procurementdomain.ItemPayment, error) {
	args := m.Called(ctx, paymentID)
	return args.Get(0).([]procurementdomain.ItemPayment), args.Error(1)
}

func (m *mockItemPaymentRepo) CountBySupply(ctx context.Context, supplyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, supplyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockItemPaymentRepo) DeleteBySupplier(ctx context.Context, supplierID uuid.UUID) error {
	args := m.Called(ctx, supplierID)
	return args.Error(0)
}

type mockStockItemRepo struct {
	mock.Mock
}

func (m *mockStockItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *mockStockItemRepo) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockItem, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.StockItem), args.Error(1)
}

func (m *mockStockItemRepo) Save(ctx context.Context, item *inventory.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockStockItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockStockItemRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStockItemRepo) FindByNameKey(ctx context.Context, nameKey string) (*inventory.StockItem, error) {
	args := m.Called(ctx, nameKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

type mockIdempotencyStore struct {
	mock.Mock
}

func (m *mockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *mockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockIdempotencyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// testRepos bundles fresh mocks behind a no-op scope for service tests
type testRepos struct {
	suppliers    *mockSupplierRepo
	supplies     *mockSupplyRepo
	payments     *mockPaymentRepo
	itemPayments *mockItemPaymentRepo
	stockItems   *mockStockItemRepo
	scope        *settlement.NoOpTransactionScope
}

func newTestRepos() *testRepos {
	r := &testRepos{
		suppliers:    new(mockSupplierRepo),
		supplies:     new(mockSupplyRepo),
		payments:     new(mockPaymentRepo),
		itemPayments: new(mockItemPaymentRepo),
		stockItems:   new(mockStockItemRepo),
	}
	r.scope = &settlement.NoOpTransactionScope{Repos: settlement.TransactionalRepositories{
		Suppliers:    r.suppliers,
		Supplies:     r.supplies,
		Payments:     r.payments,
		ItemPayments: r.itemPayments,
		StockItems:   r.stockItems,
	}}
	return r
}
