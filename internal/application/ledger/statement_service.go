package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmacy/backend/internal/domain/inventory"
	"github.com/pharmacy/backend/internal/domain/partner"
	"github.com/pharmacy/backend/internal/domain/procurement"
)

// TopProductLimit caps how many products the statement ranking returns
const TopProductLimit = 5

// StatementService assembles the full financial view of a supplier: the
// chronological ledger, aggregate statistics, aging estimate and the
// most-purchased products. All reads, no mutation.
type StatementService struct {
	suppliers partner.SupplierRepository
	supplies  procurement.SupplyRepository
	payments  procurement.PaymentRepository
}

// NewStatementService creates a new statement service
func NewStatementService(
	suppliers partner.SupplierRepository,
	supplies procurement.SupplyRepository,
	payments procurement.PaymentRepository,
) *StatementService {
	return &StatementService{
		suppliers: suppliers,
		supplies:  supplies,
		payments:  payments,
	}
}

// GetStatement builds the supplier statement. The ledger comes back
// newest-first for display; balances were computed in ascending order.
func (s *StatementService) GetStatement(ctx context.Context, supplierID uuid.UUID) (*SupplierStatement, error) {
	supplier, err := s.suppliers.FindByID(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("load supplier: %w", err)
	}

	supplies, err := s.supplies.FindBySupplier(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("load supplies: %w", err)
	}

	payments, err := s.payments.FindBySupplier(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}

	entries := BuildLedger(supplies, payments)
	stats := buildStats(supplier, supplies, payments, time.Now())

	return &SupplierStatement{
		SupplierID:   supplier.ID,
		SupplierName: supplier.Name,
		TotalPayable: supplier.TotalPayable,
		Ledger:       ReverseEntries(entries),
		Stats:        stats,
		TopProducts:  buildTopProducts(supplies),
	}, nil
}

func buildStats(supplier *partner.Supplier, supplies []procurement.Supply, payments []procurement.Payment, now time.Time) Stats {
	stats := Stats{
		TotalPurchased: decimal.Zero,
		TotalPaid:      decimal.Zero,
		CashPayments:   decimal.Zero,
		TotalReturns:   decimal.Zero,
		Balance:        supplier.TotalPayable,
		SupplierCredit: ComputeCredit(supplies, payments),
	}

	skus := make(map[string]struct{})
	for i := range supplies {
		stats.TotalPurchased = stats.TotalPurchased.Add(supplies[i].TotalCost())
		stats.TotalQuantity += supplies[i].Quantity
		skus[inventory.NameKeyOf(supplies[i].MedicineName)] = struct{}{}
	}
	stats.TotalSKUs = len(skus)

	for i := range payments {
		method := payments[i].Method
		switch {
		case method.IsReturn():
			stats.TotalReturns = stats.TotalReturns.Add(payments[i].Amount)
		case method == procurement.MethodCreditAdjustment, method == procurement.MethodCashRefund:
			// adjustments carry no settled amount, refunds raise the balance
		default:
			stats.TotalPaid = stats.TotalPaid.Add(payments[i].Amount)
		}
		if method.IsCashDisbursement() {
			stats.CashPayments = stats.CashPayments.Add(payments[i].Amount)
		}
	}

	aging := EstimateAging(supplies, supplier.TotalPayable, now)
	stats.OverdueAmount = aging.OverdueAmount
	stats.DueIn15Days = aging.DueIn15Days
	return stats
}

func buildTopProducts(supplies []procurement.Supply) []TopProduct {
	type bucket struct {
		product  TopProduct
		lastDate time.Time
	}

	buckets := make(map[string]*bucket)
	order := make([]string, 0)
	for i := range supplies {
		key := inventory.NameKeyOf(supplies[i].MedicineName)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{product: TopProduct{Name: supplies[i].MedicineName}}
			buckets[key] = b
			order = append(order, key)
		}
		b.product.TotalQty += supplies[i].Quantity
		b.product.PurchaseCount++
		if !supplies[i].AddedDate.Before(b.lastDate) {
			b.lastDate = supplies[i].AddedDate
			b.product.LastPrice = supplies[i].PurchaseCost
		}
	}

	products := make([]TopProduct, 0, len(buckets))
	for _, key := range order {
		products = append(products, buckets[key].product)
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].TotalQty > products[j].TotalQty
	})

	if len(products) > TopProductLimit {
		products = products[:TopProductLimit]
	}
	return products
}
