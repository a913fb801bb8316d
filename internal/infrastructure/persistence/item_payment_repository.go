package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pharmacy/backend/internal/domain/procurement"
)

// GormItemPaymentRepository implements ItemPaymentRepository using GORM
type GormItemPaymentRepository struct {
	db *gorm.DB
}

// NewGormItemPaymentRepository creates a new GormItemPaymentRepository
func NewGormItemPaymentRepository(db *gorm.DB) *GormItemPaymentRepository {
	return &GormItemPaymentRepository{db: db}
}

// Save persists an allocation record. Allocations are immutable, so
// this is always an insert.
func (r *GormItemPaymentRepository) Save(ctx context.Context, itemPayment *procurement.ItemPayment) error {
	return r.db.WithContext(ctx).Create(itemPayment).Error
}

// FindBySupply returns all allocations against one supply line
func (r *GormItemPaymentRepository) FindBySupply(ctx context.Context, supplyID uuid.UUID) ([]procurement.ItemPayment, error) {
	var allocations []procurement.ItemPayment
	if err := r.db.WithContext(ctx).
		Where("supply_id = ?", supplyID).
		Order("applied_at ASC").
		Find(&allocations).Error; err != nil {
		return nil, err
	}
	return allocations, nil
}

// FindByPayment returns all allocations made by one payment
func (r *GormItemPaymentRepository) FindByPayment(ctx context.Context, paymentID uuid.UUID) ([]procurement.ItemPayment, error) {
	var allocations []procurement.ItemPayment
	if err := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		Order("applied_at ASC").
		Find(&allocations).Error; err != nil {
		return nil, err
	}
	return allocations, nil
}

// CountBySupply counts allocations against one supply line
func (r *GormItemPaymentRepository) CountBySupply(ctx context.Context, supplyID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&procurement.ItemPayment{}).
		Where("supply_id = ?", supplyID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteBySupplier removes all allocation records of a supplier
func (r *GormItemPaymentRepository) DeleteBySupplier(ctx context.Context, supplierID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&procurement.ItemPayment{}, "supplier_id = ?", supplierID).Error
}

var _ procurement.ItemPaymentRepository = (*GormItemPaymentRepository)(nil)
