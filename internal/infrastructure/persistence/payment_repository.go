package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pharmacy/backend/internal/domain/procurement"
	"github.com/pharmacy/backend/internal/domain/shared"
)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.Payment, error) {
	var payment procurement.Payment
	if err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: payment %s", shared.ErrNotFound, id)
		}
		return nil, err
	}
	return &payment, nil
}

// FindAll finds all payments matching the filter
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.Payment, error) {
	var payments []procurement.Payment
	query := r.applyFilter(r.db.WithContext(ctx).Model(&procurement.Payment{}), filter)
	if err := query.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// FindBySupplier returns a supplier's payments in chronological order
func (r *GormPaymentRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]procurement.Payment, error) {
	var payments []procurement.Payment
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("payment_date ASC, created_at ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// Save creates or updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, payment *procurement.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

// Delete removes a payment by ID
func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&procurement.Payment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: payment %s", shared.ErrNotFound, id)
	}
	return nil
}

// DeleteBySupplier removes all payments of a supplier
func (r *GormPaymentRepository) DeleteBySupplier(ctx context.Context, supplierID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&procurement.Payment{}, "supplier_id = ?", supplierID).Error
}

// Count counts payments matching the filter
func (r *GormPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&procurement.Payment{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPaymentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	orderBy := validateSortField(filter.OrderBy, paymentSortFields, "payment_date")
	query = query.Order(orderBy + " " + validateSortOrder(filter.OrderDir))

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

var _ procurement.PaymentRepository = (*GormPaymentRepository)(nil)
