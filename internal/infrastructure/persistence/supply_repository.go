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

// GormSupplyRepository implements SupplyRepository using GORM
type GormSupplyRepository struct {
	db *gorm.DB
}

// NewGormSupplyRepository creates a new GormSupplyRepository
func NewGormSupplyRepository(db *gorm.DB) *GormSupplyRepository {
	return &GormSupplyRepository{db: db}
}

// FindByID finds a supply by its ID
func (r *GormSupplyRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.Supply, error) {
	var supply procurement.Supply
	if err := r.db.WithContext(ctx).First(&supply, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: supply %s", shared.ErrNotFound, id)
		}
		return nil, err
	}
	return &supply, nil
}

// FindAll finds all supplies matching the filter
func (r *GormSupplyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.Supply, error) {
	var supplies []procurement.Supply
	query := r.applyFilter(r.db.WithContext(ctx).Model(&procurement.Supply{}), filter)
	if err := query.Find(&supplies).Error; err != nil {
		return nil, err
	}
	return supplies, nil
}

// FindBySupplier returns a supplier's supplies in chronological order
func (r *GormSupplyRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]procurement.Supply, error) {
	var supplies []procurement.Supply
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("added_date ASC, created_at ASC").
		Find(&supplies).Error; err != nil {
		return nil, err
	}
	return supplies, nil
}

// FindUnsettledBySupplier returns supplies that still carry a due
// amount, oldest first, for credit distribution
func (r *GormSupplyRepository) FindUnsettledBySupplier(ctx context.Context, supplierID uuid.UUID) ([]procurement.Supply, error) {
	var supplies []procurement.Supply
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND payment_status <> ?", supplierID, procurement.PaymentStatusPaid).
		Order("added_date ASC, created_at ASC").
		Find(&supplies).Error; err != nil {
		return nil, err
	}
	return supplies, nil
}

// FindByIDs loads multiple supplies in one query
func (r *GormSupplyRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]procurement.Supply, error) {
	if len(ids) == 0 {
		return []procurement.Supply{}, nil
	}
	var supplies []procurement.Supply
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&supplies).Error; err != nil {
		return nil, err
	}
	return supplies, nil
}

// Save creates or updates a supply
func (r *GormSupplyRepository) Save(ctx context.Context, supply *procurement.Supply) error {
	return r.db.WithContext(ctx).Save(supply).Error
}

// Delete removes a supply by ID
func (r *GormSupplyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&procurement.Supply{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: supply %s", shared.ErrNotFound, id)
	}
	return nil
}

// DeleteBySupplier removes all supplies of a supplier
func (r *GormSupplyRepository) DeleteBySupplier(ctx context.Context, supplierID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&procurement.Supply{}, "supplier_id = ?", supplierID).Error
}

// Count counts supplies matching the filter
func (r *GormSupplyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&procurement.Supply{})
	if filter.Search != "" {
		query = query.Where("medicine_name ILIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormSupplyRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("medicine_name ILIKE ?", "%"+filter.Search+"%")
	}

	orderBy := validateSortField(filter.OrderBy, supplySortFields, "added_date")
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

var _ procurement.SupplyRepository = (*GormSupplyRepository)(nil)
