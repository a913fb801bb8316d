package procurement

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pharmacy/backend/internal/application/settlement"
	"github.com/pharmacy/backend/internal/domain/partner"
	"github.com/pharmacy/backend/internal/domain/shared"
)

// SupplierInput carries the writable supplier attributes
type SupplierInput struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
}

// SupplierService handles supplier registration and lifecycle
type SupplierService struct {
	suppliers partner.SupplierRepository
	scope     settlement.TransactionScope
	logger    *zap.Logger
}

// NewSupplierService creates a new supplier service
func NewSupplierService(suppliers partner.SupplierRepository, scope settlement.TransactionScope, logger *zap.Logger) *SupplierService {
	return &SupplierService{suppliers: suppliers, scope: scope, logger: logger}
}

// CreateSupplier registers a new supplier. Names are unique under
// case folding: "ACME Pharma" and "acme pharma" are the same supplier.
func (s *SupplierService) CreateSupplier(ctx context.Context, input SupplierInput) (*partner.Supplier, error) {
	existing, err := s.suppliers.FindByNameKey(ctx, partner.NameKeyOf(input.Name))
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("lookup supplier: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: supplier %q", shared.ErrAlreadyExists, existing.Name)
	}

	supplier, err := partner.NewSupplier(input.Name)
	if err != nil {
		return nil, err
	}
	supplier.UpdateContact(input.ContactPerson, input.Phone, input.Email, input.Address)

	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, fmt.Errorf("save supplier: %w", err)
	}

	s.logger.Info("supplier created",
		zap.String("supplier_id", supplier.ID.String()),
		zap.String("name", supplier.Name))
	return supplier, nil
}

// UpdateSupplier changes a supplier's name and contact details
func (s *SupplierService) UpdateSupplier(ctx context.Context, id uuid.UUID, input SupplierInput) (*partner.Supplier, error) {
	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load supplier: %w", err)
	}

	if input.Name != supplier.Name {
		existing, err := s.suppliers.FindByNameKey(ctx, partner.NameKeyOf(input.Name))
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("lookup supplier: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, fmt.Errorf("%w: supplier %q", shared.ErrAlreadyExists, existing.Name)
		}
		if err := supplier.Rename(input.Name); err != nil {
			return nil, err
		}
	}
	supplier.UpdateContact(input.ContactPerson, input.Phone, input.Email, input.Address)

	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, fmt.Errorf("save supplier: %w", err)
	}
	return supplier, nil
}

// GetSupplier loads one supplier
func (s *SupplierService) GetSupplier(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	return s.suppliers.FindByID(ctx, id)
}

// ListSuppliers returns a paginated supplier listing
func (s *SupplierService) ListSuppliers(ctx context.Context, filter shared.Filter) (shared.Paginated[partner.Supplier], error) {
	suppliers, err := s.suppliers.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[partner.Supplier]{}, fmt.Errorf("list suppliers: %w", err)
	}
	total, err := s.suppliers.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[partner.Supplier]{}, fmt.Errorf("count suppliers: %w", err)
	}
	return shared.NewPaginated(suppliers, total, filter.Page, filter.PageSize), nil
}

// DeleteSupplier removes a supplier and all of its records. Supplies,
// payments and allocation records go with it; a supplier is never
// half-deleted with orphaned financial history left behind.
func (s *SupplierService) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	err := s.scope.Execute(ctx, func(ctx context.Context, repos settlement.TransactionalRepositories) error {
		supplier, err := repos.Suppliers.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("load supplier: %w", err)
		}

		if err := repos.ItemPayments.DeleteBySupplier(ctx, id); err != nil {
			return fmt.Errorf("delete item payments: %w", err)
		}
		if err := repos.Payments.DeleteBySupplier(ctx, id); err != nil {
			return fmt.Errorf("delete payments: %w", err)
		}
		if err := repos.Supplies.DeleteBySupplier(ctx, id); err != nil {
			return fmt.Errorf("delete supplies: %w", err)
		}
		if err := repos.Suppliers.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete supplier: %w", err)
		}

		s.logger.Info("supplier deleted with cascade",
			zap.String("supplier_id", id.String()),
			zap.String("name", supplier.Name))
		return nil
	})
	return err
}
