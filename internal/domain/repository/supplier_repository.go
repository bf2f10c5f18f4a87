package repository

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// SupplierRepository persistencia de proveedores.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	Update(ctx context.Context, s *entity.Supplier) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error)
	Delete(ctx context.Context, id string) error
}
