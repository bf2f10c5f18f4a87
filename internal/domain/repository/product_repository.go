package repository

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error
	UpdateQuantity(ctx context.Context, productID string, quantity int) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error)
	ListByIDs(ctx context.Context, companyID string, ids []string) ([]*entity.Product, error)
	ListLowStock(ctx context.Context, companyID string) ([]*entity.Product, error)
	CountByCompany(ctx context.Context, companyID string) (int, error)
	Delete(ctx context.Context, id string) error

	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); solo tiene efecto dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
}
