package repository

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// ProductionOrderRepository persistencia de órdenes de producción.
type ProductionOrderRepository interface {
	Create(ctx context.Context, order *entity.ProductionOrder) error
	GetByID(ctx context.Context, id string) (*entity.ProductionOrder, error)
	// UpdateStatus cambia el estado solo si el actual es from; si no, domain.ErrConflict.
	UpdateStatus(ctx context.Context, order *entity.ProductionOrder, from string) error
	ListByCompany(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.ProductionOrder, error)
	CountByStatus(ctx context.Context, companyID, status string) (int, error)
}
