package repository

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// PurchaseOrderRepository persistencia de órdenes de compra (cabecera + líneas).
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// UpdateStatus cambia el estado solo si el actual es from; si no, domain.ErrConflict.
	UpdateStatus(ctx context.Context, po *entity.PurchaseOrder, from string) error
	ListByCompany(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.PurchaseOrder, error)
	CountByStatus(ctx context.Context, companyID, status string) (int, error)
	NextNumber(ctx context.Context, companyID string) (string, error)
}
