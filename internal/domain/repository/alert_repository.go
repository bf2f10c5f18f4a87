package repository

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// AlertRepository persistencia de alertas.
type AlertRepository interface {
	Create(ctx context.Context, a *entity.Alert) error
	HasOpen(ctx context.Context, companyID, alertType, productID string) (bool, error)
	ListByCompany(ctx context.Context, companyID string, unreadOnly bool, limit, offset int) ([]*entity.Alert, error)
	MarkRead(ctx context.Context, companyID, id string) error
}
