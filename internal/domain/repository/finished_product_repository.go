package repository

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// FinishedProductRepository persistencia de productos terminados y sus líneas BOM.
// GetByID carga las líneas ordenadas por posición.
type FinishedProductRepository interface {
	Create(ctx context.Context, fp *entity.FinishedProduct) error
	GetByID(ctx context.Context, id string) (*entity.FinishedProduct, error)
	Update(ctx context.Context, fp *entity.FinishedProduct) error
	ReplaceLines(ctx context.Context, finishedProductID string, lines []entity.BOMLine) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.FinishedProduct, error)
	Delete(ctx context.Context, id string) error
}
