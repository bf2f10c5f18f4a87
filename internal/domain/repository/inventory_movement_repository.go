package repository

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia para movimientos de inventario.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByTransaction(ctx context.Context, transactionID string) ([]*entity.InventoryMovement, error)
}
