package production

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Si fn devuelve error se hace Rollback y ningún componente cambia.
type TxRunner interface {
	RunProduction(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.ProductionOrderRepository,
	) error) error
}
