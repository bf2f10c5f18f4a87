package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

const movementColumns = `id, company_id, transaction_id, product_id, type, quantity, unit_cost, total_cost,
	created_at, COALESCE(created_by, '')`

// InventoryMovementRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento. Genera el ID si viene vacío.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (id, company_id, transaction_id, product_id, type, quantity, unit_cost, total_cost, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''))`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CompanyID, m.TransactionID, m.ProductID, m.Type,
		m.Quantity, m.UnitCost, m.TotalCost, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ListByProduct movimientos de un producto, más recientes primero.
func (r *InventoryMovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM inventory_movements
		WHERE product_id = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`, productID, limit, offset)
}

// ListByTransaction movimientos generados por una misma operación (orden de producción o de compra).
func (r *InventoryMovementRepo) ListByTransaction(ctx context.Context, transactionID string) ([]*entity.InventoryMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM inventory_movements
		WHERE transaction_id = $1 ORDER BY created_at, id`, transactionID)
}

func (r *InventoryMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.TransactionID, &m.ProductID, &m.Type, &m.Quantity,
			&m.UnitCost, &m.TotalCost, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan inventory movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
