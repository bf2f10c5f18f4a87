package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)

const productionOrderColumns = `id, company_id, finished_product_id, quantity, status, notes, due_date,
	completed_at, COALESCE(created_by, ''), created_at, updated_at`

// ProductionOrderRepo órdenes de producción sobre PostgreSQL (usable con pool o tx).
type ProductionOrderRepo struct {
	q Querier
}

// NewProductionOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionOrderRepository(q Querier) *ProductionOrderRepo {
	return &ProductionOrderRepo{q: q}
}

func scanProductionOrder(row rowScanner) (*entity.ProductionOrder, error) {
	var o entity.ProductionOrder
	if err := row.Scan(&o.ID, &o.CompanyID, &o.FinishedProductID, &o.Quantity, &o.Status, &o.Notes, &o.DueDate,
		&o.CompletedAt, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persiste una orden.
func (r *ProductionOrderRepo) Create(ctx context.Context, o *entity.ProductionOrder) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO production_orders (id, company_id, finished_product_id, quantity, status, notes, due_date,
			completed_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11)`,
		o.ID, o.CompanyID, o.FinishedProductID, o.Quantity, o.Status, o.Notes, o.DueDate,
		o.CompletedAt, o.CreatedBy, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUnknownProduct
		}
		return fmt.Errorf("insert production order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden; (nil, nil) si no existe.
func (r *ProductionOrderRepo) GetByID(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	o, err := scanProductionOrder(r.q.QueryRow(ctx, `SELECT `+productionOrderColumns+` FROM production_orders WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production order: %w", err)
	}
	return o, nil
}

// UpdateStatus guarda estado y fecha de completado si la orden sigue en from.
// Dentro de una tx la fila queda bloqueada hasta el commit; una segunda transición
// concurrente espera y luego no encuentra la fila en from.
func (r *ProductionOrderRepo) UpdateStatus(ctx context.Context, o *entity.ProductionOrder, from string) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE production_orders SET status = $2, completed_at = $3, updated_at = $4
		WHERE id = $1 AND status = $5`,
		o.ID, o.Status, o.CompletedAt, o.UpdatedAt, from)
	if err != nil {
		return fmt.Errorf("update production order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: orden %s no está en estado %s", domain.ErrConflict, o.ID, from)
	}
	return nil
}

// ListByCompany órdenes por empresa, filtradas por estado si status no está vacío, más antiguas primero.
func (r *ProductionOrderRepo) ListByCompany(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.ProductionOrder, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productionOrderColumns+` FROM production_orders
		WHERE company_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at LIMIT $3 OFFSET $4`, companyID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list production orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionOrder
	for rows.Next() {
		o, err := scanProductionOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// CountByStatus número de órdenes de la empresa en el estado dado.
func (r *ProductionOrderRepo) CountByStatus(ctx context.Context, companyID, status string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM production_orders WHERE company_id = $1 AND status = $2`,
		companyID, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count production orders: %w", err)
	}
	return n, nil
}
