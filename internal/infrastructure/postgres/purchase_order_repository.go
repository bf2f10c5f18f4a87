package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const purchaseOrderColumns = `id, company_id, supplier_id, number, status, total, notes, expected_at, received_at,
	COALESCE(created_by, ''), created_at, updated_at`

// PurchaseOrderRepo órdenes de compra y sus líneas (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

func scanPurchaseOrder(row rowScanner) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	if err := row.Scan(&po.ID, &po.CompanyID, &po.SupplierID, &po.Number, &po.Status, &po.Total, &po.Notes,
		&po.ExpectedAt, &po.ReceivedAt, &po.CreatedBy, &po.CreatedAt, &po.UpdatedAt); err != nil {
		return nil, err
	}
	return &po, nil
}

// Create persiste cabecera y líneas.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_orders (id, company_id, supplier_id, number, status, total, notes, expected_at,
			received_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11, $12)`,
		po.ID, po.CompanyID, po.SupplierID, po.Number, po.Status, po.Total, po.Notes, po.ExpectedAt,
		po.ReceivedAt, po.CreatedBy, po.CreatedAt, po.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for i, l := range po.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_order_lines (purchase_order_id, product_id, quantity, unit_cost, subtotal, position)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			po.ID, l.ProductID, l.Quantity, l.UnitCost, l.Subtotal, i)
		if err != nil {
			return fmt.Errorf("insert purchase order line: %w", err)
		}
	}
	return nil
}

// GetByID orden con sus líneas; (nil, nil) si no existe.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	po, err := scanPurchaseOrder(r.q.QueryRow(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT purchase_order_id, product_id, quantity, unit_cost, subtotal
		FROM purchase_order_lines WHERE purchase_order_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list purchase order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.PurchaseOrderID, &l.ProductID, &l.Quantity, &l.UnitCost, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan purchase order line: %w", err)
		}
		po.Lines = append(po.Lines, l)
	}
	return po, rows.Err()
}

// UpdateStatus guarda estado y fecha de recepción si la orden sigue en from.
func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, po *entity.PurchaseOrder, from string) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE purchase_orders SET status = $2, received_at = $3, updated_at = $4
		WHERE id = $1 AND status = $5`,
		po.ID, po.Status, po.ReceivedAt, po.UpdatedAt, from)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: orden de compra %s no está en estado %s", domain.ErrConflict, po.Number, from)
	}
	return nil
}

// ListByCompany órdenes sin líneas, más recientes primero; status vacío = todas.
func (r *PurchaseOrderRepo) ListByCompany(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders
		WHERE company_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`, companyID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, po)
	}
	return list, rows.Err()
}

func (r *PurchaseOrderRepo) CountByStatus(ctx context.Context, companyID, status string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM purchase_orders WHERE company_id = $1 AND status = $2`,
		companyID, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count purchase orders: %w", err)
	}
	return n, nil
}

// NextNumber consecutivo por empresa (OC-000001, OC-000002...). El UPSERT serializa llamadas concurrentes.
func (r *PurchaseOrderRepo) NextNumber(ctx context.Context, companyID string) (string, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO purchase_order_counters (company_id, last_number) VALUES ($1, 1)
		ON CONFLICT (company_id) DO UPDATE SET last_number = purchase_order_counters.last_number + 1
		RETURNING last_number`, companyID).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("next purchase order number: %w", err)
	}
	return fmt.Sprintf("OC-%06d", n), nil
}
