package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo alertas sobre PostgreSQL. ref_id guarda el producto o la orden referida.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador.
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

func (r *AlertRepo) Create(ctx context.Context, a *entity.Alert) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO alerts (id, company_id, type, ref_id, message, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.CompanyID, a.Type, a.ProductID, a.Message, a.Read, a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			// índice parcial: ya hay una alerta abierta igual
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

func (r *AlertRepo) HasOpen(ctx context.Context, companyID, alertType, refID string) (bool, error) {
	var open bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM alerts
			 WHERE company_id = $1 AND type = $2 AND ref_id = $3 AND NOT read
		)`, companyID, alertType, refID).Scan(&open)
	if err != nil {
		return false, fmt.Errorf("check open alert: %w", err)
	}
	return open, nil
}

// ListByCompany más recientes primero.
func (r *AlertRepo) ListByCompany(ctx context.Context, companyID string, unreadOnly bool, limit, offset int) ([]*entity.Alert, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, type, ref_id, message, read, created_at
		FROM alerts
		WHERE company_id = $1 AND (NOT $2 OR NOT read)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`, companyID, unreadOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Alert
	for rows.Next() {
		var a entity.Alert
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.Type, &a.ProductID, &a.Message, &a.Read, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// MarkRead ErrNotFound si la alerta no existe en la empresa.
func (r *AlertRepo) MarkRead(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE alerts SET read = true WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("mark alert read: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
