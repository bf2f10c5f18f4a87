package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.FinishedProductRepository = (*FinishedProductRepo)(nil)

// FinishedProductRepo productos terminados y sus líneas de BOM.
// Las escrituras de cabecera + líneas no son atómicas con un pool; pasar una tx si se requiere.
type FinishedProductRepo struct {
	q Querier
}

// NewFinishedProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFinishedProductRepository(q Querier) *FinishedProductRepo {
	return &FinishedProductRepo{q: q}
}

// Create persiste el producto terminado y sus líneas.
func (r *FinishedProductRepo) Create(ctx context.Context, fp *entity.FinishedProduct) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO finished_products (id, company_id, name, code, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		fp.ID, fp.CompanyID, fp.Name, fp.Code, fp.Description, fp.CreatedAt, fp.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert finished product: %w", err)
	}
	return r.insertLines(ctx, fp.ID, fp.Lines)
}

// GetByID producto terminado con sus líneas en orden; (nil, nil) si no existe.
func (r *FinishedProductRepo) GetByID(ctx context.Context, id string) (*entity.FinishedProduct, error) {
	var fp entity.FinishedProduct
	err := r.q.QueryRow(ctx, `
		SELECT id, company_id, name, code, description, created_at, updated_at
		FROM finished_products WHERE id = $1`, id).Scan(
		&fp.ID, &fp.CompanyID, &fp.Name, &fp.Code, &fp.Description, &fp.CreatedAt, &fp.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get finished product: %w", err)
	}
	byID, err := r.linesFor(ctx, []string{fp.ID})
	if err != nil {
		return nil, err
	}
	fp.Lines = byID[fp.ID]
	return &fp, nil
}

// Update actualiza la cabecera; las líneas se reemplazan con ReplaceLines.
func (r *FinishedProductRepo) Update(ctx context.Context, fp *entity.FinishedProduct) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE finished_products SET name = $2, code = $3, description = $4, updated_at = $5 WHERE id = $1`,
		fp.ID, fp.Name, fp.Code, fp.Description, fp.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update finished product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceLines borra las líneas actuales e inserta las nuevas.
func (r *FinishedProductRepo) ReplaceLines(ctx context.Context, finishedProductID string, lines []entity.BOMLine) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM bom_lines WHERE finished_product_id = $1`, finishedProductID); err != nil {
		return fmt.Errorf("delete bom lines: %w", err)
	}
	return r.insertLines(ctx, finishedProductID, lines)
}

// ListByCompany productos terminados con sus líneas (dos consultas, sin N+1).
func (r *FinishedProductRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.FinishedProduct, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, name, code, description, created_at, updated_at
		FROM finished_products WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list finished products: %w", err)
	}
	var list []*entity.FinishedProduct
	var ids []string
	for rows.Next() {
		var fp entity.FinishedProduct
		if err := rows.Scan(&fp.ID, &fp.CompanyID, &fp.Name, &fp.Code, &fp.Description, &fp.CreatedAt, &fp.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan finished product: %w", err)
		}
		list = append(list, &fp)
		ids = append(ids, fp.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list finished products: %w", err)
	}
	if len(ids) == 0 {
		return list, nil
	}
	byID, err := r.linesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, fp := range list {
		fp.Lines = byID[fp.ID]
	}
	return list, nil
}

// Delete elimina el producto terminado (las líneas caen por ON DELETE CASCADE).
// ErrConflict si tiene órdenes de producción.
func (r *FinishedProductRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM finished_products WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete finished product: %w", err)
	}
	return nil
}

func (r *FinishedProductRepo) insertLines(ctx context.Context, finishedProductID string, lines []entity.BOMLine) error {
	for i, l := range lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO bom_lines (finished_product_id, component_id, quantity_per_unit, process, position)
			VALUES ($1, $2, $3, $4, $5)`,
			finishedProductID, l.ComponentID, l.QuantityPerUnit, l.Process, i)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			if isForeignKeyViolation(err) {
				return domain.ErrUnknownComponent
			}
			return fmt.Errorf("insert bom line: %w", err)
		}
	}
	return nil
}

func (r *FinishedProductRepo) linesFor(ctx context.Context, ids []string) (map[string][]entity.BOMLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT finished_product_id, component_id, quantity_per_unit, process, position
		FROM bom_lines WHERE finished_product_id = ANY($1::text[])
		ORDER BY finished_product_id, position`, ids)
	if err != nil {
		return nil, fmt.Errorf("list bom lines: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.BOMLine, len(ids))
	for rows.Next() {
		var l entity.BOMLine
		if err := rows.Scan(&l.FinishedProductID, &l.ComponentID, &l.QuantityPerUnit, &l.Process, &l.Position); err != nil {
			return nil, fmt.Errorf("scan bom line: %w", err)
		}
		out[l.FinishedProductID] = append(out[l.FinishedProductID], l)
	}
	return out, rows.Err()
}
