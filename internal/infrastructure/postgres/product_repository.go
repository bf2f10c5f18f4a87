package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, company_id, COALESCE(legacy_id, ''), sku, name, description, category, unit,
	quantity, min_stock, purchase_price, sale_price, COALESCE(supplier_id, ''), supplier_name, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.CompanyID, &p.LegacyID, &p.SKU, &p.Name, &p.Description, &p.Category, &p.Unit,
		&p.Quantity, &p.MinStock, &p.PurchasePrice, &p.SalePrice, &p.SupplierID, &p.SupplierName, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto. ErrDuplicate si ya existe el SKU (o el legacy_id) en la empresa.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, company_id, legacy_id, sku, name, description, category, unit,
			quantity, min_stock, purchase_price, sale_price, supplier_id, supplier_name, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12, NULLIF($13, ''), $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.LegacyID, p.SKU, p.Name, p.Description, p.Category, p.Unit,
		p.Quantity, p.MinStock, p.PurchasePrice, p.SalePrice, p.SupplierID, p.SupplierName, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock product: %w", err)
	}
	return p, nil
}

// GetByCompanyAndSKU obtiene un producto por empresa y SKU.
func (r *ProductRepo) GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE company_id = $1 AND sku = $2`, companyID, sku))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// Update actualiza datos descriptivos. No toca quantity ni purchase_price (se manejan vía movimientos).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, category = $4, unit = $5, min_stock = $6,
			sale_price = $7, supplier_id = NULLIF($8, ''), supplier_name = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Category, p.Unit, p.MinStock,
		p.SalePrice, p.SupplierID, p.SupplierName, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateCost actualiza solo el costo promedio (usado por el motor de inventario).
func (r *ProductRepo) UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `UPDATE products SET purchase_price = $2, updated_at = now() WHERE id = $1`, productID, cost)
	if err != nil {
		return fmt.Errorf("update product cost: %w", err)
	}
	return nil
}

// UpdateQuantity fija la cantidad disponible. El CHECK (quantity >= 0) de la tabla rechaza negativos.
func (r *ProductRepo) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 0 {
		return domain.ErrInsufficientStock
	}
	cmd, err := r.q.Exec(ctx, `UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`, productID, quantity)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista productos por empresa con paginación, ordenados por SKU.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE company_id = $1 ORDER BY sku LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
}

// ListByIDs productos de la empresa con los IDs dados (los inexistentes se omiten).
func (r *ProductRepo) ListByIDs(ctx context.Context, companyID string, ids []string) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE company_id = $1 AND id = ANY($2::text[])`,
		companyID, ids)
}

// ListLowStock productos con min_stock > 0 y quantity <= min_stock.
func (r *ProductRepo) ListLowStock(ctx context.Context, companyID string) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products
		WHERE company_id = $1 AND min_stock > 0 AND quantity <= min_stock ORDER BY sku`, companyID)
}

// CountByCompany total de productos de la empresa.
func (r *ProductRepo) CountByCompany(ctx context.Context, companyID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE company_id = $1`, companyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// Delete elimina un producto por ID. ErrConflict si está referenciado por una receta o un pedido.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
