package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para dashboard y reporte de consumo.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetInventoryTotals productos, productos en stock bajo y valor del inventario a costo promedio.
func (r *AnalyticsRepo) GetInventoryTotals(ctx context.Context, companyID string) (repository.InventoryTotals, error) {
	const query = `
	SELECT
	    COUNT(*)                                                          AS total_products,
	    COUNT(*) FILTER (WHERE min_stock > 0 AND quantity <= min_stock)   AS low_stock,
	    COALESCE(SUM(quantity * purchase_price), 0)                       AS stock_value
	FROM products
	WHERE company_id = $1`

	var t repository.InventoryTotals
	if err := r.pool.QueryRow(ctx, query, companyID).Scan(&t.TotalProducts, &t.LowStockCount, &t.StockValue); err != nil {
		return repository.InventoryTotals{}, fmt.Errorf("analytics.GetInventoryTotals: %w", err)
	}
	return t, nil
}

// GetOpenWork órdenes de producción y de compra pendientes y alertas sin leer.
func (r *AnalyticsRepo) GetOpenWork(ctx context.Context, companyID string) (repository.OpenWork, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM production_orders WHERE company_id = $1 AND status = 'pending') AS pending_production,
	    (SELECT COUNT(*) FROM purchase_orders   WHERE company_id = $1 AND status = 'pending') AS pending_purchases,
	    (SELECT COUNT(*) FROM alerts            WHERE company_id = $1 AND NOT read)           AS unread_alerts`

	var w repository.OpenWork
	if err := r.pool.QueryRow(ctx, query, companyID).Scan(&w.PendingProduction, &w.PendingPurchases, &w.UnreadAlerts); err != nil {
		return repository.OpenWork{}, fmt.Errorf("analytics.GetOpenWork: %w", err)
	}
	return w, nil
}

// GetConsumption suma las salidas (OUT y PRODUCTION) por producto en el período, ordenadas por costo.
func (r *AnalyticsRepo) GetConsumption(
	ctx context.Context,
	companyID string,
	startDate, endDate time.Time,
	limit int,
) ([]repository.ConsumptionResult, error) {
	const query = `
	SELECT
	    p.id,
	    p.sku,
	    p.name,
	    SUM(-m.quantity)::int       AS units,
	    SUM(ABS(m.total_cost))      AS total_cost
	FROM inventory_movements m
	JOIN products p ON p.id = m.product_id
	WHERE m.company_id = $1
	  AND m.type IN ('OUT', 'PRODUCTION')
	  AND m.created_at BETWEEN $2 AND $3
	GROUP BY p.id, p.sku, p.name
	ORDER BY total_cost DESC, p.sku
	LIMIT $4`

	rows, err := r.pool.Query(ctx, query, companyID, startDate, endDate, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetConsumption: %w", err)
	}
	defer rows.Close()

	var results []repository.ConsumptionResult
	for rows.Next() {
		var row repository.ConsumptionResult
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.ProductName, &row.Units, &row.TotalCost); err != nil {
			return nil, fmt.Errorf("analytics.GetConsumption scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
