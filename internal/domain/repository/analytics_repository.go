package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InventoryTotals agregados del inventario de una empresa.
type InventoryTotals struct {
	TotalProducts int
	LowStockCount int
	StockValue    decimal.Decimal // suma de quantity * purchase_price
}

// OpenWork órdenes abiertas y alertas sin leer.
type OpenWork struct {
	PendingProduction int
	PendingPurchases  int
	UnreadAlerts      int
}

// ConsumptionResult resultado crudo del consumo de un producto en un período
// (salidas manuales y consumo de producción).
type ConsumptionResult struct {
	ProductID   string
	SKU         string
	ProductName string
	Units       int
	TotalCost   decimal.Decimal // suma de |total_cost| de los movimientos
}

// AnalyticsRepository consultas de lectura para dashboard y reportes.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	GetInventoryTotals(ctx context.Context, companyID string) (InventoryTotals, error)
	GetOpenWork(ctx context.Context, companyID string) (OpenWork, error)

	// GetConsumption devuelve los productos consumidos ordenados por costo descendente.
	// limit controla cuántos productos devolver como máximo.
	GetConsumption(ctx context.Context, companyID string, startDate, endDate time.Time, limit int) ([]ConsumptionResult, error)
}
