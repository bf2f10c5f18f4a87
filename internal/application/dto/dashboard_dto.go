package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalProducts         int             `json:"total_products"`
	LowStockCount         int             `json:"low_stock_count"`
	StockValue            decimal.Decimal `json:"stock_value"` // suma de cantidad * costo promedio
	PendingProduction     int             `json:"pending_production_orders"`
	PendingPurchaseOrders int             `json:"pending_purchase_orders"`
	UnreadAlerts          int             `json:"unread_alerts"`
	Producible            []ProducibleDTO `json:"producible"`
}

// ProducibleDTO máxima cantidad fabricable de un producto terminado con el stock actual.
type ProducibleDTO struct {
	FinishedProductID string `json:"finished_product_id"`
	Name              string `json:"name"`
	Code              string `json:"code"`
	MaxProducible     int    `json:"max_producible"`
}
