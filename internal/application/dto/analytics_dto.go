package dto

import "github.com/shopspring/decimal"

// ConsumptionReportRequest parámetros de GET /api/analytics/consumption.
type ConsumptionReportRequest struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD; por defecto primer día del mes
	EndDate   string `query:"end_date"`   // YYYY-MM-DD; por defecto hoy
	TopN      int    `query:"top"`
}

// PeriodDTO rango de fechas del reporte.
type PeriodDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ConsumptionRankingDTO un producto en el ranking de consumo.
type ConsumptionRankingDTO struct {
	Rank              int             `json:"rank"`
	ProductID         string          `json:"product_id"`
	SKU               string          `json:"sku"`
	ProductName       string          `json:"product_name"`
	Units             int             `json:"units"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	CostPct           decimal.Decimal `json:"cost_pct"`
	CumulativeCostPct decimal.Decimal `json:"cumulative_cost_pct"`
	IsTopPareto       bool            `json:"is_top_pareto"`
}

// ConsumptionReportDTO reporte de consumo con análisis Pareto (componentes que concentran ~80% del costo).
type ConsumptionReportDTO struct {
	Period     PeriodDTO               `json:"period"`
	TotalCost  decimal.Decimal         `json:"total_cost"`
	Ranking    []ConsumptionRankingDTO `json:"ranking"`
	ParetoSKUs []string                `json:"pareto_skus"`
}
