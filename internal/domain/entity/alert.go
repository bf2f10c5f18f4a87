package entity

import "time"

// Tipos de alerta.
const (
	AlertTypeLowStock = "low_stock"
	AlertTypeOverdue  = "overdue_production"
)

// Alert aviso para el usuario (stock bajo, órdenes vencidas).
type Alert struct {
	ID        string
	CompanyID string
	Type      string
	ProductID string // producto (low_stock) u orden de producción (overdue_production)
	Message   string
	Read      bool
	CreatedAt time.Time
}
