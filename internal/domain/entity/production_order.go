package entity

import "time"

// Estados de una orden de producción.
const (
	ProductionStatusPending   = "pending"
	ProductionStatusCompleted = "completed"
	ProductionStatusCancelled = "cancelled"
)

// ProductionOrder orden para fabricar Quantity unidades de un producto terminado.
type ProductionOrder struct {
	ID                string
	CompanyID         string
	FinishedProductID string
	Quantity          int
	Status            string
	Notes             string
	DueDate           *time.Time
	CompletedAt       *time.Time
	CreatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
