package dto

import (
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain/production"
)

// BOMLineRequest una línea de receta en la entrada.
type BOMLineRequest struct {
	ComponentID     string `json:"component_id"`
	QuantityPerUnit int    `json:"quantity_per_unit"`
	Process         string `json:"process"`
}

// CreateFinishedProductRequest entrada para crear un producto terminado con su BOM.
type CreateFinishedProductRequest struct {
	Name        string           `json:"name" validate:"required,min=1,max=200"`
	Code        string           `json:"code" validate:"required,min=1,max=100"`
	Description string           `json:"description"`
	Lines       []BOMLineRequest `json:"lines"`
}

// UpdateFinishedProductRequest campos opcionales; Lines no nil reemplaza la receta completa.
type UpdateFinishedProductRequest struct {
	Name        *string          `json:"name"`
	Code        *string          `json:"code"`
	Description *string          `json:"description"`
	Lines       []BOMLineRequest `json:"lines"`
}

// BOMLineResponse línea de receta con datos del componente.
type BOMLineResponse struct {
	ComponentID     string `json:"component_id"`
	ComponentName   string `json:"component_name"`
	ComponentUnit   string `json:"component_unit"`
	QuantityPerUnit int    `json:"quantity_per_unit"`
	Process         string `json:"process"`
	Available       int    `json:"available"`
}

// FinishedProductResponse producto terminado con su receta y la factibilidad actual.
type FinishedProductResponse struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Code          string            `json:"code"`
	Description   string            `json:"description"`
	Lines         []BOMLineResponse `json:"lines"`
	MaxProducible int               `json:"max_producible"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// FinishedProductListResponse lista paginada.
type FinishedProductListResponse struct {
	Items []FinishedProductResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}

// FeasibilityResponse resultado de factibilidad para una cantidad solicitada.
type FeasibilityResponse struct {
	FinishedProductID string                `json:"finished_product_id"`
	Requested         int                   `json:"requested"`
	MaxProducible     int                   `json:"max_producible"`
	Feasible          bool                  `json:"feasible"`
	Shortages         []production.Shortage `json:"shortages"`
}

// CreateProductionOrderRequest entrada para crear una orden de producción.
type CreateProductionOrderRequest struct {
	FinishedProductID string     `json:"finished_product_id"`
	Quantity          int        `json:"quantity"`
	Notes             string     `json:"notes"`
	DueDate           *time.Time `json:"due_date"`
}

// ProductionOrderResponse salida de una orden de producción.
type ProductionOrderResponse struct {
	ID                  string     `json:"id"`
	FinishedProductID   string     `json:"finished_product_id"`
	FinishedProductName string     `json:"finished_product_name,omitempty"`
	Quantity            int        `json:"quantity"`
	Status              string     `json:"status"`
	Notes               string     `json:"notes"`
	DueDate             *time.Time `json:"due_date,omitempty"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
	CreatedBy           string     `json:"created_by"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// ProductionOrderListResponse lista paginada.
type ProductionOrderListResponse struct {
	Items []ProductionOrderResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}

// ShortageErrorResponse cuerpo 409 cuando faltan componentes.
type ShortageErrorResponse struct {
	Code      string                `json:"code"`
	Message   string                `json:"message"`
	Shortages []production.Shortage `json:"shortages"`
}
