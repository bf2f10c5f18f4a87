package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID string           `json:"product_id"`
	Type      string           `json:"type"`
	Quantity  int              `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
}

// MovementResponse un movimiento del kardex.
type MovementResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	ProductID     string          `json:"product_id"`
	Type          string          `json:"type"`
	Quantity      int             `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	CreatedAt     time.Time       `json:"created_at"`
	CreatedBy     string          `json:"created_by"`
}

// ReplenishmentSuggestionDTO un producto bajo stock mínimo con la cantidad sugerida de compra.
type ReplenishmentSuggestionDTO struct {
	ProductID          string          `json:"product_id"`
	SKU                string          `json:"sku"`
	ProductName        string          `json:"product_name"`
	SupplierID         string          `json:"supplier_id,omitempty"`
	SupplierName       string          `json:"supplier_name,omitempty"`
	CurrentStock       int             `json:"current_stock"`
	MinStock           int             `json:"min_stock"`
	ReservedForOrders  int             `json:"reserved_for_orders"` // consumo de órdenes de producción pendientes
	IdealStock         int             `json:"ideal_stock"`
	SuggestedOrderQty  int             `json:"suggested_order_qty"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"`
	Priority           int             `json:"priority"` // 1 = más urgente
}
