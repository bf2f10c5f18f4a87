package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderLineRequest línea del pedido.
type PurchaseOrderLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseOrderRequest entrada para crear una orden de compra.
type CreatePurchaseOrderRequest struct {
	SupplierID string                     `json:"supplier_id"`
	Notes      string                     `json:"notes"`
	ExpectedAt *time.Time                 `json:"expected_at"`
	Lines      []PurchaseOrderLineRequest `json:"lines"`
}

// PurchaseOrderLineResponse línea con nombre del producto.
type PurchaseOrderLineResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID         string                      `json:"id"`
	Number     string                      `json:"number"`
	SupplierID string                      `json:"supplier_id"`
	Status     string                      `json:"status"`
	Total      decimal.Decimal             `json:"total"`
	Notes      string                      `json:"notes"`
	ExpectedAt *time.Time                  `json:"expected_at,omitempty"`
	ReceivedAt *time.Time                  `json:"received_at,omitempty"`
	Lines      []PurchaseOrderLineResponse `json:"lines"`
	CreatedAt  time.Time                   `json:"created_at"`
	UpdatedAt  time.Time                   `json:"updated_at"`
}

// PurchaseOrderListResponse lista paginada.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
