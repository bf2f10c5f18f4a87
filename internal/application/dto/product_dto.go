package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto de stock.
type CreateProductRequest struct {
	SKU           string          `json:"sku" validate:"required,min=1,max=100"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Unit          string          `json:"unit"`
	Quantity      int             `json:"quantity" validate:"min=0"`
	MinStock      *int            `json:"min_stock"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	SupplierID    string          `json:"supplier_id"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Quantity ni costo: se manejan vía movimientos).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Unit        *string          `json:"unit"`
	MinStock    *int             `json:"min_stock"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	SupplierID  *string          `json:"supplier_id"`
}

// UpdateQuantityRequest fija el stock disponible (conteo físico).
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Unit          string          `json:"unit"`
	Quantity      int             `json:"quantity"`
	MinStock      int             `json:"min_stock"`
	LowStock      bool            `json:"low_stock"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	SupplierID    string          `json:"supplier_id,omitempty"`
	SupplierName  string          `json:"supplier_name,omitempty"`
	LegacyID      string          `json:"legacy_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
