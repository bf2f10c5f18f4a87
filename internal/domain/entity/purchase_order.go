package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	PurchaseStatusPending   = "pending"
	PurchaseStatusReceived  = "received"
	PurchaseStatusCancelled = "cancelled"
)

// PurchaseOrder pedido a un proveedor.
type PurchaseOrder struct {
	ID         string
	CompanyID  string
	SupplierID string
	Number     string
	Status     string
	Total      decimal.Decimal
	Notes      string
	ExpectedAt *time.Time
	ReceivedAt *time.Time
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Lines      []PurchaseOrderLine
}

// PurchaseOrderLine línea del pedido.
type PurchaseOrderLine struct {
	PurchaseOrderID string
	ProductID       string
	Quantity        int
	UnitCost        decimal.Decimal
	Subtotal        decimal.Decimal
}
