package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"         // entrada manual
	MovementTypeOUT        = "OUT"        // salida manual
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste (conteo físico)
	MovementTypePURCHASE   = "PURCHASE"   // recepción de orden de compra
	MovementTypePRODUCTION = "PRODUCTION" // consumo por orden de producción
)

// InventoryMovement representa un movimiento de inventario de un producto.
type InventoryMovement struct {
	ID            string
	CompanyID     string
	TransactionID string // orden de producción, orden de compra o uuid del movimiento manual
	ProductID     string
	Type          string
	Quantity      int // positivo entrada, negativo salida
	UnitCost      decimal.Decimal
	TotalCost     decimal.Decimal
	CreatedAt     time.Time
	CreatedBy     string
}
