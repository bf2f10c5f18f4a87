package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo de stock: materia prima, componente o producto de reventa.
// Quantity es el stock disponible (entero no negativo); se modifica vía movimientos o consumo de producción.
type Product struct {
	ID            string
	CompanyID     string
	LegacyID      string // id del registro local migrado (vacío si se creó en el backend)
	SKU           string // código único por empresa
	Name          string
	Description   string
	Category      string
	Unit          string // un, kg, m, caja...
	Quantity      int
	MinStock      int             // umbral de alerta de stock bajo
	PurchasePrice decimal.Decimal // costo promedio ponderado
	SalePrice     decimal.Decimal
	SupplierID    string
	SupplierName  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock indica si el stock está en o por debajo del mínimo configurado.
func (p *Product) IsLowStock() bool {
	return p.MinStock > 0 && p.Quantity <= p.MinStock
}

// StockValue valor del inventario del producto a costo.
func (p *Product) StockValue() decimal.Decimal {
	return p.PurchasePrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
