package entity

import "time"

// FinishedProduct producto terminado con su lista de materiales (BOM).
// Lines puede estar vacía (producto sin receta, no fabricable).
type FinishedProduct struct {
	ID          string
	CompanyID   string
	Name        string
	Code        string
	Description string
	Lines       []BOMLine
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BOMLine una línea de la receta: cuántas unidades del componente consume una unidad terminada.
type BOMLine struct {
	FinishedProductID string
	ComponentID       string
	QuantityPerUnit   int
	Process           string // etiqueta de proceso (corte, ensamble, pintura...)
	Position          int
}
