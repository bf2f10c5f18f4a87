package entity

import "time"

// Supplier proveedor de materias primas o componentes.
type Supplier struct {
	ID          string
	CompanyID   string
	Name        string
	TaxID       string
	ContactName string
	Email       string
	Phone       string
	Address     string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
