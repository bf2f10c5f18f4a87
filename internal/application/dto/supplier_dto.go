package dto

import "time"

// SupplierRequest entrada para crear o reemplazar un proveedor.
type SupplierRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	TaxID       string `json:"tax_id"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	TaxID       string    `json:"tax_id"`
	ContactName string    `json:"contact_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SupplierListResponse lista paginada de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
