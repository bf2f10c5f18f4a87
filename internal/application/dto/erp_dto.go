package dto

import "github.com/shopspring/decimal"

// ERPProductDTO producto tal como lo expone el ERP externo.
type ERPProductDTO struct {
	ID    string          `json:"id"`
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
	Unit  string          `json:"unit"`
}

// ERPProductListResponse página de productos del ERP.
type ERPProductListResponse struct {
	Items   []ERPProductDTO `json:"items"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
	HasMore bool            `json:"has_more"`
}
