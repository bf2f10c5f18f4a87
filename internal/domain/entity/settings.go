package entity

import "time"

// Settings preferencias de la empresa (persistidas como JSON).
type Settings struct {
	CompanyID       string    `json:"-"`
	DisplayName     string    `json:"display_name"`
	Currency        string    `json:"currency"`
	DefaultMinStock int       `json:"default_min_stock"`
	LowStockAlerts  bool      `json:"low_stock_alerts"`
	OverdueAlerts   bool      `json:"overdue_alerts"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DefaultSettings valores iniciales cuando la empresa aún no guardó preferencias.
func DefaultSettings(companyID string) *Settings {
	return &Settings{
		CompanyID:       companyID,
		Currency:        "COP",
		DefaultMinStock: 5,
		LowStockAlerts:  true,
		OverdueAlerts:   true,
	}
}
