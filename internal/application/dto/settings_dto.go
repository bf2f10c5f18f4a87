package dto

// UpdateSettingsRequest campos opcionales de preferencias.
type UpdateSettingsRequest struct {
	DisplayName     *string `json:"display_name"`
	Currency        *string `json:"currency"`
	DefaultMinStock *int    `json:"default_min_stock"`
	LowStockAlerts  *bool   `json:"low_stock_alerts"`
	OverdueAlerts   *bool   `json:"overdue_alerts"`
}
