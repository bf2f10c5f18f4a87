package dto

import "time"

// AlertResponse salida de una alerta.
type AlertResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	ProductID string    `json:"product_id,omitempty"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// AlertScanResponse resultado de un escaneo de alertas.
type AlertScanResponse struct {
	Created int             `json:"created"`
	Alerts  []AlertResponse `json:"alerts"`
}
