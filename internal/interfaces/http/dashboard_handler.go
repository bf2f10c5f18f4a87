package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Produccion-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen de inventario y producción.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (totales de stock, valor del inventario,
// órdenes abiertas y max_producible por producto terminado).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	summary, err := h.uc.GetSummary(c.Context(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
