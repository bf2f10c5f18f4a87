package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/usecase"
)

// AnalyticsHandler maneja los endpoints de analítica de consumo.
type AnalyticsHandler struct {
	uc *usecase.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// GetConsumption godoc
// @Summary      Ranking de consumo de componentes (Pareto 80/20)
// @Description  Unidades y costo consumidos por producto en el período (salidas y producción).
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD). Default: primer día del mes."
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD). Default: hoy."
// @Param        top         query  int     false  "Máx. SKUs en el ranking (default 20, max 200)."
// @Success      200  {object}  dto.ConsumptionReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/consumption [get]
func (h *AnalyticsHandler) GetConsumption(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var req dto.ConsumptionReportRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}
	report, err := h.uc.GetConsumptionReport(c.Context(), companyID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
