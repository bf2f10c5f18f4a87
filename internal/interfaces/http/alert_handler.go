package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Produccion-api/internal/application/usecase"
)

// AlertHandler alertas de stock bajo y órdenes vencidas.
type AlertHandler struct {
	uc *usecase.AlertUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *usecase.AlertUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// List godoc
// @Summary      Listar alertas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        unread  query  bool  false  "Solo sin leer"
// @Param        limit   query  int   false  "Límite"  default(20)
// @Param        offset  query  int   false  "Offset"  default(0)
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetCompanyID(c), c.QueryBool("unread", false), pageFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Scan godoc
// @Summary      Generar alertas
// @Description  Crea una alerta abierta por producto bajo su mínimo y por orden vencida, sin duplicar.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AlertScanResponse
// @Router       /api/alerts/scan [post]
func (h *AlertHandler) Scan(c *fiber.Ctx) error {
	out, err := h.uc.Scan(c.Context(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marcar alerta como leída
// @Tags         alerts
// @Security     Bearer
// @Param        id   path  string  true  "ID de la alerta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/read [post]
func (h *AlertHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.Context(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
