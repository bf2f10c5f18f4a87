package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Produccion-api/internal/application/usecase"
)

// ERPHandler proxy paginado al catálogo del ERP externo.
type ERPHandler struct {
	uc *usecase.ERPUseCase
}

// NewERPHandler construye el handler.
func NewERPHandler(uc *usecase.ERPUseCase) *ERPHandler {
	return &ERPHandler{uc: uc}
}

// ListProducts godoc
// @Summary      Productos del ERP
// @Tags         erp
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Límite (max 100)"  default(20)
// @Success      200  {object}  dto.ERPProductListResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Failure      504  {object}  dto.ErrorResponse
// @Router       /api/erp/products [get]
func (h *ERPHandler) ListProducts(c *fiber.Ctx) error {
	out, err := h.uc.ListProducts(c.Context(), c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
