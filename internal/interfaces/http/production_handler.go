package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/production"
)

// ProductionHandler productos terminados (BOM), factibilidad y órdenes de producción.
type ProductionHandler struct {
	bom    *production.BOMUseCase
	orders *production.OrderUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(bom *production.BOMUseCase, orders *production.OrderUseCase) *ProductionHandler {
	return &ProductionHandler{bom: bom, orders: orders}
}

// CreateFinishedProduct godoc
// @Summary      Crear producto terminado con su receta
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFinishedProductRequest  true  "Producto y líneas BOM"
// @Success      201   {object}  dto.FinishedProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/finished-products [post]
func (h *ProductionHandler) CreateFinishedProduct(c *fiber.Ctx) error {
	var in dto.CreateFinishedProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.bom.Create(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetFinishedProduct godoc
// @Summary      Obtener producto terminado
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto terminado"
// @Success      200  {object}  dto.FinishedProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/finished-products/{id} [get]
func (h *ProductionHandler) GetFinishedProduct(c *fiber.Ctx) error {
	out, err := h.bom.Get(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListFinishedProducts godoc
// @Summary      Listar productos terminados
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.FinishedProductListResponse
// @Router       /api/finished-products [get]
func (h *ProductionHandler) ListFinishedProducts(c *fiber.Ctx) error {
	out, err := h.bom.List(c.Context(), GetCompanyID(c), pageFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateFinishedProduct godoc
// @Summary      Actualizar producto terminado
// @Description  lines no nulo reemplaza la receta completa.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto terminado"
// @Param        body  body  dto.UpdateFinishedProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.FinishedProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/finished-products/{id} [put]
func (h *ProductionHandler) UpdateFinishedProduct(c *fiber.Ctx) error {
	var in dto.UpdateFinishedProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.bom.Update(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteFinishedProduct godoc
// @Summary      Eliminar producto terminado
// @Tags         production
// @Security     Bearer
// @Param        id   path  string  true  "ID del producto terminado"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/finished-products/{id} [delete]
func (h *ProductionHandler) DeleteFinishedProduct(c *fiber.Ctx) error {
	if err := h.bom.Delete(c.Context(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Feasibility godoc
// @Summary      Factibilidad de fabricación
// @Description  Máximo fabricable con el stock actual y faltantes para la cantidad pedida.
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id        path   string  true   "ID del producto terminado"
// @Param        quantity  query  int     false  "Cantidad a fabricar"  default(1)
// @Success      200  {object}  dto.FeasibilityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/finished-products/{id}/feasibility [get]
func (h *ProductionHandler) Feasibility(c *fiber.Ctx) error {
	out, err := h.orders.Feasibility(c.Context(), GetCompanyID(c), c.Params("id"), c.QueryInt("quantity", 1))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateOrder godoc
// @Summary      Crear orden de producción
// @Description  Bloqueada con 409 y el detalle de faltantes si la cantidad supera lo fabricable.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductionOrderRequest  true  "Producto terminado y cantidad"
// @Success      201   {object}  dto.ProductionOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ShortageErrorResponse
// @Router       /api/production-orders [post]
func (h *ProductionHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreateProductionOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orders.CreateOrder(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetOrder godoc
// @Summary      Obtener orden de producción
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production-orders/{id} [get]
func (h *ProductionHandler) GetOrder(c *fiber.Ctx) error {
	out, err := h.orders.GetOrder(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListOrders godoc
// @Summary      Listar órdenes de producción
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | completed | cancelled"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ProductionOrderListResponse
// @Router       /api/production-orders [get]
func (h *ProductionHandler) ListOrders(c *fiber.Ctx) error {
	out, err := h.orders.ListOrders(c.Context(), GetCompanyID(c), c.Query("status"), pageFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CompleteOrder godoc
// @Summary      Completar orden de producción
// @Description  Consume los componentes de la receta en una sola transacción.
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ShortageErrorResponse
// @Router       /api/production-orders/{id}/complete [post]
func (h *ProductionHandler) CompleteOrder(c *fiber.Ctx) error {
	out, err := h.orders.CompleteOrder(c.Context(), GetCompanyID(c), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CancelOrder godoc
// @Summary      Cancelar orden de producción
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/production-orders/{id}/cancel [post]
func (h *ProductionHandler) CancelOrder(c *fiber.Ctx) error {
	out, err := h.orders.CancelOrder(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
