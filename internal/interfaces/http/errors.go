package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/production"
)

// respondError traduce los errores de dominio a status HTTP y dto.ErrorResponse.
func respondError(c *fiber.Ctx, err error) error {
	var shortage *production.ShortageError
	if errors.As(err, &shortage) {
		return c.Status(fiber.StatusConflict).JSON(dto.ShortageErrorResponse{
			Code:      "INSUFFICIENT_STOCK",
			Message:   "componentes insuficientes para la cantidad solicitada",
			Shortages: shortage.Shortages,
		})
	}

	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnknownComponent):
		status, code = fiber.StatusUnprocessableEntity, "UNKNOWN_COMPONENT"
	case errors.Is(err, domain.ErrUnknownProduct):
		status, code = fiber.StatusNotFound, "UNKNOWN_PRODUCT"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		status, code = fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrDuplicate):
		status, code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code = fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrGuardViolation):
		status, code = fiber.StatusConflict, "REMOTE_NOT_EMPTY"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrRemoteUnavailable):
		status, code = fiber.StatusServiceUnavailable, "REMOTE_UNAVAILABLE"
	case errors.Is(err, context.DeadlineExceeded):
		status, code = fiber.StatusGatewayTimeout, "TIMEOUT"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func missingCompany(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id no encontrado en el token"})
}

// pageFrom lee limit/offset del query string con tope de 100.
func pageFrom(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}
