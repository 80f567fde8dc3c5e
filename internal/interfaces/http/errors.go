package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/advisor-crm/internal/application/dto"
	"github.com/jhoicas/advisor-crm/internal/domain"
	"github.com/jhoicas/advisor-crm/pkg/logger"
)

// Códigos de error de la API.
const (
	CodeTenantNotResolved = "TENANT_NOT_RESOLVED"
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidReference  = "INVALID_REFERENCE"
	CodeValidation        = "VALIDATION"
	CodeInvalidBody       = "INVALID_BODY"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeDuplicate         = "DUPLICATE"
	CodeEmailExists       = "EMAIL_EXISTS"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL"
)

func errorJSON(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusBadRequest, CodeInvalidBody, "cuerpo inválido")
}

// respondError traduce un error de dominio a su respuesta HTTP. Los errores no
// reconocidos se registran y salen como 500 sin detalle.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrTenantNotResolved):
		return errorJSON(c, fiber.StatusBadRequest, CodeTenantNotResolved, "no se pudo determinar el tenant de la petición")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrTenantMismatch):
		return errorJSON(c, fiber.StatusNotFound, CodeNotFound, "recurso no encontrado")
	case errors.Is(err, domain.ErrInvalidReference):
		return errorJSON(c, fiber.StatusUnprocessableEntity, CodeInvalidReference, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return errorJSON(c, fiber.StatusBadRequest, CodeValidation, err.Error())
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return errorJSON(c, fiber.StatusConflict, CodeEmailExists, "el email ya está registrado en este tenant")
	case errors.Is(err, domain.ErrDuplicate):
		return errorJSON(c, fiber.StatusConflict, CodeDuplicate, err.Error())
	case errors.Is(err, domain.ErrConflict):
		return errorJSON(c, fiber.StatusConflict, CodeConflict, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return errorJSON(c, fiber.StatusUnauthorized, CodeUnauthorized, "no autenticado")
	case errors.Is(err, domain.ErrForbidden):
		return errorJSON(c, fiber.StatusForbidden, CodeForbidden, "permiso insuficiente")
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return errorJSON(c, fe.Code, codeForStatus(fe.Code), fe.Message)
	}

	logger.Ctx(c.UserContext()).Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error no controlado")
	return errorJSON(c, fiber.StatusInternalServerError, CodeInternal, "error interno")
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return CodeNotFound
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	case fiber.StatusBadRequest:
		return CodeInvalidBody
	}
	if status >= 500 {
		return CodeInternal
	}
	return "ERROR"
}

// ErrorHandler para fiber.Config: último recurso para errores devueltos por handlers
// y pánicos recuperados.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return respondError(c, err)
}
