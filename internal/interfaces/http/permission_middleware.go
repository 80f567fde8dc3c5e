package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/advisor-crm/internal/domain/entity"
	"github.com/jhoicas/advisor-crm/internal/domain/permission"
)

// authorizer es el contrato mínimo que necesita el guard de permisos.
// Lo implementa *usecase.PermissionService.
type authorizer interface {
	Authorize(ctx context.Context, userID int64, flag permission.Permission) (*entity.User, error)
}

// RequirePermission verifica que el usuario del token, buscado dentro del tenant
// resuelto, tenga flag en su máscara. Debe usarse después de Authenticate y ResolveTenant.
//
//   - 401 si no hay token, el usuario no existe en el tenant o está inactivo.
//   - 403 FORBIDDEN si la máscara no contiene flag.
func RequirePermission(flag permission.Permission, authz authorizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID <= 0 {
			return errorJSON(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Authorization header requerido")
		}
		if _, err := authz.Authorize(c.UserContext(), userID, flag); err != nil {
			return respondError(c, err)
		}
		return c.Next()
	}
}
