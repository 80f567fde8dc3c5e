package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/advisor-crm/internal/domain/audit"
	"github.com/jhoicas/advisor-crm/pkg/jwt"
)

// Locals keys que deja el middleware de autenticación.
const (
	LocalUserID      = "user_id"
	LocalTenantClaim = "tenant_claim"
)

// Authenticate valida el Bearer Token si viene y deja UserID y el claim tenantId en
// c.Locals; el usuario pasa también al contexto como actor de auditoría. Sin cabecera
// Authorization la petición sigue como anónima: cada ruta decide si exige token.
func Authenticate(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Next()
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return errorJSON(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return errorJSON(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "token vacío")
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return errorJSON(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "token inválido o expirado")
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalTenantClaim, claims.TenantID)
		c.SetUserContext(audit.WithActor(c.UserContext(), claims.UserID))
		return c.Next()
	}
}

// RequireAuth rechaza con 401 las peticiones sin token válido.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetUserID(c) <= 0 {
			return errorJSON(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Authorization header requerido")
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del token (0 si la petición es anónima).
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalUserID).(int64)
	return id
}

// GetTenantClaim devuelve el claim tenantId del token (0 si no hay token).
func GetTenantClaim(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalTenantClaim).(int64)
	return id
}
