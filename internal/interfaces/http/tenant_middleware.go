package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/advisor-crm/internal/application/tenancy"
	"github.com/jhoicas/advisor-crm/internal/domain"
	"github.com/jhoicas/advisor-crm/internal/domain/tenant"
	"github.com/jhoicas/advisor-crm/pkg/logger"
)

// LocalTenantStrategy estrategia con la que se resolvió el tenant (para logs).
const LocalTenantStrategy = "tenant_strategy"

// resolutionObserver recibe cada resolución; lo implementa *metrics.Metrics.
type resolutionObserver interface {
	TenantResolved(strategy string, ok bool)
}

// ResolveTenant crea el contexto de tenant de la petición y lo rellena con el resolver.
// Debe ir después de Authenticate (necesita el claim). Si no hay tenant responde 400 y
// la petición no llega a ningún handler.
func ResolveTenant(resolver *tenancy.Resolver, trust *tenancy.HeaderTrust, obs resolutionObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		tc := tenant.NewContext()
		ctx = tenant.WithContext(ctx, tc)

		req := tenancy.Request{
			Method: c.Method(),
			Path:   c.Path(),
			Host:   c.Hostname(),
			Claim:  GetTenantClaim(c),
		}
		if trust.Allows(c.IP()) {
			req.Header = c.Get(tenancy.HeaderName)
		}
		if resolver.UsesDomain(req.Method, req.Path) {
			req.Body = c.Body()
		}

		res, err := resolver.Resolve(ctx, req)
		if obs != nil {
			obs.TenantResolved(string(res.Strategy), err == nil)
		}
		if err != nil {
			if !errors.Is(err, domain.ErrTenantNotResolved) {
				return respondError(c, err)
			}
			logger.Ctx(ctx).Info().Err(err).
				Str("path", req.Path).
				Str("host", req.Host).
				Msg("tenant no resuelto")
			return respondError(c, domain.ErrTenantNotResolved)
		}

		tc.Set(res.TenantID)
		l := logger.Ctx(ctx).With().Int64("tenant_id", res.TenantID).Logger()
		c.SetUserContext(logger.WithContext(ctx, l))
		c.Locals(LocalTenantStrategy, string(res.Strategy))
		return c.Next()
	}
}
