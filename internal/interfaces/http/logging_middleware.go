package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/advisor-crm/internal/domain/tenant"
	"github.com/jhoicas/advisor-crm/pkg/logger"
)

// requestObserver recibe la duración de cada petición; lo implementa *metrics.Metrics.
type requestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// RequestLogger adjunta al contexto un sublogger con el request id y, al terminar,
// registra método, ruta, estado, latencia y el tenant resuelto.
func RequestLogger(base *logger.Logger, obs requestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID, _ := c.Locals("requestid").(string)
		l := base.With().Str("request_id", reqID).Logger()
		c.SetUserContext(logger.WithContext(c.UserContext(), l))

		chainErr := c.Next()
		if chainErr != nil {
			// deja la respuesta escrita antes de medir el estado
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		elapsed := time.Since(start)
		route := c.Route().Path
		if obs != nil {
			obs.ObserveRequest(c.Method(), route, status, elapsed)
		}

		ev := l.Info()
		if status >= fiber.StatusInternalServerError {
			ev = l.Error()
		}
		ev = ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed)
		if id, err := tenant.IDFrom(c.UserContext()); err == nil {
			ev = ev.Int64("tenant_id", id)
		}
		if s, ok := c.Locals(LocalTenantStrategy).(string); ok {
			ev = ev.Str("tenant_strategy", s)
		}
		ev.Msg("request")
		return nil
	}
}
