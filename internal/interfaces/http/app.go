package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/advisor-crm/internal/application/tenancy"
	"github.com/jhoicas/advisor-crm/pkg/logger"
)

// AppConfig opciones del servidor Fiber.
type AppConfig struct {
	Name           string
	AllowedOrigins []string // vacío = sin CORS
	Logger         *logger.Logger
	Requests       requestObserver // opcional
	MetricsHandler http.Handler    // opcional; se monta en /metrics
}

// NewApp crea la aplicación con el middleware común: recover, request id, log de
// peticiones, CORS y /metrics. Las rutas de negocio las agrega Router.
func NewApp(cfg AppConfig) *fiber.App {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler,
	})

	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return uuid.NewString() },
	}))
	app.Use(RequestLogger(log, cfg.Requests))
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))

	if len(cfg.AllowedOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.Join(cfg.AllowedOrigins, ","),
			AllowHeaders: strings.Join([]string{
				fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAccept,
				fiber.HeaderAuthorization, tenancy.HeaderName,
			}, ","),
			AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		}))
	}

	if cfg.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.MetricsHandler))
	}
	return app
}
