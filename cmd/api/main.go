package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/advisor-crm/internal/application/auth"
	"github.com/jhoicas/advisor-crm/internal/application/tenancy"
	"github.com/jhoicas/advisor-crm/internal/application/usecase"
	"github.com/jhoicas/advisor-crm/internal/domain/repository"
	"github.com/jhoicas/advisor-crm/internal/infrastructure/cache"
	"github.com/jhoicas/advisor-crm/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/advisor-crm/internal/infrastructure/pdf"
	"github.com/jhoicas/advisor-crm/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/advisor-crm/internal/interfaces/http"
	"github.com/jhoicas/advisor-crm/pkg/config"
	"github.com/jhoicas/advisor-crm/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// La lista de tenants es obligatoria: sin ella no hay CORS ni directorio.
	tenantList, err := config.LoadTenants(cfg.Tenancy.TenantsFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.Tenancy.TenantsFile).Msg("lista de tenants")
	}

	ctx := logger.WithContext(context.Background(), log.Zerolog())
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log.Zerolog()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	m := metrics.New(nil)
	checks := []httpRouter.HealthCheck{{Name: "postgres", Check: pool.Ping}}

	var tenantRepo repository.TenantRepository = postgres.NewTenantRepository(pool)
	if cfg.Redis.Enabled() {
		client, err := cache.Connect(ctx, cfg.Redis.URL, 5, 2*time.Second)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		tenantRepo = cache.NewTenantDirectory(tenantRepo, client, cfg.Redis.CacheTTL).OnLookup(m.CacheLookup)
		checks = append(checks, httpRouter.HealthCheck{Name: "redis", Check: cache.Healthcheck(client)})
		log.Info().Dur("ttl", cfg.Redis.CacheTTL).Msg("caché de tenants en Redis activa")
	}

	tenantUC := usecase.NewTenantUseCase(tenantRepo)
	seeds := make([]usecase.TenantSeed, 0, len(tenantList.Tenants))
	for _, t := range tenantList.Tenants {
		seeds = append(seeds, usecase.TenantSeed{Name: t.Name, Domain: t.Domain})
	}
	created, err := tenantUC.Seed(ctx, seeds)
	if err != nil {
		log.Fatal().Err(err).Msg("seed de tenants")
	}
	log.Info().Int("created", created).Int("configured", len(seeds)).Msg("tenants sincronizados")
	if err := tenantUC.TrustOperators(ctx, tenantList.OperatorDomains()); err != nil {
		log.Fatal().Err(err).Msg("tenants operadores")
	}

	headerTrust, err := tenancy.NewHeaderTrust(cfg.Tenancy.HeaderTrusted, cfg.Tenancy.TrustedProxies)
	if err != nil {
		log.Fatal().Err(err).Msg("proxies de confianza")
	}

	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	relationshipRepo := postgres.NewRelationshipRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	reportUC := usecase.NewReportUseCase(usecase.ReportRepos{
		Tenants:       tenantRepo,
		Customers:     customerRepo,
		Users:         userRepo,
		Relationships: relationshipRepo,
		Tasks:         taskRepo,
	}, infrapdf.NewCustomerReportGenerator())

	authUC := auth.NewAuthUseCase(userRepo, tenantRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:           cfg.App.Name,
		AllowedOrigins: tenantList.AllowedOrigins(cfg.App.Env != "production"),
		Logger:         log,
		Requests:       m,
		MetricsHandler: m.Handler(),
	})

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Advisor CRM API",
	}))

	app.Get("/health", httpRouter.Health(cfg.App.Name, checks...))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		TenantUC:       tenantUC,
		UserUC:         usecase.NewUserUseCase(userRepo),
		CustomerUC:     usecase.NewCustomerUseCase(customerRepo, txRunner),
		RelationshipUC: usecase.NewRelationshipUseCase(relationshipRepo, customerRepo, txRunner),
		DocumentUC:     usecase.NewDocumentUseCase(postgres.NewDocumentRepository(pool), customerRepo, txRunner),
		TaskUC:         usecase.NewTaskUseCase(taskRepo, txRunner),
		ChangeLogUC:    usecase.NewChangeLogUseCase(postgres.NewChangeLogRepository(pool)),
		ReportUC:       reportUC,
		Permissions:    usecase.NewPermissionService(userRepo),
		Resolver:       tenancy.NewResolver(tenantRepo, tenancy.DefaultPolicy()),
		HeaderTrust:    headerTrust,
		Resolutions:    m,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
