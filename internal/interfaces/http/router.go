package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/advisor-crm/internal/application/auth"
	"github.com/jhoicas/advisor-crm/internal/application/tenancy"
	"github.com/jhoicas/advisor-crm/internal/application/usecase"
	"github.com/jhoicas/advisor-crm/internal/domain/permission"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	TenantUC       *usecase.TenantUseCase
	UserUC         *usecase.UserUseCase
	CustomerUC     *usecase.CustomerUseCase
	RelationshipUC *usecase.RelationshipUseCase
	DocumentUC     *usecase.DocumentUseCase
	TaskUC         *usecase.TaskUseCase
	ChangeLogUC    *usecase.ChangeLogUseCase
	ReportUC       *usecase.ReportUseCase
	Permissions    *usecase.PermissionService
	Resolver       *tenancy.Resolver
	HeaderTrust    *tenancy.HeaderTrust
	Resolutions    resolutionObserver // opcional
	JWTSecret      string
}

// Router registra las rutas de la API. Todo /api pasa por Authenticate y ResolveTenant;
// sin tenant resuelto ningún handler se ejecuta.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api",
		Authenticate(deps.JWTSecret),
		ResolveTenant(deps.Resolver, deps.HeaderTrust, deps.Resolutions),
	)
	can := func(flag permission.Permission) fiber.Handler {
		return RequirePermission(flag, deps.Permissions)
	}

	// Auth (tenant por dominio)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", RequireAuth(), authHandler.Me)

	// Tenants: el listado es público y se resuelve por dominio
	tenantHandler := NewTenantHandler(deps.TenantUC)
	tenants := api.Group("/tenants")
	tenants.Get("/", tenantHandler.List)
	tenants.Post("/", can(permission.ManagePermissions), tenantHandler.Create)
	tenants.Get("/:id", can(permission.ManagePermissions), tenantHandler.GetByID)
	tenants.Delete("/:id", can(permission.ManagePermissions), tenantHandler.Delete)

	// Customers
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.ReportUC)
	relationshipHandler := NewRelationshipHandler(deps.RelationshipUC)
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	customers := api.Group("/customers")
	customers.Get("/", can(permission.ViewCustomers), customerHandler.List)
	customers.Post("/", can(permission.CreateCustomers), customerHandler.Create)
	customers.Get("/:id", can(permission.ViewCustomers), customerHandler.GetByID)
	customers.Put("/:id", can(permission.EditCustomers), customerHandler.Update)
	customers.Delete("/:id", can(permission.DeleteCustomers), customerHandler.Delete)
	customers.Get("/:id/report", can(permission.ViewCustomers), customerHandler.Report)
	customers.Get("/:id/relationships", can(permission.ViewCustomers), relationshipHandler.List)
	customers.Post("/:id/relationships", can(permission.EditCustomers), relationshipHandler.Create)
	customers.Get("/:id/documents", can(permission.ViewDocuments), documentHandler.List)
	customers.Post("/:id/documents", can(permission.UploadDocuments), documentHandler.Create)

	api.Delete("/relationships/:id", can(permission.EditCustomers), relationshipHandler.Delete)
	api.Delete("/documents/:id", can(permission.DeleteDocuments), documentHandler.Delete)

	// Tasks
	taskHandler := NewTaskHandler(deps.TaskUC)
	tasks := api.Group("/tasks")
	tasks.Get("/", can(permission.ViewCustomers), taskHandler.List)
	tasks.Post("/", can(permission.CreateCustomers), taskHandler.Create)
	tasks.Get("/:id", can(permission.ViewCustomers), taskHandler.GetByID)
	tasks.Put("/:id", can(permission.EditCustomers), taskHandler.Update)
	tasks.Delete("/:id", can(permission.DeleteCustomers), taskHandler.Delete)

	// Users
	userHandler := NewUserHandler(deps.UserUC)
	users := api.Group("/users")
	users.Get("/", can(permission.ViewUsers), userHandler.List)
	users.Post("/", can(permission.CreateUsers), userHandler.Create)
	users.Get("/:id", can(permission.ViewUsers), userHandler.GetByID)
	users.Put("/:id", can(permission.EditUsers), userHandler.Update)
	users.Put("/:id/permissions", can(permission.ManagePermissions), userHandler.UpdatePermissions)
	users.Delete("/:id", can(permission.DeleteUsers), userHandler.Delete)

	// Auditoría
	changeLogHandler := NewChangeLogHandler(deps.ChangeLogUC)
	api.Get("/changelog", can(permission.ManagePermissions), changeLogHandler.List)
}
