package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/advisor-crm/internal/domain"
	"github.com/jhoicas/advisor-crm/internal/domain/entity"
	"github.com/jhoicas/advisor-crm/internal/domain/repository"
	"github.com/jhoicas/advisor-crm/internal/domain/tenant"
)

// CustomerReport datos de la ficha PDF de un cliente, todos del mismo tenant.
type CustomerReport struct {
	Tenant        *entity.Tenant
	Customer      *entity.Customer
	Advisor       *entity.User // nil si no tiene asesor
	Relationships []ReportRelationship
	OpenTasks     []*entity.Task
	GeneratedAt   time.Time
}

// ReportRelationship relación vista desde el cliente del reporte.
type ReportRelationship struct {
	Type    string
	Related *entity.Customer
}

// CustomerReportRenderer genera el documento (lo implementa infrastructure/pdf).
type CustomerReportRenderer interface {
	RenderCustomerReport(ctx context.Context, report *CustomerReport) ([]byte, error)
}

// ReportRepos repositorios que lee el reporte.
type ReportRepos struct {
	Tenants       repository.TenantRepository
	Customers     repository.CustomerRepository
	Users         repository.UserRepository
	Relationships repository.RelationshipRepository
	Tasks         repository.TaskRepository
}

// ReportUseCase arma y renderiza la ficha de un cliente.
type ReportUseCase struct {
	repos    ReportRepos
	renderer CustomerReportRenderer
	now      func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repos ReportRepos, renderer CustomerReportRenderer) *ReportUseCase {
	return &ReportUseCase{repos: repos, renderer: renderer, now: time.Now}
}

// Build reúne los datos del reporte.
func (uc *ReportUseCase) Build(ctx context.Context, customerID int64) (*CustomerReport, error) {
	tenantID, err := tenant.IDFrom(ctx)
	if err != nil {
		return nil, err
	}
	t, err := uc.repos.Tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrTenantNotResolved
	}
	c, err := customerInPath(ctx, uc.repos.Customers, customerID)
	if err != nil {
		return nil, err
	}

	report := &CustomerReport{Tenant: t, Customer: c, GeneratedAt: uc.now()}
	if c.AdvisorID != nil {
		if report.Advisor, err = uc.repos.Users.GetByID(ctx, *c.AdvisorID); err != nil {
			return nil, err
		}
	}

	rels, err := uc.repos.Relationships.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	for _, r := range rels {
		otherID := r.RelatedCustomerID
		if otherID == customerID {
			otherID = r.CustomerID
		}
		other, err := uc.repos.Customers.GetByID(ctx, otherID, true)
		if err != nil {
			return nil, err
		}
		report.Relationships = append(report.Relationships, ReportRelationship{Type: r.RelationshipType, Related: other})
	}

	open := false
	tasks, err := uc.repos.Tasks.List(ctx, repository.TaskFilter{CustomerID: &customerID, Completed: &open, Limit: 100})
	if err != nil {
		return nil, err
	}
	report.OpenTasks = tasks
	return report, nil
}

// Generate devuelve el PDF del cliente.
func (uc *ReportUseCase) Generate(ctx context.Context, customerID int64) ([]byte, error) {
	report, err := uc.Build(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return uc.renderer.RenderCustomerReport(ctx, report)
}
