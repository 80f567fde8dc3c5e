package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/advisor-crm/internal/application/dto"
	"github.com/jhoicas/advisor-crm/internal/application/usecase"
	"github.com/jhoicas/advisor-crm/internal/domain"
	"github.com/jhoicas/advisor-crm/internal/infrastructure/memory"
)

type fakeRenderer struct {
	got *usecase.CustomerReport
}

func (r *fakeRenderer) RenderCustomerReport(_ context.Context, rep *usecase.CustomerReport) ([]byte, error) {
	r.got = rep
	return []byte("%PDF-fake"), nil
}

func TestReport_ConstruidoConDatosDelTenant(t *testing.T) {
	f := newFixture(t)
	repos := f.store.Repos()
	renderer := &fakeRenderer{}
	uc := usecase.NewReportUseCase(usecase.ReportRepos{
		Tenants:       memory.NewTenants(f.store),
		Customers:     repos.Customers,
		Users:         repos.Users,
		Relationships: repos.Relationships,
		Tasks:         repos.Tasks,
	}, renderer)

	ana, err := f.customers.Create(f.ctxA, dto.CreateCustomerRequest{FirstName: "Ana", AdvisorID: &f.adminA.ID})
	require.NoError(t, err)
	luis := f.customer(t, f.ctxA, "Luis")
	_, err = f.relations.Create(f.ctxA, ana.ID, dto.CreateRelationshipRequest{RelatedCustomerID: luis.ID, RelationshipType: "socio"})
	require.NoError(t, err)
	_, err = f.tasks.Create(f.ctxA, dto.CreateTaskRequest{Title: "Llamar", CustomerID: &ana.ID})
	require.NoError(t, err)
	done := true
	closed, err := f.tasks.Create(f.ctxA, dto.CreateTaskRequest{Title: "Cerrada", CustomerID: &ana.ID})
	require.NoError(t, err)
	_, err = f.tasks.Update(f.ctxA, closed.ID, dto.UpdateTaskRequest{Completed: &done})
	require.NoError(t, err)

	out, err := uc.Generate(f.ctxA, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(out))

	rep := renderer.got
	require.NotNil(t, rep)
	assert.Equal(t, f.tenantA.ID, rep.Tenant.ID)
	require.NotNil(t, rep.Advisor)
	assert.Equal(t, f.adminA.ID, rep.Advisor.ID)
	require.Len(t, rep.Relationships, 1)
	assert.Equal(t, luis.ID, rep.Relationships[0].Related.ID)
	require.Len(t, rep.OpenTasks, 1)
	assert.Equal(t, "Llamar", rep.OpenTasks[0].Title)

	_, err = uc.Generate(f.ctxB, ana.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
