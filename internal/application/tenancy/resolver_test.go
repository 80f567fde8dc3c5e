package tenancy_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/advisor-crm/internal/application/tenancy"
	"github.com/jhoicas/advisor-crm/internal/domain"
	"github.com/jhoicas/advisor-crm/internal/domain/entity"
)

// fakeDirectory directorio en memoria; cuenta las consultas para verificar que no hay acceso a datos.
type fakeDirectory struct {
	byDomain map[string]int64
	calls    int
	err      error
}

func (f *fakeDirectory) FindByDomain(_ context.Context, d string) (*entity.Tenant, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	id, ok := f.byDomain[d]
	if !ok {
		return nil, nil
	}
	return &entity.Tenant{ID: id, Domain: d}, nil
}

func newResolver() (*tenancy.Resolver, *fakeDirectory) {
	dir := &fakeDirectory{byDomain: map[string]int64{"acme.example.com": 7, "globex.example.com": 9}}
	return tenancy.NewResolver(dir, tenancy.DefaultPolicy()), dir
}

// ──────────────────────────────────────────────────────────────────────────────
// Estrategia por dominio
// ──────────────────────────────────────────────────────────────────────────────

// Escenario 1: el host del login mapea al tenant 7.
func TestResolve_LoginPorDominio(t *testing.T) {
	r, _ := newResolver()
	res, err := r.Resolve(context.Background(), tenancy.Request{
		Method: http.MethodPost, Path: "/api/auth/login", Host: "ACME.example.com:443",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.TenantID)
	assert.Equal(t, tenancy.StrategyDomain, res.Strategy)
}

func TestResolve_DominioIgnoraCabeceraYClaim(t *testing.T) {
	r, _ := newResolver()
	res, err := r.Resolve(context.Background(), tenancy.Request{
		Method: http.MethodPost, Path: "/api/auth/login/", Host: "globex.example.com",
		Header: "3", Claim: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), res.TenantID, "en rutas de dominio manda el host")
}

func TestResolve_ListadoTenantsSoloGET(t *testing.T) {
	r, _ := newResolver()
	assert.True(t, r.UsesDomain(http.MethodGet, "/api/tenants"))
	assert.False(t, r.UsesDomain(http.MethodPost, "/api/tenants"), "crear tenants es administración, va por cabecera/claim")
	assert.False(t, r.UsesDomain(http.MethodGet, "/api/tenants/3"))
}

// Escenario 5: registro desde un host desconocido con tenantId en el cuerpo.
func TestResolve_RegistroRespaldoCuerpo(t *testing.T) {
	r, _ := newResolver()
	res, err := r.Resolve(context.Background(), tenancy.Request{
		Method: http.MethodPost, Path: "/api/auth/register", Host: "desconocido.net",
		Body: []byte(`{"email":"a@b.com","password":"12345678","tenantId":7}`),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.TenantID)
	assert.Equal(t, tenancy.StrategyBody, res.Strategy)
}

func TestResolve_RegistroCuerpoComoTexto(t *testing.T) {
	r, _ := newResolver()
	res, err := r.Resolve(context.Background(), tenancy.Request{
		Method: http.MethodPost, Path: "/api/auth/register", Host: "desconocido.net",
		Body: []byte(`{"TenantId":"12"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), res.TenantID)
}

func TestResolve_RegistroCuerpoInvalido(t *testing.T) {
	bodies := []string{``, `{`, `not json`, `{"tenantId":0}`, `{"tenantId":-4}`, `{"tenantId":"abc"}`, `{"tenantId":1.5}`, `{"email":"x"}`}
	for _, body := range bodies {
		r, _ := newResolver()
		_, err := r.Resolve(context.Background(), tenancy.Request{
			Method: http.MethodPost, Path: "/api/auth/register", Host: "desconocido.net", Body: []byte(body),
		})
		assert.ErrorIs(t, err, domain.ErrTenantNotResolved, "body=%q", body)
	}
}

func TestResolve_LoginNoUsaCuerpo(t *testing.T) {
	r, _ := newResolver()
	_, err := r.Resolve(context.Background(), tenancy.Request{
		Method: http.MethodPost, Path: "/api/auth/login", Host: "desconocido.net",
		Body: []byte(`{"tenantId":7}`),
	})
	assert.ErrorIs(t, err, domain.ErrTenantNotResolved, "el respaldo del cuerpo es exclusivo del registro")
}

func TestResolve_RegistroGETNoUsaCuerpo(t *testing.T) {
	r, _ := newResolver()
	_, err := r.Resolve(context.Background(), tenancy.Request{
		Method: http.MethodGet, Path: "/api/auth/register", Host: "desconocido.net",
		Body: []byte(`{"tenantId":7}`),
	})
	assert.ErrorIs(t, err, domain.ErrTenantNotResolved)
}

func TestResolve_ErrorDelDirectorioSePropaga(t *testing.T) {
	r, dir := newResolver()
	dir.err = errors.New("db caída")
	_, err := r.Resolve(context.Background(), tenancy.Request{
		Method: http.MethodPost, Path: "/api/auth/login", Host: "acme.example.com",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrTenantNotResolved, "un fallo de infraestructura no es un 400")
}

// ──────────────────────────────────────────────────────────────────────────────
// Estrategia cabecera / claim
// ──────────────────────────────────────────────────────────────────────────────

// Escenario 2: la cabecera gana al claim.
func TestResolve_CabeceraGanaAlClaim(t *testing.T) {
	r, dir := newResolver()
	res, err := r.Resolve(context.Background(), tenancy.Request{
		Method: http.MethodGet, Path: "/api/customers", Host: "acme.example.com", Header: "3", Claim: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.TenantID)
	assert.Equal(t, tenancy.StrategyHeader, res.Strategy)
	assert.Zero(t, dir.calls, "la estrategia B no consulta el directorio")
}

// Escenario 3: sin cabecera se usa el claim.
func TestResolve_Claim(t *testing.T) {
	r, _ := newResolver()
	res, err := r.Resolve(context.Background(), tenancy.Request{
		Method: http.MethodGet, Path: "/api/customers", Claim: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.TenantID)
	assert.Equal(t, tenancy.StrategyClaim, res.Strategy)
}

func TestResolve_CabeceraInvalidaCaeAlClaim(t *testing.T) {
	r, _ := newResolver()
	for _, h := range []string{"abc", "0", "-1", " "} {
		res, err := r.Resolve(context.Background(), tenancy.Request{
			Method: http.MethodGet, Path: "/api/tasks", Header: h, Claim: 5,
		})
		require.NoError(t, err, "header=%q", h)
		assert.Equal(t, int64(5), res.TenantID)
	}
}

// Escenario 4: sin cabecera ni claim la resolución falla sin tocar datos.
func TestResolve_SinFuentes(t *testing.T) {
	r, dir := newResolver()
	_, err := r.Resolve(context.Background(), tenancy.Request{
		Method: http.MethodGet, Path: "/api/customers", Host: "acme.example.com",
	})
	assert.ErrorIs(t, err, domain.ErrTenantNotResolved)
	assert.Zero(t, dir.calls)
}

// Determinismo e idempotencia: repetir la resolución da el mismo resultado.
func TestResolve_Determinista(t *testing.T) {
	r, _ := newResolver()
	reqs := []tenancy.Request{
		{Method: http.MethodPost, Path: "/api/auth/login", Host: "acme.example.com"},
		{Method: http.MethodPost, Path: "/api/auth/register", Host: "x.net", Body: []byte(`{"tenantId":4}`)},
		{Method: http.MethodGet, Path: "/api/customers", Header: "3", Claim: 5},
		{Method: http.MethodGet, Path: "/api/customers"},
	}
	for _, req := range reqs {
		first, firstErr := r.Resolve(context.Background(), req)
		for i := 0; i < 5; i++ {
			again, err := r.Resolve(context.Background(), req)
			assert.Equal(t, first, again)
			assert.Equal(t, firstErr == nil, err == nil)
		}
	}
}

func TestStripPortYNormalize(t *testing.T) {
	assert.Equal(t, "acme.com", tenancy.StripPort("acme.com:8080"))
	assert.Equal(t, "acme.com", tenancy.StripPort("acme.com"))
	assert.Equal(t, "::1", tenancy.StripPort("[::1]:80"))
	assert.Equal(t, "acme.com", tenancy.NormalizeDomain("  ACME.Com "))
}
