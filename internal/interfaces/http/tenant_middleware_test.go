package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/advisor-crm/internal/application/dto"
	"github.com/jhoicas/advisor-crm/internal/application/tenancy"
	"github.com/jhoicas/advisor-crm/internal/domain/entity"
	"github.com/jhoicas/advisor-crm/internal/domain/tenant"
	apphttp "github.com/jhoicas/advisor-crm/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/advisor-crm/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "advisor-crm-test"
)

type emptyDirectory struct{}

func (emptyDirectory) FindByDomain(context.Context, string) (*entity.Tenant, error) { return nil, nil }

type countingObserver struct {
	calls map[string]int
}

func (o *countingObserver) TenantResolved(strategy string, ok bool) {
	o.calls[strategy+":"+strconv.FormatBool(ok)]++
}

// resolveApp expone GET /api/tenant-actual, que devuelve el tenant resuelto. reached indica si
// el handler llegó a ejecutarse.
func resolveApp(t *testing.T, trust *tenancy.HeaderTrust, obs *countingObserver, reached *bool) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	resolver := tenancy.NewResolver(emptyDirectory{}, tenancy.DefaultPolicy())
	app.Get("/api/tenant-actual",
		apphttp.Authenticate(testJWTSecret),
		apphttp.ResolveTenant(resolver, trust, obs),
		func(c *fiber.Ctx) error {
			*reached = true
			id, err := tenant.IDFrom(c.UserContext())
			if err != nil {
				return err
			}
			return c.JSON(fiber.Map{"tenant_id": id, "strategy": c.Locals(apphttp.LocalTenantStrategy)})
		},
	)
	return app
}

func bearer(t *testing.T, userID, tenantID int64) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, tenantID, "ana@acme.com", testIssuer, 60)
	require.NoError(t, err)
	return "Bearer " + tok
}

// bearerWithoutTenant token bien firmado cuyo claim tenantId falta.
func bearerWithoutTenant(t *testing.T) string {
	t.Helper()
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"userId": 1,
		"exp":    time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return "Bearer " + tok
}

type resolvedTenant struct {
	TenantID int64  `json:"tenant_id"`
	Strategy string `json:"strategy"`
}

func send(t *testing.T, app *fiber.App, headers map[string]string) (*http.Response, resolvedTenant) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/tenant-actual", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var out resolvedTenant
	if resp.StatusCode == fiber.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func allowAll(t *testing.T) *tenancy.HeaderTrust {
	t.Helper()
	trust, err := tenancy.NewHeaderTrust(true, nil)
	require.NoError(t, err)
	return trust
}

func TestResolveTenant_CabeceraGanaAlClaim(t *testing.T) {
	var reached bool
	obs := &countingObserver{calls: map[string]int{}}
	app := resolveApp(t, allowAll(t), obs, &reached)

	resp, out := send(t, app, map[string]string{
		tenancy.HeaderName: "3",
		"Authorization":    bearer(t, 1, 5),
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(3), out.TenantID)
	assert.Equal(t, string(tenancy.StrategyHeader), out.Strategy)
	assert.Equal(t, 1, obs.calls["header:true"])
}

func TestResolveTenant_ClaimSinCabecera(t *testing.T) {
	var reached bool
	app := resolveApp(t, allowAll(t), &countingObserver{calls: map[string]int{}}, &reached)

	resp, out := send(t, app, map[string]string{"Authorization": bearer(t, 1, 5)})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(5), out.TenantID)
	assert.Equal(t, string(tenancy.StrategyClaim), out.Strategy)
}

func TestResolveTenant_SinFuentes_Retorna400(t *testing.T) {
	cases := map[string]map[string]string{
		"sin cabecera ni token": nil,
		"cabecera no numérica":  {tenancy.HeaderName: "acme"},
		"cabecera cero":         {tenancy.HeaderName: "0"},
		"token sin tenantId":    {"Authorization": bearerWithoutTenant(t)},
	}
	for name, headers := range cases {
		t.Run(name, func(t *testing.T) {
			var reached bool
			obs := &countingObserver{calls: map[string]int{}}
			app := resolveApp(t, allowAll(t), obs, &reached)

			resp, _ := send(t, app, headers)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, apphttp.CodeTenantNotResolved, body.Code)
			assert.False(t, reached, "no debe ejecutarse ningún handler sin tenant")
			assert.Equal(t, 1, obs.calls["none:false"])
		})
	}
}

func TestResolveTenant_CabeceraNoConfiableCaeAlClaim(t *testing.T) {
	trust, err := tenancy.NewHeaderTrust(true, []string{"10.0.0.0/8"})
	require.NoError(t, err)
	var reached bool
	app := resolveApp(t, trust, &countingObserver{calls: map[string]int{}}, &reached)

	resp, out := send(t, app, map[string]string{
		tenancy.HeaderName: "3",
		"Authorization":    bearer(t, 1, 5),
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(5), out.TenantID, "la IP de app.Test no está en la lista de proxies")
}

func TestResolveTenant_CabeceraDeshabilitada(t *testing.T) {
	trust, err := tenancy.NewHeaderTrust(false, nil)
	require.NoError(t, err)
	var reached bool
	app := resolveApp(t, trust, &countingObserver{calls: map[string]int{}}, &reached)

	resp, _ := send(t, app, map[string]string{tenancy.HeaderName: "3"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.False(t, reached)
}

func TestAuthenticate_TokenInvalido_Retorna401(t *testing.T) {
	var reached bool
	app := resolveApp(t, allowAll(t), &countingObserver{calls: map[string]int{}}, &reached)

	for _, h := range []string{"Bearer basura", "Token abc", "Bearer "} {
		resp, _ := send(t, app, map[string]string{"Authorization": h, tenancy.HeaderName: "3"})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, h)
	}
	assert.False(t, reached)

	other, err := pkgjwt.Generate("otro-secreto", 1, 5, "x@y.com", testIssuer, 60)
	require.NoError(t, err)
	resp, _ := send(t, app, map[string]string{"Authorization": "Bearer " + other})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestResolveTenant_PeticionesNoCompartenContexto(t *testing.T) {
	var reached bool
	app := resolveApp(t, allowAll(t), &countingObserver{calls: map[string]int{}}, &reached)

	for i := 1; i <= 20; i++ {
		id := strconv.Itoa(i)
		resp, out := send(t, app, map[string]string{tenancy.HeaderName: id})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, int64(i), out.TenantID)
	}
	resp, _ := send(t, app, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "una petición sin tenant no hereda el de la anterior")
}
