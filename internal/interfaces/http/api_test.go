package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/advisor-crm/internal/application/auth"
	"github.com/jhoicas/advisor-crm/internal/application/dto"
	"github.com/jhoicas/advisor-crm/internal/application/tenancy"
	"github.com/jhoicas/advisor-crm/internal/application/usecase"
	"github.com/jhoicas/advisor-crm/internal/domain/entity"
	"github.com/jhoicas/advisor-crm/internal/domain/permission"
	"github.com/jhoicas/advisor-crm/internal/domain/tenant"
	"github.com/jhoicas/advisor-crm/internal/infrastructure/memory"
	"github.com/jhoicas/advisor-crm/internal/infrastructure/metrics"
	"github.com/jhoicas/advisor-crm/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/advisor-crm/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/advisor-crm/pkg/jwt"
)

const testPassword = "secreto-123"

// apiEnv aplicación completa sobre el almacén en memoria: dos tenants (acme y globex),
// un administrador en cada uno y un usuario de solo lectura en acme.
type apiEnv struct {
	app    *fiber.App
	store  *memory.Store
	acme   *entity.Tenant
	globex *entity.Tenant
	admin  *entity.User
	other  *entity.User
	viewer *entity.User
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	store := memory.NewStore()
	tenants := memory.NewTenants(store)
	repos := store.Repos()
	bg := context.Background()

	acme := &entity.Tenant{Name: "Acme", Domain: "acme.example.com"}
	globex := &entity.Tenant{Name: "Globex", Domain: "globex.example.com"}
	require.NoError(t, tenants.Create(bg, acme))
	require.NoError(t, tenants.Create(bg, globex))

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	newUser := func(tenantID int64, email string, mask permission.Permission) *entity.User {
		u := &entity.User{Email: email, PasswordHash: string(hash), Active: true, Permissions: mask}
		require.NoError(t, repos.Users.Create(tenant.WithID(bg, tenantID), u))
		return u
	}
	env := &apiEnv{
		store:  store,
		acme:   acme,
		globex: globex,
		admin:  newUser(acme.ID, "admin@acme.com", permission.Admin),
		other:  newUser(globex.ID, "admin@globex.com", permission.Admin),
		viewer: newUser(acme.ID, "viewer@acme.com", permission.ViewCustomers),
	}

	trust, err := tenancy.NewHeaderTrust(true, nil)
	require.NoError(t, err)
	m := metrics.New(prometheus.NewRegistry())
	tenantUC := usecase.NewTenantUseCase(tenants)
	require.NoError(t, tenantUC.TrustOperators(bg, []string{acme.Domain}))

	app := apphttp.NewApp(apphttp.AppConfig{Name: "advisor-crm-test", Requests: m, MetricsHandler: m.Handler()})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:         auth.NewAuthUseCase(repos.Users, tenants, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}),
		TenantUC:       tenantUC,
		UserUC:         usecase.NewUserUseCase(repos.Users),
		CustomerUC:     usecase.NewCustomerUseCase(repos.Customers, store),
		RelationshipUC: usecase.NewRelationshipUseCase(repos.Relationships, repos.Customers, store),
		DocumentUC:     usecase.NewDocumentUseCase(repos.Documents, repos.Customers, store),
		TaskUC:         usecase.NewTaskUseCase(repos.Tasks, store),
		ChangeLogUC:    usecase.NewChangeLogUseCase(memory.NewChangeLogs(store)),
		ReportUC: usecase.NewReportUseCase(usecase.ReportRepos{
			Tenants:       tenants,
			Customers:     repos.Customers,
			Users:         repos.Users,
			Relationships: repos.Relationships,
			Tasks:         repos.Tasks,
		}, pdf.NewCustomerReportGenerator()),
		Permissions: usecase.NewPermissionService(repos.Users),
		Resolver:    tenancy.NewResolver(tenants, tenancy.DefaultPolicy()),
		HeaderTrust: trust,
		Resolutions: m,
		JWTSecret:   testJWTSecret,
	})
	env.app = app
	return env
}

type call struct {
	method string
	url    string
	body   any
	token  string
	header map[string]string
}

func (e *apiEnv) do(t *testing.T, c call) *http.Response {
	t.Helper()
	var r io.Reader
	if c.body != nil {
		b, err := json.Marshal(c.body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	url := c.url
	if !strings.HasPrefix(url, "http") {
		url = "http://api.internal" + url
	}
	req := httptest.NewRequest(c.method, url, r)
	if c.body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if c.token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+c.token)
	}
	for k, v := range c.header {
		req.Header.Set(k, v)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *apiEnv) token(t *testing.T, u *entity.User) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, u.ID, u.TenantID, u.Email, testIssuer, 60)
	require.NoError(t, err)
	return tok
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (e *apiEnv) createCustomer(t *testing.T, u *entity.User, name string) dto.CustomerResponse {
	t.Helper()
	resp := e.do(t, call{method: http.MethodPost, url: "/api/customers", token: e.token(t, u), body: dto.CreateCustomerRequest{FirstName: name}})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[dto.CustomerResponse](t, resp)
}

func TestLogin_TenantPorDominio(t *testing.T) {
	e := newAPIEnv(t)

	resp := e.do(t, call{
		method: http.MethodPost,
		url:    "http://ACME.example.com:8080/api/auth/login",
		body:   dto.LoginRequest{Email: "admin@acme.com", Password: testPassword},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.LoginResponse](t, resp)

	claims, err := pkgjwt.Parse(testJWTSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, e.acme.ID, claims.TenantID)
	assert.Equal(t, e.admin.ID, claims.UserID)
}

func TestLogin_UsuarioDeOtroTenant_Retorna401(t *testing.T) {
	e := newAPIEnv(t)

	resp := e.do(t, call{
		method: http.MethodPost,
		url:    "http://globex.example.com/api/auth/login",
		body:   dto.LoginRequest{Email: "admin@acme.com", Password: testPassword},
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = e.do(t, call{
		method: http.MethodPost,
		url:    "http://acme.example.com/api/auth/login",
		body:   dto.LoginRequest{Email: "admin@acme.com", Password: "incorrecta"},
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_DominioDesconocido_Retorna400(t *testing.T) {
	e := newAPIEnv(t)

	resp := e.do(t, call{
		method: http.MethodPost,
		url:    "http://desconocido.com/api/auth/login",
		body:   map[string]any{"email": "admin@acme.com", "password": testPassword, "tenantId": e.acme.ID},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "el login no usa el tenantId del cuerpo")
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, apphttp.CodeTenantNotResolved, body.Code)
}

func TestRegister_RespaldoDelCuerpoConHostDesconocido(t *testing.T) {
	e := newAPIEnv(t)

	resp := e.do(t, call{
		method: http.MethodPost,
		url:    "http://desconocido.com/api/auth/register",
		body:   map[string]any{"email": "nuevo@mail.com", "password": testPassword, "tenantId": e.globex.ID},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	user := decode[dto.UserResponse](t, resp)
	assert.Equal(t, e.globex.ID, user.TenantID)
	assert.Equal(t, uint64(permission.User), user.Permissions)

	resp = e.do(t, call{
		method: http.MethodPost,
		url:    "http://desconocido.com/api/auth/register",
		body:   map[string]any{"email": "otro@mail.com", "password": testPassword, "tenantId": "abc"},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = e.do(t, call{
		method: http.MethodPost,
		url:    "http://desconocido.com/api/auth/register",
		body:   map[string]any{"email": "otro@mail.com", "password": testPassword, "tenantId": 9999},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "tenant inexistente")
}

func TestRegister_EmailDuplicadoPorTenant(t *testing.T) {
	e := newAPIEnv(t)
	body := dto.RegisterRequest{Email: "ana@mail.com", Password: testPassword}

	resp := e.do(t, call{method: http.MethodPost, url: "http://acme.example.com/api/auth/register", body: body})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp = e.do(t, call{method: http.MethodPost, url: "http://acme.example.com/api/auth/register", body: body})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp = e.do(t, call{method: http.MethodPost, url: "http://globex.example.com/api/auth/register", body: body})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode, "el mismo email puede existir en otro tenant")
}

func TestMe_SinToken_Retorna401(t *testing.T) {
	e := newAPIEnv(t)

	resp := e.do(t, call{method: http.MethodGet, url: "/api/auth/me", header: map[string]string{tenancy.HeaderName: strconv.FormatInt(e.acme.ID, 10)}})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = e.do(t, call{method: http.MethodGet, url: "/api/auth/me", token: e.token(t, e.admin)})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	me := decode[dto.UserResponse](t, resp)
	assert.Equal(t, e.admin.ID, me.ID)
}

func TestPermission_LectorNoBorra_Retorna403(t *testing.T) {
	e := newAPIEnv(t)
	c := e.createCustomer(t, e.admin, "Ana")
	url := "/api/customers/" + strconv.FormatInt(c.ID, 10)

	resp := e.do(t, call{method: http.MethodDelete, url: url, token: e.token(t, e.viewer)})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, apphttp.CodeForbidden, body.Code)

	resp = e.do(t, call{method: http.MethodGet, url: url, token: e.token(t, e.viewer)})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = e.do(t, call{method: http.MethodDelete, url: url, token: e.token(t, e.admin)})
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestPermission_UsuarioFueraDelTenant_Retorna401(t *testing.T) {
	e := newAPIEnv(t)

	// token de acme, cabecera de globex: el usuario no existe en globex
	resp := e.do(t, call{
		method: http.MethodGet,
		url:    "/api/customers",
		token:  e.token(t, e.admin),
		header: map[string]string{tenancy.HeaderName: strconv.FormatInt(e.globex.ID, 10)},
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCustomers_AisladosPorTenant(t *testing.T) {
	e := newAPIEnv(t)
	c := e.createCustomer(t, e.admin, "Ana")
	url := "/api/customers/" + strconv.FormatInt(c.ID, 10)

	resp := e.do(t, call{method: http.MethodGet, url: url, token: e.token(t, e.other)})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = e.do(t, call{method: http.MethodPut, url: url, token: e.token(t, e.other), body: map[string]any{"first_name": "X"}})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = e.do(t, call{method: http.MethodDelete, url: url, token: e.token(t, e.other)})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = e.do(t, call{method: http.MethodGet, url: "/api/customers", token: e.token(t, e.other)})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decode[dto.CustomerListResponse](t, resp)
	assert.Empty(t, list.Items)
}

func TestCustomers_AsesorAjeno_Retorna422(t *testing.T) {
	e := newAPIEnv(t)

	resp := e.do(t, call{
		method: http.MethodPost,
		url:    "/api/customers",
		token:  e.token(t, e.admin),
		body:   dto.CreateCustomerRequest{FirstName: "Ana", AdvisorID: &e.other.ID},
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, apphttp.CodeInvalidReference, body.Code)
}

func TestCustomers_ValidacionYCuerpoInvalido(t *testing.T) {
	e := newAPIEnv(t)
	tok := e.token(t, e.admin)

	resp := e.do(t, call{method: http.MethodPost, url: "/api/customers", token: tok, body: dto.CreateCustomerRequest{}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/api/customers", strings.NewReader("{no json"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+tok)
	raw, err := e.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, raw.StatusCode)

	resp = e.do(t, call{method: http.MethodGet, url: "/api/customers/abc", token: tok})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCustomers_ReporteEsPDF(t *testing.T) {
	e := newAPIEnv(t)
	c := e.createCustomer(t, e.admin, "Ana")
	url := "/api/customers/" + strconv.FormatInt(c.ID, 10) + "/report"

	resp := e.do(t, call{method: http.MethodGet, url: url, token: e.token(t, e.admin)})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))

	resp = e.do(t, call{method: http.MethodGet, url: url, token: e.token(t, e.other)})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestTasksAndDocuments_Flujo(t *testing.T) {
	e := newAPIEnv(t)
	tok := e.token(t, e.admin)
	c := e.createCustomer(t, e.admin, "Ana")
	cid := strconv.FormatInt(c.ID, 10)

	resp := e.do(t, call{method: http.MethodPost, url: "/api/customers/" + cid + "/documents", token: tok,
		body: dto.CreateDocumentRequest{FileName: "contrato.pdf", ContentType: "application/pdf", SizeBytes: 100}})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	doc := decode[dto.DocumentResponse](t, resp)
	assert.Equal(t, e.admin.ID, doc.UserID)

	resp = e.do(t, call{method: http.MethodPost, url: "/api/tasks", token: tok, body: dto.CreateTaskRequest{Title: "Llamar", CustomerID: &c.ID}})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = e.do(t, call{method: http.MethodGet, url: "/api/tasks?customer_id=" + cid + "&completed=false", token: tok})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	tasks := decode[dto.TaskListResponse](t, resp)
	assert.Len(t, tasks.Items, 1)

	resp = e.do(t, call{method: http.MethodGet, url: "/api/tasks?completed=quizas", token: tok})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = e.do(t, call{method: http.MethodDelete, url: "/api/documents/" + strconv.FormatInt(doc.ID, 10), token: e.token(t, e.other)})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestTasks_CompletarConClienteBorrado(t *testing.T) {
	e := newAPIEnv(t)
	tok := e.token(t, e.admin)
	c := e.createCustomer(t, e.admin, "Ana")

	resp := e.do(t, call{method: http.MethodPost, url: "/api/tasks", token: tok, body: dto.CreateTaskRequest{Title: "Llamar", CustomerID: &c.ID}})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	task := decode[dto.TaskResponse](t, resp)

	resp = e.do(t, call{method: http.MethodDelete, url: "/api/customers/" + strconv.FormatInt(c.ID, 10), token: tok})
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	done := true
	resp = e.do(t, call{method: http.MethodPut, url: "/api/tasks/" + strconv.FormatInt(task.ID, 10), token: tok, body: dto.UpdateTaskRequest{Completed: &done}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.TaskResponse](t, resp).Completed)
}

func TestUsers_EndpointDePermisos(t *testing.T) {
	e := newAPIEnv(t)
	tok := e.token(t, e.admin)
	url := "/api/users/" + strconv.FormatInt(e.viewer.ID, 10) + "/permissions"

	resp := e.do(t, call{method: http.MethodPut, url: url, token: tok,
		body: dto.UpdatePermissionsRequest{Names: []string{"ViewCustomers", "DeleteCustomers"}}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.UserResponse](t, resp)
	assert.Equal(t, uint64(permission.ViewCustomers|permission.DeleteCustomers), out.Permissions)

	resp = e.do(t, call{method: http.MethodPut, url: url, token: tok, body: dto.UpdatePermissionsRequest{Names: []string{"Volar"}}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = e.do(t, call{method: http.MethodPut, url: url, token: e.token(t, e.viewer), body: dto.UpdatePermissionsRequest{Names: []string{"ManagePermissions"}}})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, "nadie se concede permisos sin ManagePermissions")

	resp = e.do(t, call{method: http.MethodPut, url: "/api/users/" + strconv.FormatInt(e.other.ID, 10) + "/permissions", token: tok,
		body: dto.UpdatePermissionsRequest{Names: []string{"ViewCustomers"}}})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestChangeLog_SoloTenantPropio(t *testing.T) {
	e := newAPIEnv(t)
	c := e.createCustomer(t, e.admin, "Ana")

	resp := e.do(t, call{method: http.MethodGet, url: "/api/changelog?entity=Customer&entity_id=" + strconv.FormatInt(c.ID, 10), token: e.token(t, e.admin)})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	logs := decode[dto.ChangeLogListResponse](t, resp)
	require.Len(t, logs.Items, 1)
	assert.Equal(t, "created", logs.Items[0].Action)
	require.NotNil(t, logs.Items[0].ActorID)
	assert.Equal(t, e.admin.ID, *logs.Items[0].ActorID)

	resp = e.do(t, call{method: http.MethodGet, url: "/api/changelog?entity=Customer", token: e.token(t, e.other)})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	logs = decode[dto.ChangeLogListResponse](t, resp)
	assert.Empty(t, logs.Items)

	resp = e.do(t, call{method: http.MethodGet, url: "/api/changelog", token: e.token(t, e.viewer)})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestTenants_ListadoPorDominio(t *testing.T) {
	e := newAPIEnv(t)

	resp := e.do(t, call{method: http.MethodGet, url: "http://globex.example.com/api/tenants"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.TenantListResponse](t, resp)
	require.NotNil(t, out.Current)
	assert.Equal(t, e.globex.ID, out.Current.ID)
	assert.Len(t, out.Items, 2)

	resp = e.do(t, call{method: http.MethodGet, url: "http://desconocido.com/api/tenants"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = e.do(t, call{method: http.MethodPost, url: "/api/tenants", token: e.token(t, e.admin), body: dto.CreateTenantRequest{Name: "Initech"}})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode[dto.TenantResponse](t, resp)
	assert.Equal(t, "initech", created.Domain)

	resp = e.do(t, call{method: http.MethodDelete, url: "/api/tenants/" + strconv.FormatInt(e.acme.ID, 10), token: e.token(t, e.admin)})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestTenants_SoloElOperadorGestionaOtros(t *testing.T) {
	e := newAPIEnv(t)

	resp := e.do(t, call{method: http.MethodPost, url: "/api/tenants", token: e.token(t, e.admin), body: dto.CreateTenantRequest{Name: "Initech"}})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	initech := decode[dto.TenantResponse](t, resp)

	other := e.token(t, e.other)
	for _, id := range []int64{e.acme.ID, initech.ID} {
		url := "/api/tenants/" + strconv.FormatInt(id, 10)
		resp = e.do(t, call{method: http.MethodGet, url: url, token: other})
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		resp = e.do(t, call{method: http.MethodDelete, url: url, token: other})
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	}

	resp = e.do(t, call{method: http.MethodGet, url: "/api/tenants/" + strconv.FormatInt(e.globex.ID, 10), token: other})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, e.globex.ID, decode[dto.TenantResponse](t, resp).ID)

	resp = e.do(t, call{method: http.MethodPost, url: "/api/tenants", token: other, body: dto.CreateTenantRequest{Name: "Umbrella"}})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = e.do(t, call{method: http.MethodGet, url: "/api/tenants/" + strconv.FormatInt(initech.ID, 10), token: e.token(t, e.admin)})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "el operador sigue viéndolo")
}

func TestMetrics_ExponeContadores(t *testing.T) {
	e := newAPIEnv(t)
	e.do(t, call{method: http.MethodGet, url: "/api/customers"})

	resp := e.do(t, call{method: http.MethodGet, url: "/metrics"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), "advisor_crm_tenant_resolutions_total")
	assert.Contains(t, string(b), "advisor_crm_api_requests_total")
}
