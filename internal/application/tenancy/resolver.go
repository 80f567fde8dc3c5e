// Package tenancy decide, por petición, qué tenant puede tocar la petición.
//
// Hay dos estrategias excluyentes elegidas por la ruta:
//
//   - domain: login, registro y listado de tenants. El host se busca tal cual en el
//     directorio; solo en el registro (escritura) se admite como respaldo el campo
//     tenantId del cuerpo.
//   - header/claim: el resto de rutas. La cabecera TenantID (si es de confianza) gana
//     sobre el claim tenantId del token.
//
// La resolución es determinista y sin efectos laterales: mismas entradas, mismo resultado.
package tenancy

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/advisor-crm/internal/domain"
	"github.com/jhoicas/advisor-crm/internal/domain/entity"
	"github.com/jhoicas/advisor-crm/pkg/logger"
)

// Strategy fuente que produjo el tenant.
type Strategy string

const (
	StrategyDomain Strategy = "domain"
	StrategyBody   Strategy = "body"
	StrategyHeader Strategy = "header"
	StrategyClaim  Strategy = "claim"
	StrategyNone   Strategy = "none"
)

// HeaderName cabecera con el tenant explícito.
const HeaderName = "TenantID"

// Directory es lo mínimo que la resolución necesita del directorio de tenants.
type Directory interface {
	FindByDomain(ctx context.Context, domain string) (*entity.Tenant, error)
}

// Policy rutas que usan la estrategia por dominio.
type Policy struct {
	LoginPath    string
	RegisterPath string
	TenantsPath  string // solo GET
}

// DefaultPolicy rutas de la API.
func DefaultPolicy() Policy {
	return Policy{
		LoginPath:    "/api/auth/login",
		RegisterPath: "/api/auth/register",
		TenantsPath:  "/api/tenants",
	}
}

// Request entradas de la resolución, independientes del framework HTTP.
type Request struct {
	Method string
	Path   string
	Host   string
	// Header valor crudo de la cabecera TenantID ("" si no vino o no es de confianza).
	Header string
	// Claim tenantId del token autenticado (0 si no hay token).
	Claim int64
	// Body cuerpo sin consumir; solo se lee en el registro.
	Body []byte
}

// Result tenant resuelto y la estrategia usada.
type Result struct {
	TenantID int64
	Strategy Strategy
}

// Resolver aplica la política sobre el directorio.
type Resolver struct {
	dir    Directory
	policy Policy
}

// NewResolver construye el resolver.
func NewResolver(dir Directory, policy Policy) *Resolver {
	return &Resolver{dir: dir, policy: policy}
}

// UsesDomain indica si la ruta se resuelve por dominio.
func (r *Resolver) UsesDomain(method, path string) bool {
	p := normalizePath(path)
	switch p {
	case normalizePath(r.policy.LoginPath), normalizePath(r.policy.RegisterPath):
		return true
	case normalizePath(r.policy.TenantsPath):
		return strings.EqualFold(method, http.MethodGet)
	}
	return false
}

// Resolve calcula el tenant. Devuelve un error que envuelve domain.ErrTenantNotResolved
// cuando ninguna fuente da un valor > 0; otros errores son de infraestructura.
func (r *Resolver) Resolve(ctx context.Context, req Request) (Result, error) {
	if r.UsesDomain(req.Method, req.Path) {
		return r.resolveByDomain(ctx, req)
	}
	return resolveByHeaderOrClaim(req)
}

func (r *Resolver) resolveByDomain(ctx context.Context, req Request) (Result, error) {
	host := NormalizeDomain(StripPort(req.Host))
	if host != "" {
		t, err := r.dir.FindByDomain(ctx, host)
		if err != nil {
			return Result{}, fmt.Errorf("tenancy: buscar dominio %q: %w", host, err)
		}
		if t != nil && t.ID > 0 {
			return Result{TenantID: t.ID, Strategy: StrategyDomain}, nil
		}
	}

	if r.isRegistrationWrite(req) {
		if id, ok := tenantIDFromBody(req.Body); ok {
			logger.Ctx(ctx).Debug().Str("host", host).Int64("tenant_id", id).Msg("tenant tomado del cuerpo del registro")
			return Result{TenantID: id, Strategy: StrategyBody}, nil
		}
	}

	return Result{Strategy: StrategyNone}, fmt.Errorf("%w: dominio %q no registrado", domain.ErrTenantNotResolved, host)
}

func (r *Resolver) isRegistrationWrite(req Request) bool {
	if normalizePath(req.Path) != normalizePath(r.policy.RegisterPath) {
		return false
	}
	switch strings.ToUpper(req.Method) {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

func resolveByHeaderOrClaim(req Request) (Result, error) {
	if id, ok := ParseTenantID(req.Header); ok {
		return Result{TenantID: id, Strategy: StrategyHeader}, nil
	}
	if req.Claim > 0 {
		return Result{TenantID: req.Claim, Strategy: StrategyClaim}, nil
	}
	return Result{Strategy: StrategyNone}, fmt.Errorf("%w: falta la cabecera %s o el claim tenantId", domain.ErrTenantNotResolved, HeaderName)
}

// ParseTenantID interpreta un identificador de tenant; solo enteros > 0 son válidos.
func ParseTenantID(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// tenantIDFromBody lee tenantId del JSON del registro. Un cuerpo mal formado
// equivale a "sin tenant", nunca a un error de la petición.
func tenantIDFromBody(body []byte) (int64, bool) {
	if len(body) == 0 {
		return 0, false
	}
	var payload struct {
		TenantID json.RawMessage `json:"tenantId"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.TenantID) == 0 {
		return 0, false
	}
	var n json.Number
	if err := json.Unmarshal(payload.TenantID, &n); err != nil {
		return 0, false
	}
	return ParseTenantID(n.String())
}

// NormalizeDomain deja el dominio en la forma de comparación (sin espacios, case-folded).
func NormalizeDomain(d string) string {
	return cases.Fold().String(strings.TrimSpace(d))
}

// StripPort quita el puerto de un host ("acme.com:8080", "[::1]:80").
func StripPort(host string) string {
	host = strings.TrimSpace(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return strings.Trim(host, "[]")
}

func normalizePath(p string) string {
	p = strings.ToLower(strings.TrimSpace(p))
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}
