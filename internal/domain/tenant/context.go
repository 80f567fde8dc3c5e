// Package tenant contiene el contexto de tenant con alcance de petición.
//
// Cada petición HTTP crea su propio *Context; nunca se comparte entre peticiones
// ni vive en una variable global. El valor viaja dentro del context.Context de la
// petición, de modo que cualquier capa (autorización, casos de uso, repositorios)
// lo lee sin volver a derivarlo.
package tenant

import (
	"context"

	"github.com/jhoicas/advisor-crm/internal/domain"
)

// Context es la celda mutable que guarda el tenant resuelto de una petición.
// El valor cero (0) significa "no resuelto".
type Context struct {
	id int64
}

// NewContext crea una celda vacía para una petición nueva.
func NewContext() *Context {
	return &Context{}
}

// Set fija el tenant resuelto. La etapa de resolución la llama una vez por petición.
func (c *Context) Set(id int64) {
	c.id = id
}

// ID devuelve el tenant resuelto (0 si no hay).
func (c *Context) ID() int64 {
	if c == nil {
		return 0
	}
	return c.id
}

// Resolved indica si la celda tiene un tenant válido (> 0).
func (c *Context) Resolved() bool {
	return c.ID() > 0
}

type contextKey struct{}

// WithContext adjunta la celda al context.Context de la petición.
func WithContext(ctx context.Context, tc *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// FromContext recupera la celda; ok es false si la petición no pasó por la resolución.
func FromContext(ctx context.Context) (*Context, bool) {
	tc, ok := ctx.Value(contextKey{}).(*Context)
	return tc, ok && tc != nil
}

// IDFrom devuelve el tenant de la petición o domain.ErrTenantNotResolved si falta o es <= 0.
func IDFrom(ctx context.Context) (int64, error) {
	tc, ok := FromContext(ctx)
	if !ok || !tc.Resolved() {
		return 0, domain.ErrTenantNotResolved
	}
	return tc.ID(), nil
}

// WithID es un atajo para procesos sin petición HTTP (seed, tests): crea la celda ya resuelta.
func WithID(ctx context.Context, id int64) context.Context {
	tc := NewContext()
	tc.Set(id)
	return WithContext(ctx, tc)
}
