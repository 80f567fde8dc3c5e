// Package audit define el contrato de las entidades auditables y el actor de la petición.
package audit

import (
	"context"
	"encoding/json"
)

// Action etiqueta de la operación registrada en el change log.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Auditable lo implementa toda entidad con tenant cuyo cambio se registra.
// AuditSnapshot debe ser una serialización estable (JSON) sin datos sensibles.
type Auditable interface {
	AuditName() string
	AuditID() int64
	AuditSnapshot() ([]byte, error)
}

// Snapshot serializa v como JSON; helper para implementar AuditSnapshot.
func Snapshot(v any) ([]byte, error) {
	return json.Marshal(v)
}

type actorKey struct{}

// WithActor adjunta el ID del usuario autenticado que ejecuta la petición.
func WithActor(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFrom devuelve el usuario autenticado; ok es false en peticiones anónimas (registro, seed).
func ActorFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(actorKey{}).(int64)
	return id, ok && id > 0
}
