package entity

import (
	"encoding/json"
	"time"

	"github.com/jhoicas/advisor-crm/internal/domain/audit"
)

// ChangeLog registro de auditoría de una mutación sobre una entidad auditable.
type ChangeLog struct {
	ID         int64
	TenantID   int64
	EntityName string
	EntityID   int64
	Action     audit.Action
	ActorID    *int64
	Before     json.RawMessage // nil en created
	After      json.RawMessage // nil en deleted
	CreatedAt  time.Time
}
