package dto

import (
	"encoding/json"
	"time"
)

// ChangeLogFilter query del listado de auditoría.
type ChangeLogFilter struct {
	PageRequest
	EntityName string
	EntityID   *int64
}

// ChangeLogResponse una fila del change log.
type ChangeLogResponse struct {
	ID         int64           `json:"id"`
	EntityName string          `json:"entity_name"`
	EntityID   int64           `json:"entity_id"`
	Action     string          `json:"action"`
	ActorID    *int64          `json:"actor_id,omitempty"`
	Before     json.RawMessage `json:"before,omitempty" swaggertype:"object"`
	After      json.RawMessage `json:"after,omitempty" swaggertype:"object"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ChangeLogListResponse lista paginada del change log.
type ChangeLogListResponse struct {
	Items []ChangeLogResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
