package repository

import (
	"context"

	"github.com/jhoicas/advisor-crm/internal/domain/entity"
)

// ChangeLogFilter filtros del listado de auditoría.
type ChangeLogFilter struct {
	EntityName string
	EntityID   *int64
	Limit      int
	Offset     int
}

// ChangeLogRepository lectura del change log del tenant. La escritura ocurre dentro
// de la misma transacción que la mutación, en la capa de persistencia.
type ChangeLogRepository interface {
	List(ctx context.Context, f ChangeLogFilter) ([]*entity.ChangeLog, error)
}
