package repository

import (
	"context"

	"github.com/jhoicas/advisor-crm/internal/domain/entity"
)

// TaskFilter filtros opcionales del listado de tareas.
type TaskFilter struct {
	CustomerID *int64
	UserID     *int64
	Completed  *bool
	Limit      int
	Offset     int
}

// TaskRepository puerto de persistencia para Task.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, id int64) (*entity.Task, error)
	List(ctx context.Context, f TaskFilter) ([]*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, id int64) error
}
