package repository

import (
	"context"

	"github.com/jhoicas/advisor-crm/internal/domain/entity"
)

// CustomerFilter filtros opcionales del listado de clientes.
type CustomerFilter struct {
	AdvisorID      *int64
	Search         string
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// CustomerRepository puerto de persistencia para Customer (alcance de tenant, borrado lógico).
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	// GetByID excluye borrados salvo includeDeleted.
	GetByID(ctx context.Context, id int64, includeDeleted bool) (*entity.Customer, error)
	List(ctx context.Context, f CustomerFilter) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	// SoftDelete marca deleted = true; ErrNotFound si no existe (o ya borrado) en el tenant.
	SoftDelete(ctx context.Context, id int64) error
}
