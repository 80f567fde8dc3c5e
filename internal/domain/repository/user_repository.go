package repository

import (
	"context"

	"github.com/jhoicas/advisor-crm/internal/domain/entity"
	"github.com/jhoicas/advisor-crm/internal/domain/permission"
)

// UserRepository puerto de persistencia para User. Todas las operaciones se
// restringen al tenant de ctx; los Get devuelven nil si la fila no existe en ese tenant.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdatePermissions(ctx context.Context, id int64, mask permission.Permission) (*entity.User, error)
	Delete(ctx context.Context, id int64) error
}
