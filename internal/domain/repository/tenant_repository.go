package repository

import (
	"context"

	"github.com/jhoicas/advisor-crm/internal/domain/entity"
)

// TenantRepository puerto de persistencia del directorio de tenants.
// Es la única tabla sin alcance de tenant: la usa la resolución y la administración.
type TenantRepository interface {
	Create(ctx context.Context, t *entity.Tenant) error
	GetByID(ctx context.Context, id int64) (*entity.Tenant, error)
	// FindByDomain compara sin distinguir mayúsculas y sin comodines. nil si no existe.
	FindByDomain(ctx context.Context, domain string) (*entity.Tenant, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Tenant, error)
	Delete(ctx context.Context, id int64) error
}
