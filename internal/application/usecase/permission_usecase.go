package usecase

import (
	"context"

	"github.com/jhoicas/advisor-crm/internal/domain"
	"github.com/jhoicas/advisor-crm/internal/domain/entity"
	"github.com/jhoicas/advisor-crm/internal/domain/permission"
	"github.com/jhoicas/advisor-crm/internal/domain/repository"
)

// PermissionService verifica capacidades del usuario autenticado dentro del tenant de la petición.
type PermissionService struct {
	users repository.UserRepository
}

// NewPermissionService construye el servicio.
func NewPermissionService(users repository.UserRepository) *PermissionService {
	return &PermissionService{users: users}
}

// Authorize carga el usuario filtrando por el tenant de ctx. Usuario ausente, inactivo o de
// otro tenant => domain.ErrUnauthorized; máscara sin flag => domain.ErrForbidden.
func (s *PermissionService) Authorize(ctx context.Context, userID int64, flag permission.Permission) (*entity.User, error) {
	if userID <= 0 {
		return nil, domain.ErrUnauthorized
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.Active {
		return nil, domain.ErrUnauthorized
	}
	if !permission.Has(u.Permissions, flag) {
		return u, domain.ErrForbidden
	}
	return u, nil
}
