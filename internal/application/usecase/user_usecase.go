package usecase

import (
	"context"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/advisor-crm/internal/application/dto"
	"github.com/jhoicas/advisor-crm/internal/domain"
	"github.com/jhoicas/advisor-crm/internal/domain/audit"
	"github.com/jhoicas/advisor-crm/internal/domain/entity"
	"github.com/jhoicas/advisor-crm/internal/domain/permission"
	"github.com/jhoicas/advisor-crm/internal/domain/repository"
)

// MinPasswordLength longitud mínima de contraseña.
const MinPasswordLength = 8

// UserUseCase administración de usuarios del tenant.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create da de alta un usuario en el tenant de la petición.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email, err := NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if len(in.Password) < MinPasswordLength {
		return nil, domain.ErrInvalidInput
	}
	mask := permission.User
	if len(in.Permissions) > 0 {
		if mask, err = permission.Parse(in.Permissions); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Phone:        strings.TrimSpace(in.Phone),
		Active:       true,
		Permissions:  mask,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return EntityToUserResponse(u), nil
}

// GetByID obtiene un usuario del tenant (nil si no existe en él).
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return EntityToUserResponse(u), nil
}

// List lista usuarios del tenant.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *EntityToUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Update modifica perfil, estado o contraseña.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	if in.Email != nil {
		email, err := NormalizeEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		u.Email = email
	}
	if in.Password != nil {
		if len(*in.Password) < MinPasswordLength {
			return nil, domain.ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	if in.FirstName != nil {
		u.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		u.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Active != nil {
		if !*in.Active && isActor(ctx, id) {
			return nil, domain.ErrConflict
		}
		u.Active = *in.Active
	}
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return EntityToUserResponse(u), nil
}

// UpdatePermissions fija la máscara desde nombres o entero. Un usuario no puede quitarse
// a sí mismo ManagePermissions.
func (uc *UserUseCase) UpdatePermissions(ctx context.Context, id int64, in dto.UpdatePermissionsRequest) (*dto.UserResponse, error) {
	var mask permission.Permission
	switch {
	case in.Mask != nil:
		mask = permission.Permission(*in.Mask)
		if !mask.Valid() {
			return nil, domain.ErrInvalidInput
		}
	default:
		var err error
		if mask, err = permission.Parse(in.Names); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	if isActor(ctx, id) && !mask.Has(permission.ManagePermissions) {
		return nil, domain.ErrConflict
	}
	u, err := uc.repo.UpdatePermissions(ctx, id, mask)
	if err != nil {
		return nil, err
	}
	return EntityToUserResponse(u), nil
}

// Delete borra un usuario del tenant; no se permite borrarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	if isActor(ctx, id) {
		return domain.ErrConflict
	}
	return uc.repo.Delete(ctx, id)
}

// NormalizeEmail recorta, pasa a minúsculas y valida la dirección.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", domain.ErrInvalidInput
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", domain.ErrInvalidInput
	}
	return email, nil
}

func isActor(ctx context.Context, userID int64) bool {
	actor, ok := audit.ActorFrom(ctx)
	return ok && actor == userID
}
