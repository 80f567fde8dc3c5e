package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/advisor-crm/internal/application/dto"
	"github.com/jhoicas/advisor-crm/internal/application/usecase"
	"github.com/jhoicas/advisor-crm/internal/domain"
	"github.com/jhoicas/advisor-crm/internal/domain/entity"
	"github.com/jhoicas/advisor-crm/internal/domain/permission"
	"github.com/jhoicas/advisor-crm/internal/domain/repository"
	"github.com/jhoicas/advisor-crm/internal/domain/tenant"
	"github.com/jhoicas/advisor-crm/pkg/jwt"
	"github.com/jhoicas/advisor-crm/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login, ambos dentro del
// tenant que la resolución por dominio dejó en ctx.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	tenantRepo repository.TenantRepository
	jwtCfg     JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tenantRepo repository.TenantRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tenantRepo: tenantRepo, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario con los permisos por defecto (permission.User).
// Devuelve ErrEmailAlreadyExists si el email ya existe en el tenant.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	tenantID, err := tenant.IDFrom(ctx)
	if err != nil {
		return nil, err
	}
	email, err := usecase.NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if len(in.Password) < usecase.MinPasswordLength {
		return nil, domain.ErrInvalidInput
	}

	// tenantId del cuerpo puede apuntar a un tenant inexistente.
	t, err := uc.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrTenantNotResolved
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
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
	user := &entity.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Phone:        strings.TrimSpace(in.Phone),
		Active:       true,
		Permissions:  permission.User,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Info().Int64("user_id", user.ID).Msg("usuario registrado")
	return usecase.EntityToUserResponse(user), nil
}

// Login verifica email/password en el tenant de ctx y emite un JWT cuyo claim tenantId
// es ese mismo tenant.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	tenantID, err := tenant.IDFrom(ctx)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		// mismo coste que un password incorrecto
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, tenantID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *usecase.EntityToUserResponse(user),
	}, nil
}

// Me devuelve el usuario autenticado, buscado dentro del tenant de ctx.
func (uc *AuthUseCase) Me(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUnauthorized
	}
	return usecase.EntityToUserResponse(u), nil
}

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("advisor-crm-dummy"), bcrypt.MinCost)
