package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/advisor-crm/internal/application/dto"
	"github.com/jhoicas/advisor-crm/internal/application/tenancy"
	"github.com/jhoicas/advisor-crm/internal/domain"
	"github.com/jhoicas/advisor-crm/internal/domain/entity"
	"github.com/jhoicas/advisor-crm/internal/domain/repository"
	"github.com/jhoicas/advisor-crm/internal/domain/tenant"
	"github.com/jhoicas/advisor-crm/pkg/logger"
)

// TenantSeed entrada de la lista de tenants del entorno.
type TenantSeed struct {
	Name   string
	Domain string
}

// TenantUseCase administra el directorio de tenants.
//
// Un tenant solo se ve y se gestiona a sí mismo. Crear tenants o gestionar otros
// queda reservado a los tenants operadores declarados en la configuración.
type TenantUseCase struct {
	repo      repository.TenantRepository
	operators map[int64]struct{}
}

// NewTenantUseCase construye el caso de uso con el puerto de persistencia.
func NewTenantUseCase(repo repository.TenantRepository) *TenantUseCase {
	return &TenantUseCase{repo: repo, operators: map[int64]struct{}{}}
}

// TrustOperators marca como operadores los tenants de esos dominios. Un dominio que
// no existe en el directorio es un error de arranque.
func (uc *TenantUseCase) TrustOperators(ctx context.Context, domains []string) error {
	for _, d := range domains {
		t, err := uc.FindByDomain(ctx, d)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("tenant operador %q no existe", d)
		}
		uc.operators[t.ID] = struct{}{}
	}
	return nil
}

// scope devuelve el tenant de la petición y si es operador.
func (uc *TenantUseCase) scope(ctx context.Context) (int64, bool, error) {
	own, err := tenant.IDFrom(ctx)
	if err != nil {
		return 0, false, err
	}
	_, op := uc.operators[own]
	return own, op, nil
}

// FindByDomain busca por dominio exacto (sin distinguir mayúsculas). nil si no existe.
func (uc *TenantUseCase) FindByDomain(ctx context.Context, d string) (*entity.Tenant, error) {
	d = tenancy.NormalizeDomain(d)
	if d == "" {
		return nil, nil
	}
	return uc.repo.FindByDomain(ctx, d)
}

// Create crea un tenant. Sin domain, el dominio es el nombre normalizado.
// Devuelve domain.ErrDuplicate si el dominio ya existe y domain.ErrForbidden si la
// petición no viene de un operador.
func (uc *TenantUseCase) Create(ctx context.Context, in dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	if _, op, err := uc.scope(ctx); err != nil {
		return nil, err
	} else if !op {
		return nil, domain.ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	d := tenancy.NormalizeDomain(in.Domain)
	if d == "" {
		d = tenancy.NormalizeDomain(name)
	}
	existing, err := uc.repo.FindByDomain(ctx, d)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	t := &entity.Tenant{Name: name, Domain: d, Logo: in.Logo}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Info().Int64("new_tenant_id", t.ID).Str("domain", t.Domain).Msg("tenant creado")
	return entityToTenantResponse(t), nil
}

// GetByID obtiene un tenant por ID. Otro tenant distinto del propio es
// domain.ErrNotFound salvo para operadores.
func (uc *TenantUseCase) GetByID(ctx context.Context, id int64) (*dto.TenantResponse, error) {
	own, op, err := uc.scope(ctx)
	if err != nil {
		return nil, err
	}
	if id != own && !op {
		return nil, domain.ErrNotFound
	}
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return entityToTenantResponse(t), nil
}

// List devuelve el tenant resuelto de la petición y el directorio paginado.
func (uc *TenantUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.TenantListResponse, error) {
	page.DefaultPage()
	current, err := uc.current(ctx)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TenantResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *entityToTenantResponse(t))
	}
	return &dto.TenantListResponse{
		Current: entityToTenantResponse(current),
		Items:   items,
		Page:    dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete borra físicamente el tenant. El tenant de la petición no puede borrarse a sí
// mismo y solo un operador borra otros; para el resto es domain.ErrNotFound.
func (uc *TenantUseCase) Delete(ctx context.Context, id int64) error {
	own, op, err := uc.scope(ctx)
	if err != nil {
		return err
	}
	switch {
	case own == id:
		return domain.ErrConflict
	case !op:
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// Seed inserta una vez cada tenant configurado que falte (por dominio). Devuelve cuántos creó.
func (uc *TenantUseCase) Seed(ctx context.Context, seeds []TenantSeed) (int, error) {
	created := 0
	for _, s := range seeds {
		d := tenancy.NormalizeDomain(s.Domain)
		existing, err := uc.repo.FindByDomain(ctx, d)
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}
		if err := uc.repo.Create(ctx, &entity.Tenant{Name: strings.TrimSpace(s.Name), Domain: d}); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (uc *TenantUseCase) current(ctx context.Context) (*entity.Tenant, error) {
	id, err := tenant.IDFrom(ctx)
	if err != nil {
		return nil, err
	}
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrTenantNotResolved
	}
	return t, nil
}
