package usecase

import (
	"context"

	"github.com/jhoicas/advisor-crm/internal/application/dto"
	"github.com/jhoicas/advisor-crm/internal/domain/repository"
)

// ChangeLogUseCase consulta de auditoría del tenant.
type ChangeLogUseCase struct {
	repo repository.ChangeLogRepository
}

// NewChangeLogUseCase construye el caso de uso.
func NewChangeLogUseCase(repo repository.ChangeLogRepository) *ChangeLogUseCase {
	return &ChangeLogUseCase{repo: repo}
}

// List devuelve el change log filtrado por entidad.
func (uc *ChangeLogUseCase) List(ctx context.Context, f dto.ChangeLogFilter) (*dto.ChangeLogListResponse, error) {
	f.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ChangeLogFilter{
		EntityName: f.EntityName,
		EntityID:   f.EntityID,
		Limit:      f.Limit,
		Offset:     f.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ChangeLogResponse, 0, len(list))
	for _, c := range list {
		items = append(items, entityToChangeLogResponse(c))
	}
	return &dto.ChangeLogListResponse{Items: items, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset}}, nil
}
