package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/advisor-crm/internal/application/dto"
	"github.com/jhoicas/advisor-crm/internal/domain"
	"github.com/jhoicas/advisor-crm/internal/domain/entity"
	"github.com/jhoicas/advisor-crm/internal/domain/repository"
)

// TaskUseCase tareas de seguimiento.
type TaskUseCase struct {
	repo repository.TaskRepository
	tx   repository.TxRunner
}

// NewTaskUseCase construye el caso de uso.
func NewTaskUseCase(repo repository.TaskRepository, tx repository.TxRunner) *TaskUseCase {
	return &TaskUseCase{repo: repo, tx: tx}
}

// Create crea una tarea; cliente y asignado deben pertenecer al tenant.
func (uc *TaskUseCase) Create(ctx context.Context, in dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	t := &entity.Task{
		CustomerID:  in.CustomerID,
		UserID:      in.UserID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		DueDate:     in.DueDate,
	}
	if t.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		if err := checkTaskReferences(ctx, repos, t); err != nil {
			return err
		}
		return repos.Tasks.Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return entityToTaskResponse(t), nil
}

// GetByID obtiene una tarea del tenant (nil si no existe).
func (uc *TaskUseCase) GetByID(ctx context.Context, id int64) (*dto.TaskResponse, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return entityToTaskResponse(t), nil
}

// List lista tareas del tenant.
func (uc *TaskUseCase) List(ctx context.Context, f dto.TaskFilter) (*dto.TaskListResponse, error) {
	f.DefaultPage()
	list, err := uc.repo.List(ctx, repository.TaskFilter{
		CustomerID: f.CustomerID,
		UserID:     f.UserID,
		Completed:  f.Completed,
		Limit:      f.Limit,
		Offset:     f.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.TaskResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *entityToTaskResponse(t))
	}
	return &dto.TaskListResponse{Items: items, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset}}, nil
}

// Update aplica los campos presentes.
func (uc *TaskUseCase) Update(ctx context.Context, id int64, in dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	var out *entity.Task
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		t, err := repos.Tasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if in.CustomerID != nil {
			t.CustomerID = in.CustomerID
		}
		if in.UserID != nil {
			t.UserID = in.UserID
		}
		if in.Title != nil {
			t.Title = strings.TrimSpace(*in.Title)
		}
		if in.Description != nil {
			t.Description = *in.Description
		}
		if in.DueDate != nil {
			t.DueDate = in.DueDate
		}
		if in.Completed != nil {
			t.Completed = *in.Completed
		}
		if t.Title == "" {
			return domain.ErrInvalidInput
		}
		// solo se validan las referencias que cambia la petición; una tarea de un
		// cliente ya borrado sigue siendo editable.
		changed := &entity.Task{CustomerID: in.CustomerID, UserID: in.UserID}
		if err := checkTaskReferences(ctx, repos, changed); err != nil {
			return err
		}
		if err := repos.Tasks.Update(ctx, t); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entityToTaskResponse(out), nil
}

// Delete borra una tarea.
func (uc *TaskUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func checkTaskReferences(ctx context.Context, repos repository.Repos, t *entity.Task) error {
	if _, err := requireCustomer(ctx, repos.Customers, t.CustomerID); err != nil {
		return err
	}
	return requireUser(ctx, repos.Users, t.UserID)
}
