package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/advisor-crm/internal/domain"
	"github.com/jhoicas/advisor-crm/internal/domain/audit"
	"github.com/jhoicas/advisor-crm/internal/domain/entity"
	"github.com/jhoicas/advisor-crm/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

// TaskRepo tareas sobre PostgreSQL.
type TaskRepo struct {
	q Querier
}

// NewTaskRepository construye el adaptador.
func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

const taskColumns = `id, tenant_id, customer_id, user_id, title, description, due_date, completed, created_at, updated_at`

func scanTask(row pgx.Row) (*entity.Task, error) {
	var t entity.Task
	err := row.Scan(&t.ID, &t.TenantID, &t.CustomerID, &t.UserID, &t.Title, &t.Description,
		&t.DueDate, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste una tarea en el tenant de ctx.
func (r *TaskRepo) Create(ctx context.Context, t *entity.Task) error {
	tenantID, err := stamp(ctx, &t.TenantID)
	if err != nil {
		return err
	}
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO tasks (tenant_id, customer_id, user_id, title, description, due_date, completed)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at`,
			tenantID, t.CustomerID, t.UserID, t.Title, t.Description, t.DueDate, t.Completed,
		).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return writeError("insert task", err)
		}
		return recordChange(ctx, tx, tenantID, audit.ActionCreated, nil, t)
	})
}

// GetByID obtiene una tarea del tenant (nil si no existe en él).
func (r *TaskRepo) GetByID(ctx context.Context, id int64) (*entity.Task, error) {
	tenantID, err := scope(ctx)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, r.q, `WHERE id = $1 AND tenant_id = $2`, id, tenantID)
}

func (r *TaskRepo) findOne(ctx context.Context, q Querier, where string, args ...any) (*entity.Task, error) {
	t, err := scanTask(q.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks `+where, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// List tareas del tenant; pendientes primero y por fecha de vencimiento.
func (r *TaskRepo) List(ctx context.Context, f repository.TaskFilter) ([]*entity.Task, error) {
	tenantID, err := scope(ctx)
	if err != nil {
		return nil, err
	}
	limit, offset := limitOffset(f.Limit, f.Offset)

	var b strings.Builder
	b.WriteString(`SELECT ` + taskColumns + ` FROM tasks WHERE tenant_id = $1`)
	args := []any{tenantID}
	if f.CustomerID != nil {
		args = append(args, *f.CustomerID)
		fmt.Fprintf(&b, ` AND customer_id = $%d`, len(args))
	}
	if f.UserID != nil {
		args = append(args, *f.UserID)
		fmt.Fprintf(&b, ` AND user_id = $%d`, len(args))
	}
	if f.Completed != nil {
		args = append(args, *f.Completed)
		fmt.Fprintf(&b, ` AND completed = $%d`, len(args))
	}
	args = append(args, limit, offset)
	fmt.Fprintf(&b, ` ORDER BY completed, due_date NULLS LAST, id LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var list []*entity.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Update actualiza una tarea del tenant.
func (r *TaskRepo) Update(ctx context.Context, t *entity.Task) error {
	tenantID, err := checkTenant(ctx, t.TenantID)
	if err != nil {
		return err
	}
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		before, err := r.findOne(ctx, tx, `WHERE id = $1 AND tenant_id = $2 FOR UPDATE`, t.ID, tenantID)
		if err != nil {
			return err
		}
		if before == nil {
			return domain.ErrNotFound
		}
		after, err := scanTask(tx.QueryRow(ctx, `
			UPDATE tasks
			SET customer_id = $3, user_id = $4, title = $5, description = $6, due_date = $7,
			    completed = $8, updated_at = now()
			WHERE id = $1 AND tenant_id = $2
			RETURNING `+taskColumns, t.ID, tenantID,
			t.CustomerID, t.UserID, t.Title, t.Description, t.DueDate, t.Completed))
		if err != nil {
			return writeError("update task", err)
		}
		*t = *after
		return recordChange(ctx, tx, tenantID, audit.ActionUpdated, before, after)
	})
}

// Delete borra una tarea del tenant.
func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	tenantID, err := scope(ctx)
	if err != nil {
		return err
	}
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		before, err := scanTask(tx.QueryRow(ctx,
			`DELETE FROM tasks WHERE id = $1 AND tenant_id = $2 RETURNING `+taskColumns, id, tenantID))
		if err != nil {
			if isNoRows(err) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("delete task: %w", err)
		}
		return recordChange(ctx, tx, tenantID, audit.ActionDeleted, before, nil)
	})
}
