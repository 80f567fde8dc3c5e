package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/advisor-crm/internal/domain/audit"
	"github.com/jhoicas/advisor-crm/internal/domain/entity"
	"github.com/jhoicas/advisor-crm/internal/domain/repository"
)

var _ repository.ChangeLogRepository = (*ChangeLogRepo)(nil)

// recordChange inserta una fila de change_logs con q, que debe ser la transacción de la mutación.
// before es nil en altas y after es nil en bajas físicas.
func recordChange(ctx context.Context, q Querier, tenantID int64, action audit.Action, before, after audit.Auditable) error {
	subject := after
	if subject == nil {
		subject = before
	}
	if subject == nil {
		return fmt.Errorf("change log: sin entidad")
	}

	beforeJSON, err := snapshot(before)
	if err != nil {
		return err
	}
	afterJSON, err := snapshot(after)
	if err != nil {
		return err
	}

	var actor *int64
	if id, ok := audit.ActorFrom(ctx); ok {
		actor = &id
	}

	_, err = q.Exec(ctx, `
		INSERT INTO change_logs (tenant_id, entity_name, entity_id, action, actor_id, before, after)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		tenantID, subject.AuditName(), subject.AuditID(), string(action), actor, beforeJSON, afterJSON,
	)
	if err != nil {
		return fmt.Errorf("insert change log: %w", err)
	}
	return nil
}

func snapshot(a audit.Auditable) (any, error) {
	if a == nil {
		return nil, nil
	}
	b, err := a.AuditSnapshot()
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", a.AuditName(), err)
	}
	return b, nil
}

// ChangeLogRepo lectura del change log del tenant.
type ChangeLogRepo struct {
	q Querier
}

// NewChangeLogRepository construye el adaptador.
func NewChangeLogRepository(q Querier) *ChangeLogRepo {
	return &ChangeLogRepo{q: q}
}

// List devuelve los cambios del tenant, más recientes primero.
func (r *ChangeLogRepo) List(ctx context.Context, f repository.ChangeLogFilter) ([]*entity.ChangeLog, error) {
	tenantID, err := scope(ctx)
	if err != nil {
		return nil, err
	}
	limit, offset := limitOffset(f.Limit, f.Offset)

	query := `
		SELECT id, tenant_id, entity_name, entity_id, action, actor_id, before, after, created_at
		FROM change_logs
		WHERE tenant_id = $1
		  AND ($2::text = '' OR entity_name = $2)
		  AND ($3::bigint IS NULL OR entity_id = $3)
		ORDER BY created_at DESC, id DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, tenantID, f.EntityName, f.EntityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list change logs: %w", err)
	}
	defer rows.Close()

	var list []*entity.ChangeLog
	for rows.Next() {
		var (
			c             entity.ChangeLog
			action        string
			before, after []byte
		)
		if err := rows.Scan(&c.ID, &c.TenantID, &c.EntityName, &c.EntityID, &action, &c.ActorID, &before, &after, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan change log: %w", err)
		}
		c.Action = audit.Action(action)
		c.Before = before
		c.After = after
		list = append(list, &c)
	}
	return list, rows.Err()
}
