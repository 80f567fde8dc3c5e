package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/advisor-crm/internal/domain"
	"github.com/jhoicas/advisor-crm/internal/domain/audit"
	"github.com/jhoicas/advisor-crm/internal/domain/entity"
	"github.com/jhoicas/advisor-crm/internal/domain/permission"
	"github.com/jhoicas/advisor-crm/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, tenant_id, email, password_hash, first_name, last_name, phone, active, permissions, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u    entity.User
		mask int64
	)
	err := row.Scan(&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Phone, &u.Active, &mask, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Permissions = permission.Permission(mask)
	return &u, nil
}

// Create persiste un nuevo usuario en el tenant de ctx.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	tenantID, err := stamp(ctx, &user.TenantID)
	if err != nil {
		return err
	}
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		query := `
			INSERT INTO users (tenant_id, email, password_hash, first_name, last_name, phone, active, permissions)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at, updated_at`
		err := tx.QueryRow(ctx, query,
			tenantID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Phone,
			user.Active, int64(user.Permissions),
		).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrEmailAlreadyExists
			}
			return writeError("insert user", err)
		}
		return recordChange(ctx, tx, tenantID, audit.ActionCreated, nil, user)
	})
}

// GetByID obtiene un usuario del tenant (nil si no existe en él).
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	tenantID, err := scope(ctx)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, r.q, `WHERE id = $1 AND tenant_id = $2`, id, tenantID)
}

// GetByEmail busca por email sin distinguir mayúsculas, solo dentro del tenant.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	tenantID, err := scope(ctx)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, r.q, `WHERE lower(email) = lower($1) AND tenant_id = $2`, email, tenantID)
}

func (r *UserRepo) findOne(ctx context.Context, q Querier, where string, args ...any) (*entity.User, error) {
	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users `+where, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// List usuarios del tenant ordenados por ID.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	tenantID, err := scope(ctx)
	if err != nil {
		return nil, err
	}
	limit, offset = limitOffset(limit, offset)
	rows, err := r.q.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE tenant_id = $1 ORDER BY id LIMIT $2 OFFSET $3`,
		tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Update actualiza datos de perfil, estado y contraseña. Los permisos van por UpdatePermissions.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	tenantID, err := checkTenant(ctx, user.TenantID)
	if err != nil {
		return err
	}
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		before, err := r.findOne(ctx, tx, `WHERE id = $1 AND tenant_id = $2 FOR UPDATE`, user.ID, tenantID)
		if err != nil {
			return err
		}
		if before == nil {
			return domain.ErrNotFound
		}
		query := `
			UPDATE users
			SET email = $3, password_hash = $4, first_name = $5, last_name = $6, phone = $7,
			    active = $8, updated_at = now()
			WHERE id = $1 AND tenant_id = $2
			RETURNING ` + userColumns
		after, err := scanUser(tx.QueryRow(ctx, query, user.ID, tenantID,
			user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Phone, user.Active))
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrEmailAlreadyExists
			}
			return writeError("update user", err)
		}
		*user = *after
		return recordChange(ctx, tx, tenantID, audit.ActionUpdated, before, after)
	})
}

// UpdatePermissions reemplaza la máscara de permisos del usuario.
func (r *UserRepo) UpdatePermissions(ctx context.Context, id int64, mask permission.Permission) (*entity.User, error) {
	tenantID, err := scope(ctx)
	if err != nil {
		return nil, err
	}
	var updated *entity.User
	err = inTx(ctx, r.q, func(tx pgx.Tx) error {
		before, err := r.findOne(ctx, tx, `WHERE id = $1 AND tenant_id = $2 FOR UPDATE`, id, tenantID)
		if err != nil {
			return err
		}
		if before == nil {
			return domain.ErrNotFound
		}
		after, err := scanUser(tx.QueryRow(ctx, `
			UPDATE users SET permissions = $3, updated_at = now()
			WHERE id = $1 AND tenant_id = $2
			RETURNING `+userColumns, id, tenantID, int64(mask)))
		if err != nil {
			return fmt.Errorf("update permissions: %w", err)
		}
		updated = after
		return recordChange(ctx, tx, tenantID, audit.ActionUpdated, before, after)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete borra el usuario. Si aún asesora clientes o tiene tareas o documentos => ErrConflict.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	tenantID, err := scope(ctx)
	if err != nil {
		return err
	}
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		before, err := scanUser(tx.QueryRow(ctx,
			`DELETE FROM users WHERE id = $1 AND tenant_id = $2 RETURNING `+userColumns, id, tenantID))
		if err != nil {
			if isNoRows(err) {
				return domain.ErrNotFound
			}
			if isForeignKeyViolation(err) {
				return fmt.Errorf("delete user %d: %w", id, domain.ErrConflict)
			}
			return fmt.Errorf("delete user: %w", err)
		}
		return recordChange(ctx, tx, tenantID, audit.ActionDeleted, before, nil)
	})
}
