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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador de persistencia para clientes.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, tenant_id, advisor_id, first_name, last_name, email, phone, notes, portfolio_value, deleted, created_at, updated_at`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(&c.ID, &c.TenantID, &c.AdvisorID, &c.FirstName, &c.LastName, &c.Email,
		&c.Phone, &c.Notes, &c.PortfolioValue, &c.Deleted, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un cliente en el tenant de ctx.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	tenantID, err := stamp(ctx, &c.TenantID)
	if err != nil {
		return err
	}
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		query := `
			INSERT INTO customers (tenant_id, advisor_id, first_name, last_name, email, phone, notes, portfolio_value)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, deleted, created_at, updated_at`
		err := tx.QueryRow(ctx, query,
			tenantID, c.AdvisorID, c.FirstName, c.LastName, c.Email, c.Phone, c.Notes, c.PortfolioValue,
		).Scan(&c.ID, &c.Deleted, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return writeError("insert customer", err)
		}
		return recordChange(ctx, tx, tenantID, audit.ActionCreated, nil, c)
	})
}

// GetByID obtiene un cliente del tenant (nil si no existe en él o está borrado).
func (r *CustomerRepo) GetByID(ctx context.Context, id int64, includeDeleted bool) (*entity.Customer, error) {
	tenantID, err := scope(ctx)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, r.q, id, tenantID, includeDeleted, false)
}

func (r *CustomerRepo) findOne(ctx context.Context, q Querier, id, tenantID int64, includeDeleted, forUpdate bool) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 AND tenant_id = $2`
	if !includeDeleted {
		query += ` AND NOT deleted`
	}
	if forUpdate {
		query += ` FOR UPDATE`
	}
	c, err := scanCustomer(q.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// List clientes del tenant con filtros opcionales.
func (r *CustomerRepo) List(ctx context.Context, f repository.CustomerFilter) ([]*entity.Customer, error) {
	tenantID, err := scope(ctx)
	if err != nil {
		return nil, err
	}
	limit, offset := limitOffset(f.Limit, f.Offset)

	var b strings.Builder
	b.WriteString(`SELECT ` + customerColumns + ` FROM customers WHERE tenant_id = $1`)
	args := []any{tenantID}
	if !f.IncludeDeleted {
		b.WriteString(` AND NOT deleted`)
	}
	if f.AdvisorID != nil {
		args = append(args, *f.AdvisorID)
		fmt.Fprintf(&b, ` AND advisor_id = $%d`, len(args))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+escapeLike(s)+"%")
		n := len(args)
		fmt.Fprintf(&b, ` AND (first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)`, n, n, n)
	}
	args = append(args, limit, offset)
	fmt.Fprintf(&b, ` ORDER BY last_name, first_name, id LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza un cliente no borrado del tenant.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	tenantID, err := checkTenant(ctx, c.TenantID)
	if err != nil {
		return err
	}
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		before, err := r.findOne(ctx, tx, c.ID, tenantID, false, true)
		if err != nil {
			return err
		}
		if before == nil {
			return domain.ErrNotFound
		}
		query := `
			UPDATE customers
			SET advisor_id = $3, first_name = $4, last_name = $5, email = $6, phone = $7, notes = $8,
			    portfolio_value = $9, updated_at = now()
			WHERE id = $1 AND tenant_id = $2 AND NOT deleted
			RETURNING ` + customerColumns
		after, err := scanCustomer(tx.QueryRow(ctx, query, c.ID, tenantID,
			c.AdvisorID, c.FirstName, c.LastName, c.Email, c.Phone, c.Notes, c.PortfolioValue))
		if err != nil {
			return writeError("update customer", err)
		}
		*c = *after
		return recordChange(ctx, tx, tenantID, audit.ActionUpdated, before, after)
	})
}

// SoftDelete marca el cliente como borrado; sus documentos y relaciones se conservan.
func (r *CustomerRepo) SoftDelete(ctx context.Context, id int64) error {
	tenantID, err := scope(ctx)
	if err != nil {
		return err
	}
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		before, err := r.findOne(ctx, tx, id, tenantID, false, true)
		if err != nil {
			return err
		}
		if before == nil {
			return domain.ErrNotFound
		}
		after, err := scanCustomer(tx.QueryRow(ctx, `
			UPDATE customers SET deleted = true, updated_at = now()
			WHERE id = $1 AND tenant_id = $2
			RETURNING `+customerColumns, id, tenantID))
		if err != nil {
			return fmt.Errorf("soft delete customer: %w", err)
		}
		return recordChange(ctx, tx, tenantID, audit.ActionDeleted, before, after)
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
