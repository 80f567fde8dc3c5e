package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/advisor-crm/internal/domain"
	"github.com/jhoicas/advisor-crm/internal/domain/audit"
	"github.com/jhoicas/advisor-crm/internal/domain/entity"
	"github.com/jhoicas/advisor-crm/internal/domain/repository"
)

var _ repository.RelationshipRepository = (*RelationshipRepo)(nil)

// RelationshipRepo relaciones entre clientes sobre PostgreSQL.
type RelationshipRepo struct {
	q Querier
}

// NewRelationshipRepository construye el adaptador.
func NewRelationshipRepository(q Querier) *RelationshipRepo {
	return &RelationshipRepo{q: q}
}

const relationshipColumns = `id, tenant_id, customer_id, related_customer_id, relationship_type, created_at`

func scanRelationship(row pgx.Row) (*entity.CustomerRelationship, error) {
	var rel entity.CustomerRelationship
	err := row.Scan(&rel.ID, &rel.TenantID, &rel.CustomerID, &rel.RelatedCustomerID, &rel.RelationshipType, &rel.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

// Create persiste la relación. Ambos extremos deben ser clientes del tenant.
func (r *RelationshipRepo) Create(ctx context.Context, rel *entity.CustomerRelationship) error {
	tenantID, err := stamp(ctx, &rel.TenantID)
	if err != nil {
		return err
	}
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO customer_relationships (tenant_id, customer_id, related_customer_id, relationship_type)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at`,
			tenantID, rel.CustomerID, rel.RelatedCustomerID, rel.RelationshipType,
		).Scan(&rel.ID, &rel.CreatedAt)
		if err != nil {
			return writeError("insert relationship", err)
		}
		return recordChange(ctx, tx, tenantID, audit.ActionCreated, nil, rel)
	})
}

// GetByID obtiene una relación del tenant (nil si no existe en él).
func (r *RelationshipRepo) GetByID(ctx context.Context, id int64) (*entity.CustomerRelationship, error) {
	tenantID, err := scope(ctx)
	if err != nil {
		return nil, err
	}
	rel, err := scanRelationship(r.q.QueryRow(ctx,
		`SELECT `+relationshipColumns+` FROM customer_relationships WHERE id = $1 AND tenant_id = $2`, id, tenantID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get relationship: %w", err)
	}
	return rel, nil
}

// ListByCustomer relaciones donde el cliente aparece en cualquiera de los extremos.
func (r *RelationshipRepo) ListByCustomer(ctx context.Context, customerID int64) ([]*entity.CustomerRelationship, error) {
	tenantID, err := scope(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, `
		SELECT `+relationshipColumns+` FROM customer_relationships
		WHERE tenant_id = $1 AND (customer_id = $2 OR related_customer_id = $2)
		ORDER BY id`, tenantID, customerID)
	if err != nil {
		return nil, fmt.Errorf("list relationships: %w", err)
	}
	defer rows.Close()

	var list []*entity.CustomerRelationship
	for rows.Next() {
		rel, err := scanRelationship(rows)
		if err != nil {
			return nil, fmt.Errorf("scan relationship: %w", err)
		}
		list = append(list, rel)
	}
	return list, rows.Err()
}

// Delete borra la relación.
func (r *RelationshipRepo) Delete(ctx context.Context, id int64) error {
	tenantID, err := scope(ctx)
	if err != nil {
		return err
	}
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		before, err := scanRelationship(tx.QueryRow(ctx,
			`DELETE FROM customer_relationships WHERE id = $1 AND tenant_id = $2 RETURNING `+relationshipColumns, id, tenantID))
		if err != nil {
			if isNoRows(err) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("delete relationship: %w", err)
		}
		return recordChange(ctx, tx, tenantID, audit.ActionDeleted, before, nil)
	})
}
