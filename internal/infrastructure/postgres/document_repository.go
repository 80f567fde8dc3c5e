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

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo metadatos de documentos sobre PostgreSQL.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador.
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, tenant_id, customer_id, user_id, file_name, content_type, size_bytes, storage_key, created_at`

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	err := row.Scan(&d.ID, &d.TenantID, &d.CustomerID, &d.UserID, &d.FileName, &d.ContentType,
		&d.SizeBytes, &d.StorageKey, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create persiste los metadatos. Cliente o usuario de otro tenant => ErrInvalidReference (FK compuesto).
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	tenantID, err := stamp(ctx, &d.TenantID)
	if err != nil {
		return err
	}
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO documents (tenant_id, customer_id, user_id, file_name, content_type, size_bytes, storage_key)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at`,
			tenantID, d.CustomerID, d.UserID, d.FileName, d.ContentType, d.SizeBytes, d.StorageKey,
		).Scan(&d.ID, &d.CreatedAt)
		if err != nil {
			return writeError("insert document", err)
		}
		return recordChange(ctx, tx, tenantID, audit.ActionCreated, nil, d)
	})
}

// GetByID obtiene un documento del tenant (nil si no existe en él).
func (r *DocumentRepo) GetByID(ctx context.Context, id int64) (*entity.Document, error) {
	tenantID, err := scope(ctx)
	if err != nil {
		return nil, err
	}
	d, err := scanDocument(r.q.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = $1 AND tenant_id = $2`, id, tenantID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

// ListByCustomer documentos de un cliente, más recientes primero.
func (r *DocumentRepo) ListByCustomer(ctx context.Context, customerID int64) ([]*entity.Document, error) {
	tenantID, err := scope(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, `
		SELECT `+documentColumns+` FROM documents
		WHERE customer_id = $1 AND tenant_id = $2
		ORDER BY created_at DESC, id DESC`, customerID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var list []*entity.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Delete borra los metadatos del documento.
func (r *DocumentRepo) Delete(ctx context.Context, id int64) error {
	tenantID, err := scope(ctx)
	if err != nil {
		return err
	}
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		before, err := scanDocument(tx.QueryRow(ctx,
			`DELETE FROM documents WHERE id = $1 AND tenant_id = $2 RETURNING `+documentColumns, id, tenantID))
		if err != nil {
			if isNoRows(err) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("delete document: %w", err)
		}
		return recordChange(ctx, tx, tenantID, audit.ActionDeleted, before, nil)
	})
}
