package repository

import (
	"context"

	"github.com/jhoicas/advisor-crm/internal/domain/entity"
)

// DocumentRepository puerto de persistencia para metadatos de documentos.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id int64) (*entity.Document, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*entity.Document, error)
	Delete(ctx context.Context, id int64) error
}
