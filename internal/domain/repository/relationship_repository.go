package repository

import (
	"context"

	"github.com/jhoicas/advisor-crm/internal/domain/entity"
)

// RelationshipRepository puerto de persistencia para CustomerRelationship.
type RelationshipRepository interface {
	Create(ctx context.Context, rel *entity.CustomerRelationship) error
	GetByID(ctx context.Context, id int64) (*entity.CustomerRelationship, error)
	// ListByCustomer devuelve las relaciones donde el cliente aparece en cualquier extremo.
	ListByCustomer(ctx context.Context, customerID int64) ([]*entity.CustomerRelationship, error)
	Delete(ctx context.Context, id int64) error
}
