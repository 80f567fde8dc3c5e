package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/advisor-crm/internal/application/dto"
	"github.com/jhoicas/advisor-crm/internal/domain"
	"github.com/jhoicas/advisor-crm/internal/domain/entity"
	"github.com/jhoicas/advisor-crm/internal/domain/repository"
)

// RelationshipUseCase vínculos entre clientes del mismo tenant.
type RelationshipUseCase struct {
	repo      repository.RelationshipRepository
	customers repository.CustomerRepository
	tx        repository.TxRunner
}

// NewRelationshipUseCase construye el caso de uso.
func NewRelationshipUseCase(repo repository.RelationshipRepository, customers repository.CustomerRepository, tx repository.TxRunner) *RelationshipUseCase {
	return &RelationshipUseCase{repo: repo, customers: customers, tx: tx}
}

// Create vincula customerID con in.RelatedCustomerID.
func (uc *RelationshipUseCase) Create(ctx context.Context, customerID int64, in dto.CreateRelationshipRequest) (*dto.RelationshipResponse, error) {
	kind := strings.ToLower(strings.TrimSpace(in.RelationshipType))
	if kind == "" || in.RelatedCustomerID <= 0 || in.RelatedCustomerID == customerID {
		return nil, domain.ErrInvalidInput
	}
	rel := &entity.CustomerRelationship{
		CustomerID:        customerID,
		RelatedCustomerID: in.RelatedCustomerID,
		RelationshipType:  kind,
	}
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		if _, err := customerInPath(ctx, repos.Customers, customerID); err != nil {
			return err
		}
		if _, err := requireCustomer(ctx, repos.Customers, &in.RelatedCustomerID); err != nil {
			return err
		}
		return repos.Relationships.Create(ctx, rel)
	})
	if err != nil {
		return nil, err
	}
	return entityToRelationshipResponse(rel), nil
}

// ListByCustomer relaciones del cliente.
func (uc *RelationshipUseCase) ListByCustomer(ctx context.Context, customerID int64) ([]dto.RelationshipResponse, error) {
	if _, err := customerInPath(ctx, uc.customers, customerID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RelationshipResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *entityToRelationshipResponse(r))
	}
	return out, nil
}

// Delete borra la relación.
func (uc *RelationshipUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}
