package usecase

import (
	"context"

	"github.com/jhoicas/advisor-crm/internal/domain"
	"github.com/jhoicas/advisor-crm/internal/domain/entity"
	"github.com/jhoicas/advisor-crm/internal/domain/repository"
)

// Las referencias se resuelven con los repositorios del tenant: una fila de otro tenant
// es indistinguible de una inexistente y produce domain.ErrInvalidReference.

func requireUser(ctx context.Context, users repository.UserRepository, id *int64) error {
	if id == nil {
		return nil
	}
	u, err := users.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrInvalidReference
	}
	return nil
}

func requireCustomer(ctx context.Context, customers repository.CustomerRepository, id *int64) (*entity.Customer, error) {
	if id == nil {
		return nil, nil
	}
	c, err := customers.GetByID(ctx, *id, false)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrInvalidReference
	}
	return c, nil
}

// customerInPath cliente de la ruta: si no existe en el tenant es 404, no 422.
func customerInPath(ctx context.Context, customers repository.CustomerRepository, id int64) (*entity.Customer, error) {
	c, err := customers.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}
