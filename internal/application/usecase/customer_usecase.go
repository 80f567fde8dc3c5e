package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/advisor-crm/internal/application/dto"
	"github.com/jhoicas/advisor-crm/internal/domain"
	"github.com/jhoicas/advisor-crm/internal/domain/entity"
	"github.com/jhoicas/advisor-crm/internal/domain/repository"
)

// CustomerUseCase reglas de negocio de clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
	tx   repository.TxRunner
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, tx repository.TxRunner) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, tx: tx}
}

// Create crea un cliente. El asesor, si viene, debe ser un usuario del mismo tenant.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	c := &entity.Customer{
		AdvisorID: in.AdvisorID,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     strings.TrimSpace(in.Phone),
		Notes:     in.Notes,
	}
	if in.PortfolioValue != nil {
		c.PortfolioValue = *in.PortfolioValue
	}
	if err := validateCustomer(c); err != nil {
		return nil, err
	}
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		if err := requireUser(ctx, repos.Users, c.AdvisorID); err != nil {
			return err
		}
		return repos.Customers.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return entityToCustomerResponse(c), nil
}

// GetByID obtiene un cliente no borrado del tenant (nil si no existe).
func (uc *CustomerUseCase) GetByID(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	return entityToCustomerResponse(c), nil
}

// List lista clientes del tenant.
func (uc *CustomerUseCase) List(ctx context.Context, f dto.CustomerFilter) (*dto.CustomerListResponse, error) {
	f.DefaultPage()
	list, err := uc.repo.List(ctx, repository.CustomerFilter{
		AdvisorID:      f.AdvisorID,
		Search:         f.Search,
		IncludeDeleted: f.IncludeDeleted,
		Limit:          f.Limit,
		Offset:         f.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCustomerResponse(c))
	}
	return &dto.CustomerListResponse{Items: items, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset}}, nil
}

// Update aplica los campos presentes.
func (uc *CustomerUseCase) Update(ctx context.Context, id int64, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	var out *entity.Customer
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		c, err := customerInPath(ctx, repos.Customers, id)
		if err != nil {
			return err
		}
		switch {
		case in.ClearAdvisor:
			c.AdvisorID = nil
		case in.AdvisorID != nil:
			if err := requireUser(ctx, repos.Users, in.AdvisorID); err != nil {
				return err
			}
			c.AdvisorID = in.AdvisorID
		}
		if in.FirstName != nil {
			c.FirstName = strings.TrimSpace(*in.FirstName)
		}
		if in.LastName != nil {
			c.LastName = strings.TrimSpace(*in.LastName)
		}
		if in.Email != nil {
			c.Email = strings.ToLower(strings.TrimSpace(*in.Email))
		}
		if in.Phone != nil {
			c.Phone = strings.TrimSpace(*in.Phone)
		}
		if in.Notes != nil {
			c.Notes = *in.Notes
		}
		if in.PortfolioValue != nil {
			c.PortfolioValue = *in.PortfolioValue
		}
		if err := validateCustomer(c); err != nil {
			return err
		}
		if err := repos.Customers.Update(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entityToCustomerResponse(out), nil
}

// Delete borrado lógico.
func (uc *CustomerUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.SoftDelete(ctx, id)
}

func validateCustomer(c *entity.Customer) error {
	if c.FirstName == "" {
		return domain.ErrInvalidInput
	}
	if c.Email != "" {
		if _, err := NormalizeEmail(c.Email); err != nil {
			return err
		}
	}
	if c.PortfolioValue.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}
