package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest entrada para crear un cliente.
type CreateCustomerRequest struct {
	AdvisorID      *int64           `json:"advisor_id"`
	FirstName      string           `json:"first_name"`
	LastName       string           `json:"last_name"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	Notes          string           `json:"notes"`
	PortfolioValue *decimal.Decimal `json:"portfolio_value" swaggertype:"string"`
}

// UpdateCustomerRequest campos opcionales; ClearAdvisor desasigna el asesor.
type UpdateCustomerRequest struct {
	AdvisorID      *int64           `json:"advisor_id"`
	ClearAdvisor   bool             `json:"clear_advisor"`
	FirstName      *string          `json:"first_name"`
	LastName       *string          `json:"last_name"`
	Email          *string          `json:"email"`
	Phone          *string          `json:"phone"`
	Notes          *string          `json:"notes"`
	PortfolioValue *decimal.Decimal `json:"portfolio_value" swaggertype:"string"`
}

// CustomerFilter query del listado.
type CustomerFilter struct {
	PageRequest
	AdvisorID      *int64
	Search         string
	IncludeDeleted bool
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID             int64           `json:"id"`
	TenantID       int64           `json:"tenant_id"`
	AdvisorID      *int64          `json:"advisor_id,omitempty"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Notes          string          `json:"notes"`
	PortfolioValue decimal.Decimal `json:"portfolio_value" swaggertype:"string"`
	Deleted        bool            `json:"deleted"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateRelationshipRequest vínculo desde el cliente de la ruta hacia RelatedCustomerID.
type CreateRelationshipRequest struct {
	RelatedCustomerID int64  `json:"related_customer_id"`
	RelationshipType  string `json:"relationship_type"`
}

// RelationshipResponse salida de una relación.
type RelationshipResponse struct {
	ID                int64     `json:"id"`
	CustomerID        int64     `json:"customer_id"`
	RelatedCustomerID int64     `json:"related_customer_id"`
	RelationshipType  string    `json:"relationship_type"`
	CreatedAt         time.Time `json:"created_at"`
}
