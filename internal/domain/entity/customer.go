package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/advisor-crm/internal/domain/audit"
)

// Customer representa un cliente del tenant. AdvisorID (opcional) apunta a un User
// del mismo tenant. El borrado es lógico (Deleted).
type Customer struct {
	ID             int64           `json:"id"`
	TenantID       int64           `json:"tenant_id"`
	AdvisorID      *int64          `json:"advisor_id,omitempty"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Notes          string          `json:"notes"`
	PortfolioValue decimal.Decimal `json:"portfolio_value"`
	Deleted        bool            `json:"deleted"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

var _ audit.Auditable = (*Customer)(nil)

func (c *Customer) AuditName() string              { return "Customer" }
func (c *Customer) AuditID() int64                 { return c.ID }
func (c *Customer) AuditSnapshot() ([]byte, error) { return audit.Snapshot(c) }

// FullName nombre para mostrar.
func (c *Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
