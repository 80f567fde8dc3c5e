package entity

import (
	"time"

	"github.com/jhoicas/advisor-crm/internal/domain/audit"
)

// CustomerRelationship vínculo entre dos clientes del mismo tenant (cónyuge, socio, ...).
type CustomerRelationship struct {
	ID                int64     `json:"id"`
	TenantID          int64     `json:"tenant_id"`
	CustomerID        int64     `json:"customer_id"`
	RelatedCustomerID int64     `json:"related_customer_id"`
	RelationshipType  string    `json:"relationship_type"`
	CreatedAt         time.Time `json:"created_at"`
}

var _ audit.Auditable = (*CustomerRelationship)(nil)

func (r *CustomerRelationship) AuditName() string              { return "CustomerRelationship" }
func (r *CustomerRelationship) AuditID() int64                 { return r.ID }
func (r *CustomerRelationship) AuditSnapshot() ([]byte, error) { return audit.Snapshot(r) }
