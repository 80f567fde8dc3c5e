package entity

import (
	"time"

	"github.com/jhoicas/advisor-crm/internal/domain/audit"
)

// Document metadatos de un archivo asociado a un cliente. Los bytes viven fuera
// de la base (StorageKey).
type Document struct {
	ID          int64     `json:"id"`
	TenantID    int64     `json:"tenant_id"`
	CustomerID  int64     `json:"customer_id"`
	UserID      int64     `json:"user_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	StorageKey  string    `json:"storage_key"`
	CreatedAt   time.Time `json:"created_at"`
}

var _ audit.Auditable = (*Document)(nil)

func (d *Document) AuditName() string              { return "Document" }
func (d *Document) AuditID() int64                 { return d.ID }
func (d *Document) AuditSnapshot() ([]byte, error) { return audit.Snapshot(d) }
