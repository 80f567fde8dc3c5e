package entity

import (
	"time"

	"github.com/jhoicas/advisor-crm/internal/domain/audit"
)

// Task tarea de seguimiento, opcionalmente ligada a un cliente y asignada a un usuario.
type Task struct {
	ID          int64      `json:"id"`
	TenantID    int64      `json:"tenant_id"`
	CustomerID  *int64     `json:"customer_id,omitempty"`
	UserID      *int64     `json:"user_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

var _ audit.Auditable = (*Task)(nil)

func (t *Task) AuditName() string              { return "Task" }
func (t *Task) AuditID() int64                 { return t.ID }
func (t *Task) AuditSnapshot() ([]byte, error) { return audit.Snapshot(t) }
