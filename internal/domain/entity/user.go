package entity

import (
	"time"

	"github.com/jhoicas/advisor-crm/internal/domain/audit"
	"github.com/jhoicas/advisor-crm/internal/domain/permission"
)

// User representa un asesor/usuario. Pertenece a un único tenant; el mismo email en
// dos tenants son dos filas distintas.
type User struct {
	ID           int64                 `json:"id"`
	TenantID     int64                 `json:"tenant_id"`
	Email        string                `json:"email"`
	PasswordHash string                `json:"-"` // bcrypt, nunca se serializa
	FirstName    string                `json:"first_name"`
	LastName     string                `json:"last_name"`
	Phone        string                `json:"phone"`
	Active       bool                  `json:"active"`
	Permissions  permission.Permission `json:"permissions"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

var _ audit.Auditable = (*User)(nil)

func (u *User) AuditName() string              { return "User" }
func (u *User) AuditID() int64                 { return u.ID }
func (u *User) AuditSnapshot() ([]byte, error) { return audit.Snapshot(u) }

// FullName nombre para mostrar.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Email
	case u.LastName == "":
		return u.FirstName
	case u.FirstName == "":
		return u.LastName
	}
	return u.FirstName + " " + u.LastName
}
