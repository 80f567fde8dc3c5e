package entity

import "time"

// Tenant representa una organización aislada del sistema (multi-tenant).
// Domain es la clave de resolución por host y se compara sin distinguir mayúsculas.
type Tenant struct {
	ID        int64
	Name      string
	Domain    string
	Logo      []byte // opcional
	CreatedAt time.Time
	UpdatedAt time.Time
}
