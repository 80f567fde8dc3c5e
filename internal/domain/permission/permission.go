// Package permission modela las capacidades de un usuario como un bitmask.
//
// Cada bit es una capacidad independiente. Los grupos predefinidos (User, Admin)
// son uniones de bits con nombre que se usan como permisos por defecto; no son
// roles exclusivos: la máscara real de un usuario puede ser cualquier combinación.
package permission

import (
	"fmt"
	"math/bits"
	"sort"
	"strings"
)

// Permission es un conjunto de capacidades codificado como bitmask.
type Permission uint64

const (
	ViewCustomers Permission = 1 << iota
	CreateCustomers
	EditCustomers
	DeleteCustomers
	ViewDocuments
	UploadDocuments
	DeleteDocuments
	ViewUsers
	CreateUsers
	EditUsers
	DeleteUsers
	ManagePermissions
)

// None no concede ninguna capacidad.
const None Permission = 0

// Uniones predefinidas, derivadas de los bits con nombre.
const (
	User  = ViewCustomers | CreateCustomers | ViewDocuments | UploadDocuments
	Admin = ViewCustomers | CreateCustomers | EditCustomers | DeleteCustomers |
		ViewDocuments | UploadDocuments | DeleteDocuments |
		ViewUsers | CreateUsers | EditUsers | DeleteUsers | ManagePermissions
)

var names = map[Permission]string{
	ViewCustomers:     "ViewCustomers",
	CreateCustomers:   "CreateCustomers",
	EditCustomers:     "EditCustomers",
	DeleteCustomers:   "DeleteCustomers",
	ViewDocuments:     "ViewDocuments",
	UploadDocuments:   "UploadDocuments",
	DeleteDocuments:   "DeleteDocuments",
	ViewUsers:         "ViewUsers",
	CreateUsers:       "CreateUsers",
	EditUsers:         "EditUsers",
	DeleteUsers:       "DeleteUsers",
	ManagePermissions: "ManagePermissions",
}

// Has indica si mask contiene todos los bits de flag (admite conjuntos compuestos).
func Has(mask, flag Permission) bool {
	return mask&flag == flag
}

// Has es el equivalente en método de Has(p, flag).
func (p Permission) Has(flag Permission) bool {
	return Has(p, flag)
}

// Union devuelve p con los bits de others añadidos.
func (p Permission) Union(others ...Permission) Permission {
	for _, o := range others {
		p |= o
	}
	return p
}

// Without devuelve p sin los bits de flag.
func (p Permission) Without(flag Permission) Permission {
	return p &^ flag
}

// IsSubsetOf indica si todos los bits de p están en other.
func (p Permission) IsSubsetOf(other Permission) bool {
	return p&other == p
}

// Valid indica si p solo contiene bits conocidos.
func (p Permission) Valid() bool {
	return p&^Admin == 0
}

// Count devuelve el número de capacidades concedidas.
func (p Permission) Count() int {
	return bits.OnesCount64(uint64(p))
}

// Names devuelve los nombres de los bits activos, ordenados por valor.
func (p Permission) Names() []string {
	flags := All()
	out := make([]string, 0, len(flags))
	for _, f := range flags {
		if p.Has(f) {
			out = append(out, names[f])
		}
	}
	return out
}

// String implementa fmt.Stringer ("ViewCustomers|CreateCustomers").
func (p Permission) String() string {
	if p == None {
		return "None"
	}
	return strings.Join(p.Names(), "|")
}

// All devuelve todos los bits con nombre, ordenados por valor.
func All() []Permission {
	out := make([]Permission, 0, len(names))
	for f := range names {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Parse convierte una lista de nombres (sensible a mayúsculas no) en una máscara.
// Acepta también los nombres de las uniones "User" y "Admin".
func Parse(list []string) (Permission, error) {
	var mask Permission
	for _, raw := range list {
		name := strings.TrimSpace(raw)
		switch {
		case strings.EqualFold(name, "User"):
			mask |= User
			continue
		case strings.EqualFold(name, "Admin"):
			mask |= Admin
			continue
		}
		flag, ok := lookup(name)
		if !ok {
			return None, fmt.Errorf("permiso desconocido: %q", name)
		}
		mask |= flag
	}
	return mask, nil
}

func lookup(name string) (Permission, bool) {
	for f, n := range names {
		if strings.EqualFold(n, name) {
			return f, true
		}
	}
	return None, false
}
