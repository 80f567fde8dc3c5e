package dto

import "time"

// RegisterRequest entrada para registro. El campo tenantId del cuerpo lo consume la
// resolución de tenant cuando el host no identifica a ninguno.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// LoginRequest entrada para login; el tenant lo aporta el dominio.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token JWT con el claim tenantId y el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest alta administrativa de usuarios. Permissions vacío = permisos de usuario.
type CreateUserRequest struct {
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Phone       string   `json:"phone"`
	Permissions []string `json:"permissions"`
}

// UpdateUserRequest campos opcionales de perfil.
type UpdateUserRequest struct {
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Active    *bool   `json:"active"`
}

// UpdatePermissionsRequest nombres de permisos o máscara entera (Mask gana si viene).
type UpdatePermissionsRequest struct {
	Names []string `json:"names"`
	Mask  *uint64  `json:"mask"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          int64     `json:"id"`
	TenantID    int64     `json:"tenant_id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Phone       string    `json:"phone"`
	Active      bool      `json:"active"`
	Permissions uint64    `json:"permissions"`
	Grants      []string  `json:"grants"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
