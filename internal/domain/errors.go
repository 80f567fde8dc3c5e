package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Multi-tenant.
	ErrTenantNotResolved = errors.New("tenant no resuelto o inválido")
	ErrTenantMismatch    = errors.New("el tenant de la entidad no coincide con el de la petición")
	ErrInvalidReference  = errors.New("referencia a un recurso inexistente en este tenant")
)
