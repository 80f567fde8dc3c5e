package dto

import "time"

// CreateTenantRequest entrada para crear un tenant. Sin domain se deriva del nombre.
type CreateTenantRequest struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
	Logo   []byte `json:"logo,omitempty"` // base64 en JSON
}

// TenantResponse salida de un tenant.
type TenantResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Domain    string    `json:"domain"`
	HasLogo   bool      `json:"has_logo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TenantListResponse tenant resuelto por dominio más el directorio paginado.
type TenantListResponse struct {
	Current *TenantResponse  `json:"current,omitempty"`
	Items   []TenantResponse `json:"items"`
	Page    PageResponse     `json:"page"`
}
