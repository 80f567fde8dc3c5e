package dto

import "time"

// CreateDocumentRequest metadatos del documento; los bytes no pasan por esta API.
type CreateDocumentRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

// DocumentResponse salida de un documento.
type DocumentResponse struct {
	ID          int64     `json:"id"`
	CustomerID  int64     `json:"customer_id"`
	UserID      int64     `json:"user_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	StorageKey  string    `json:"storage_key"`
	CreatedAt   time.Time `json:"created_at"`
}
