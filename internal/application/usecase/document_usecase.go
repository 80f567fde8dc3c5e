package usecase

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/advisor-crm/internal/application/dto"
	"github.com/jhoicas/advisor-crm/internal/domain"
	"github.com/jhoicas/advisor-crm/internal/domain/audit"
	"github.com/jhoicas/advisor-crm/internal/domain/entity"
	"github.com/jhoicas/advisor-crm/internal/domain/repository"
)

// DocumentUseCase metadatos de documentos de clientes.
type DocumentUseCase struct {
	repo      repository.DocumentRepository
	customers repository.CustomerRepository
	tx        repository.TxRunner
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(repo repository.DocumentRepository, customers repository.CustomerRepository, tx repository.TxRunner) *DocumentUseCase {
	return &DocumentUseCase{repo: repo, customers: customers, tx: tx}
}

// Create registra un documento subido por el usuario autenticado. StorageKey es opaco (uuid).
func (uc *DocumentUseCase) Create(ctx context.Context, customerID int64, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	uploader, ok := audit.ActorFrom(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	name := filepath.Base(strings.TrimSpace(in.FileName))
	if name == "" || name == "." || name == string(filepath.Separator) || in.SizeBytes < 0 {
		return nil, domain.ErrInvalidInput
	}
	contentType := strings.TrimSpace(in.ContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	doc := &entity.Document{
		CustomerID:  customerID,
		UserID:      uploader,
		FileName:    name,
		ContentType: contentType,
		SizeBytes:   in.SizeBytes,
		StorageKey:  uuid.NewString(),
	}
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		if _, err := customerInPath(ctx, repos.Customers, customerID); err != nil {
			return err
		}
		if err := requireUser(ctx, repos.Users, &uploader); err != nil {
			return err
		}
		return repos.Documents.Create(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	return entityToDocumentResponse(doc), nil
}

// ListByCustomer documentos del cliente.
func (uc *DocumentUseCase) ListByCustomer(ctx context.Context, customerID int64) ([]dto.DocumentResponse, error) {
	if _, err := customerInPath(ctx, uc.customers, customerID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, *entityToDocumentResponse(d))
	}
	return out, nil
}

// Delete borra los metadatos del documento.
func (uc *DocumentUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}
