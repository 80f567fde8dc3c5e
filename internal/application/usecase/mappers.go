package usecase

import (
	"github.com/jhoicas/advisor-crm/internal/application/dto"
	"github.com/jhoicas/advisor-crm/internal/domain/entity"
)

func entityToTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	if t == nil {
		return nil
	}
	return &dto.TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Domain:    t.Domain,
		HasLogo:   len(t.Logo) > 0,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// EntityToUserResponse mapea un usuario a su salida pública (sin hash).
func EntityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	grants := u.Permissions.Names()
	if grants == nil {
		grants = []string{}
	}
	return &dto.UserResponse{
		ID:          u.ID,
		TenantID:    u.TenantID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Phone:       u.Phone,
		Active:      u.Active,
		Permissions: uint64(u.Permissions),
		Grants:      grants,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func entityToCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:             c.ID,
		TenantID:       c.TenantID,
		AdvisorID:      c.AdvisorID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		Phone:          c.Phone,
		Notes:          c.Notes,
		PortfolioValue: c.PortfolioValue,
		Deleted:        c.Deleted,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func entityToRelationshipResponse(r *entity.CustomerRelationship) *dto.RelationshipResponse {
	if r == nil {
		return nil
	}
	return &dto.RelationshipResponse{
		ID:                r.ID,
		CustomerID:        r.CustomerID,
		RelatedCustomerID: r.RelatedCustomerID,
		RelationshipType:  r.RelationshipType,
		CreatedAt:         r.CreatedAt,
	}
}

func entityToDocumentResponse(d *entity.Document) *dto.DocumentResponse {
	if d == nil {
		return nil
	}
	return &dto.DocumentResponse{
		ID:          d.ID,
		CustomerID:  d.CustomerID,
		UserID:      d.UserID,
		FileName:    d.FileName,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		StorageKey:  d.StorageKey,
		CreatedAt:   d.CreatedAt,
	}
}

func entityToTaskResponse(t *entity.Task) *dto.TaskResponse {
	if t == nil {
		return nil
	}
	return &dto.TaskResponse{
		ID:          t.ID,
		CustomerID:  t.CustomerID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func entityToChangeLogResponse(c *entity.ChangeLog) dto.ChangeLogResponse {
	return dto.ChangeLogResponse{
		ID:         c.ID,
		EntityName: c.EntityName,
		EntityID:   c.EntityID,
		Action:     string(c.Action),
		ActorID:    c.ActorID,
		Before:     c.Before,
		After:      c.After,
		CreatedAt:  c.CreatedAt,
	}
}
