package postgres

import (
	"context"

	"github.com/jhoicas/advisor-crm/internal/domain"
	"github.com/jhoicas/advisor-crm/internal/domain/tenant"
)

// scope devuelve el tenant de la petición; toda consulta sobre tablas con tenant lo usa.
func scope(ctx context.Context) (int64, error) {
	return tenant.IDFrom(ctx)
}

// stamp fija el tenant de la petición en una entidad nueva. Un valor previo distinto
// de cero que no coincida es un error, nunca se sobrescribe en silencio.
func stamp(ctx context.Context, entityTenant *int64) (int64, error) {
	tenantID, err := scope(ctx)
	if err != nil {
		return 0, err
	}
	if *entityTenant != 0 && *entityTenant != tenantID {
		return 0, domain.ErrTenantMismatch
	}
	*entityTenant = tenantID
	return tenantID, nil
}

// checkTenant valida, en updates, que la entidad no declare otro tenant.
func checkTenant(ctx context.Context, entityTenant int64) (int64, error) {
	tenantID, err := scope(ctx)
	if err != nil {
		return 0, err
	}
	if entityTenant != 0 && entityTenant != tenantID {
		return 0, domain.ErrTenantMismatch
	}
	return tenantID, nil
}

func limitOffset(limit, offset int) (int, int) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
