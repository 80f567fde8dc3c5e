package tenant_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/advisor-crm/internal/domain"
	"github.com/jhoicas/advisor-crm/internal/domain/tenant"
)

func TestIDFrom_SinContexto(t *testing.T) {
	_, err := tenant.IDFrom(context.Background())
	assert.ErrorIs(t, err, domain.ErrTenantNotResolved)
}

func TestIDFrom_ValorCeroONegativo(t *testing.T) {
	for _, id := range []int64{0, -3} {
		tc := tenant.NewContext()
		tc.Set(id)
		_, err := tenant.IDFrom(tenant.WithContext(context.Background(), tc))
		assert.ErrorIs(t, err, domain.ErrTenantNotResolved, "id=%d", id)
	}
}

func TestSetVisibleAguasAbajo(t *testing.T) {
	tc := tenant.NewContext()
	ctx := tenant.WithContext(context.Background(), tc)

	// La celda se adjunta antes de resolver y se fija después: los lectores ven el valor.
	tc.Set(7)
	id, err := tenant.IDFrom(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestContextosConcurrentesNoSeMezclan(t *testing.T) {
	var wg sync.WaitGroup
	for i := int64(1); i <= 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			ctx := tenant.WithID(context.Background(), id)
			got, err := tenant.IDFrom(ctx)
			assert.NoError(t, err)
			assert.Equal(t, id, got)
		}(i)
	}
	wg.Wait()
}

func TestContext_Nil(t *testing.T) {
	var tc *tenant.Context
	assert.Equal(t, int64(0), tc.ID())
	assert.False(t, tc.Resolved())
}
