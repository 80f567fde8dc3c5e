package tenancy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/advisor-crm/internal/application/tenancy"
)

func TestHeaderTrust_ProxiesDeConfianza(t *testing.T) {
	off, err := tenancy.NewHeaderTrust(false, nil)
	require.NoError(t, err)
	assert.False(t, off.Allows("10.0.0.1"))

	open, err := tenancy.NewHeaderTrust(true, nil)
	require.NoError(t, err)
	assert.True(t, open.Allows("203.0.113.9"))

	proxies, err := tenancy.NewHeaderTrust(true, []string{"10.0.0.0/8", "192.168.1.10", "::1"})
	require.NoError(t, err)
	assert.True(t, proxies.Allows("10.2.3.4"))
	assert.True(t, proxies.Allows("192.168.1.10"))
	assert.True(t, proxies.Allows("::1"))
	assert.False(t, proxies.Allows("192.168.1.11"))
	assert.False(t, proxies.Allows("no-es-ip"))

	_, err = tenancy.NewHeaderTrust(true, []string{"10.0.0.0/99"})
	assert.Error(t, err)
}
