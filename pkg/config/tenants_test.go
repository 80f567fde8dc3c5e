package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/advisor-crm/pkg/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadTenants_Valido(t *testing.T) {
	path := writeFile(t, "tenants.test.yaml", `
tenants:
  - name: Acme
    domain: " ACME.example.com "
    origins: ["https://app.acme.example.com/"]
    operator: true
  - name: Globex
    domain: globex.example.com
`)
	list, err := config.LoadTenants(path)
	require.NoError(t, err)
	require.Len(t, list.Tenants, 2)
	assert.Equal(t, "acme.example.com", list.Tenants[0].Domain, "el dominio se normaliza")

	origins := list.AllowedOrigins(false)
	assert.Equal(t, []string{
		"https://acme.example.com",
		"https://app.acme.example.com",
		"https://globex.example.com",
	}, origins)

	assert.Contains(t, list.AllowedOrigins(true), "http://globex.example.com")
	assert.Equal(t, []string{"acme.example.com"}, list.OperatorDomains())
}

func TestLoadTenants_ErroresDeArranque(t *testing.T) {
	cases := map[string]string{
		"vacio":          "tenants: []\n",
		"sin dominio":    "tenants:\n  - name: Acme\n",
		"duplicado":      "tenants:\n  - {name: A, domain: a.com}\n  - {name: B, domain: A.com}\n",
		"yaml malformado": "tenants: [\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.LoadTenants(writeFile(t, "tenants.yaml", content))
			assert.ErrorIs(t, err, config.ErrTenantsFile)
		})
	}
}

func TestLoadTenants_ArchivoInexistente(t *testing.T) {
	_, err := config.LoadTenants(filepath.Join(t.TempDir(), "no-existe.yaml"))
	assert.ErrorIs(t, err, config.ErrTenantsFile)
}
