package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// TenantSeed entrada de la lista de tenants del entorno.
type TenantSeed struct {
	Name    string   `mapstructure:"name"`
	Domain  string   `mapstructure:"domain"`
	Origins []string `mapstructure:"origins"` // orígenes CORS adicionales (opcional)
	// Operator habilita al tenant para crear y gestionar otros tenants.
	Operator bool `mapstructure:"operator"`
}

// TenantList contenido del archivo tenants.<env>.yaml.
type TenantList struct {
	Tenants []TenantSeed `mapstructure:"tenants"`
}

// ErrTenantsFile el archivo de tenants falta o es inválido. Es un error de arranque (fatal).
var ErrTenantsFile = errors.New("config: archivo de tenants inválido")

// LoadTenants lee y valida la lista de tenants. Archivo ausente, YAML mal formado,
// lista vacía o entradas sin name/domain devuelven error.
func LoadTenants(path string) (*TenantList, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if ext := strings.ToLower(path); !strings.HasSuffix(ext, ".yaml") && !strings.HasSuffix(ext, ".yml") && !strings.HasSuffix(ext, ".json") {
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: leer %s: %v", ErrTenantsFile, path, err)
	}

	var list TenantList
	if err := v.Unmarshal(&list); err != nil {
		return nil, fmt.Errorf("%w: decodificar %s: %v", ErrTenantsFile, path, err)
	}
	if len(list.Tenants) == 0 {
		return nil, fmt.Errorf("%w: %s no define tenants", ErrTenantsFile, path)
	}

	seen := make(map[string]struct{}, len(list.Tenants))
	for i, t := range list.Tenants {
		name := strings.TrimSpace(t.Name)
		domain := strings.ToLower(strings.TrimSpace(t.Domain))
		if name == "" || domain == "" {
			return nil, fmt.Errorf("%w: entrada %d sin name o domain", ErrTenantsFile, i)
		}
		if _, dup := seen[domain]; dup {
			return nil, fmt.Errorf("%w: dominio duplicado %q", ErrTenantsFile, domain)
		}
		seen[domain] = struct{}{}
		list.Tenants[i].Name = name
		list.Tenants[i].Domain = domain
	}
	return &list, nil
}

// AllowedOrigins orígenes CORS derivados de la lista: https://<domain> siempre,
// http://<domain> si allowInsecure, más los orígenes explícitos de cada entrada.
func (l *TenantList) AllowedOrigins(allowInsecure bool) []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(o string) {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" {
			return
		}
		if _, ok := seen[o]; ok {
			return
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	for _, t := range l.Tenants {
		add("https://" + t.Domain)
		if allowInsecure {
			add("http://" + t.Domain)
		}
		for _, o := range t.Origins {
			add(o)
		}
	}
	return out
}

// OperatorDomains dominios de los tenants marcados como operadores.
func (l *TenantList) OperatorDomains() []string {
	var out []string
	for _, t := range l.Tenants {
		if t.Operator {
			out = append(out, t.Domain)
		}
	}
	return out
}
