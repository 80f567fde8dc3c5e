package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/advisor-crm/internal/domain/entity"
	"github.com/jhoicas/advisor-crm/internal/domain/repository"
	"github.com/jhoicas/advisor-crm/pkg/logger"
)

const domainKeyPrefix = "tenant:domain:"

// store subconjunto de *redis.Client que usa la caché.
type store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

var _ repository.TenantRepository = (*TenantDirectory)(nil)

// TenantDirectory cache-aside sobre el repositorio de tenants. Solo se cachean aciertos;
// un fallo de Redis nunca rompe la resolución, se consulta la base.
type TenantDirectory struct {
	next    repository.TenantRepository
	store   store
	ttl     time.Duration
	observe func(result string)
}

// NewTenantDirectory envuelve next con la caché.
func NewTenantDirectory(next repository.TenantRepository, client store, ttl time.Duration) *TenantDirectory {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &TenantDirectory{next: next, store: client, ttl: ttl, observe: func(string) {}}
}

// OnLookup registra un observador del resultado de cada lectura: "hit", "miss" o "error".
func (d *TenantDirectory) OnLookup(fn func(result string)) *TenantDirectory {
	if fn != nil {
		d.observe = fn
	}
	return d
}

func domainKey(d string) string {
	return domainKeyPrefix + strings.ToLower(strings.TrimSpace(d))
}

// FindByDomain lee de Redis y, si no está, del repositorio.
func (d *TenantDirectory) FindByDomain(ctx context.Context, domain string) (*entity.Tenant, error) {
	key := domainKey(domain)
	raw, err := d.store.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var t entity.Tenant
		if jerr := json.Unmarshal(raw, &t); jerr == nil && t.ID > 0 {
			d.observe("hit")
			return &t, nil
		}
		d.evict(ctx, key)
		d.observe("miss")
	case errors.Is(err, redis.Nil):
		d.observe("miss")
	default:
		d.observe("error")
		logger.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("caché de tenants no disponible")
	}

	t, err := d.next.FindByDomain(ctx, domain)
	if err != nil || t == nil {
		return t, err
	}
	if b, jerr := json.Marshal(t); jerr == nil {
		if serr := d.store.Set(ctx, key, b, d.ttl).Err(); serr != nil {
			logger.Ctx(ctx).Warn().Err(serr).Str("key", key).Msg("no se pudo cachear el tenant")
		}
	}
	return t, nil
}

// Create delega e invalida la clave del dominio.
func (d *TenantDirectory) Create(ctx context.Context, t *entity.Tenant) error {
	if err := d.next.Create(ctx, t); err != nil {
		return err
	}
	d.evict(ctx, domainKey(t.Domain))
	return nil
}

// Delete delega e invalida la clave del dominio borrado.
func (d *TenantDirectory) Delete(ctx context.Context, id int64) error {
	t, err := d.next.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := d.next.Delete(ctx, id); err != nil {
		return err
	}
	if t != nil {
		d.evict(ctx, domainKey(t.Domain))
	}
	return nil
}

func (d *TenantDirectory) GetByID(ctx context.Context, id int64) (*entity.Tenant, error) {
	return d.next.GetByID(ctx, id)
}

func (d *TenantDirectory) List(ctx context.Context, limit, offset int) ([]*entity.Tenant, error) {
	return d.next.List(ctx, limit, offset)
}

func (d *TenantDirectory) evict(ctx context.Context, key string) {
	if err := d.store.Del(ctx, key).Err(); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("no se pudo invalidar la caché de tenants")
	}
}
