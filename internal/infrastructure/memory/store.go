// Package memory implementa los puertos de persistencia en memoria con el mismo alcance
// de tenant que PostgreSQL. Lo usan los tests de casos de uso y de HTTP.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/advisor-crm/internal/domain"
	"github.com/jhoicas/advisor-crm/internal/domain/audit"
	"github.com/jhoicas/advisor-crm/internal/domain/entity"
	"github.com/jhoicas/advisor-crm/internal/domain/permission"
	"github.com/jhoicas/advisor-crm/internal/domain/repository"
	"github.com/jhoicas/advisor-crm/internal/domain/tenant"
)

// Store tablas en memoria protegidas por un único mutex.
type Store struct {
	mu        sync.Mutex
	seq       int64
	now       func() time.Time
	tenants   map[int64]*entity.Tenant
	users     map[int64]*entity.User
	customers map[int64]*entity.Customer
	documents map[int64]*entity.Document
	tasks     map[int64]*entity.Task
	rels      map[int64]*entity.CustomerRelationship
	logs      []*entity.ChangeLog
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		now:       time.Now,
		tenants:   map[int64]*entity.Tenant{},
		users:     map[int64]*entity.User{},
		customers: map[int64]*entity.Customer{},
		documents: map[int64]*entity.Document{},
		tasks:     map[int64]*entity.Task{},
		rels:      map[int64]*entity.CustomerRelationship{},
	}
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// Repos repositorios atados al almacén.
func (s *Store) Repos() repository.Repos {
	return repository.Repos{
		Users:         Users{s},
		Customers:     Customers{s},
		Documents:     Documents{s},
		Tasks:         Tasks{s},
		Relationships: Relationships{s},
	}
}

// Run cumple repository.TxRunner. No hay rollback: basta para tests.
func (s *Store) Run(_ context.Context, fn func(repository.Repos) error) error {
	return fn(s.Repos())
}

// ChangeLogs devuelve el change log completo (todos los tenants), en orden de escritura.
func (s *Store) ChangeLogs() []*entity.ChangeLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.ChangeLog, len(s.logs))
	copy(out, s.logs)
	return out
}

func (s *Store) record(ctx context.Context, tenantID int64, action audit.Action, before, after audit.Auditable) error {
	subject := after
	if subject == nil {
		subject = before
	}
	entry := &entity.ChangeLog{
		ID:         s.nextID(),
		TenantID:   tenantID,
		EntityName: subject.AuditName(),
		EntityID:   subject.AuditID(),
		Action:     action,
		CreatedAt:  s.now(),
	}
	if actor, ok := audit.ActorFrom(ctx); ok {
		entry.ActorID = &actor
	}
	var err error
	if before != nil {
		if entry.Before, err = before.AuditSnapshot(); err != nil {
			return err
		}
	}
	if after != nil {
		if entry.After, err = after.AuditSnapshot(); err != nil {
			return err
		}
	}
	s.logs = append(s.logs, entry)
	return nil
}

func stamp(ctx context.Context, entityTenant *int64) (int64, error) {
	id, err := tenant.IDFrom(ctx)
	if err != nil {
		return 0, err
	}
	if *entityTenant != 0 && *entityTenant != id {
		return 0, domain.ErrTenantMismatch
	}
	*entityTenant = id
	return id, nil
}

func check(ctx context.Context, entityTenant int64) (int64, error) {
	id, err := tenant.IDFrom(ctx)
	if err != nil {
		return 0, err
	}
	if entityTenant != 0 && entityTenant != id {
		return 0, domain.ErrTenantMismatch
	}
	return id, nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

func sortByID[T any](list []T, id func(T) int64) {
	sort.Slice(list, func(i, j int) bool { return id(list[i]) < id(list[j]) })
}

// Tenants directorio de tenants en memoria.
type Tenants struct{ s *Store }

// NewTenants construye el repositorio de tenants.
func NewTenants(s *Store) Tenants { return Tenants{s} }

func (r Tenants) Create(_ context.Context, t *entity.Tenant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.Domain = strings.ToLower(strings.TrimSpace(t.Domain))
	for _, x := range r.s.tenants {
		if x.Domain == t.Domain {
			return domain.ErrDuplicate
		}
	}
	t.ID = r.s.nextID()
	t.CreatedAt, t.UpdatedAt = r.s.now(), r.s.now()
	cp := *t
	r.s.tenants[t.ID] = &cp
	return nil
}

func (r Tenants) GetByID(_ context.Context, id int64) (*entity.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.tenants[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (r Tenants) FindByDomain(_ context.Context, d string) (*entity.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d = strings.TrimSpace(d)
	for _, t := range r.s.tenants {
		if strings.EqualFold(t.Domain, d) {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r Tenants) List(_ context.Context, limit, offset int) ([]*entity.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Tenant
	for _, t := range r.s.tenants {
		cp := *t
		out = append(out, &cp)
	}
	sortByID(out, func(t *entity.Tenant) int64 { return t.ID })
	return page(out, limit, offset), nil
}

func (r Tenants) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tenants[id]; !ok {
		return domain.ErrNotFound
	}
	for _, u := range r.s.users {
		if u.TenantID == id {
			return domain.ErrConflict
		}
	}
	for _, c := range r.s.customers {
		if c.TenantID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.tenants, id)
	return nil
}

// Users usuarios en memoria.
type Users struct{ s *Store }

func (r Users) Create(ctx context.Context, u *entity.User) error {
	tenantID, err := stamp(ctx, &u.TenantID)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.users {
		if x.TenantID == tenantID && strings.EqualFold(x.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	u.ID = r.s.nextID()
	u.CreatedAt, u.UpdatedAt = r.s.now(), r.s.now()
	cp := *u
	r.s.users[u.ID] = &cp
	return r.s.record(ctx, tenantID, audit.ActionCreated, nil, &cp)
}

func (r Users) find(ctx context.Context, match func(*entity.User) bool) (*entity.User, error) {
	tenantID, err := tenant.IDFrom(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.TenantID == tenantID && match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r Users) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.find(ctx, func(u *entity.User) bool { return u.ID == id })
}

func (r Users) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	email = strings.TrimSpace(email)
	return r.find(ctx, func(u *entity.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r Users) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	tenantID, err := tenant.IDFrom(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.User
	for _, u := range r.s.users {
		if u.TenantID == tenantID {
			cp := *u
			out = append(out, &cp)
		}
	}
	sortByID(out, func(u *entity.User) int64 { return u.ID })
	return page(out, limit, offset), nil
}

func (r Users) Update(ctx context.Context, u *entity.User) error {
	tenantID, err := check(ctx, u.TenantID)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[u.ID]
	if !ok || cur.TenantID != tenantID {
		return domain.ErrNotFound
	}
	for _, x := range r.s.users {
		if x.ID != u.ID && x.TenantID == tenantID && strings.EqualFold(x.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	before := *cur
	next := *cur
	next.Email, next.PasswordHash = u.Email, u.PasswordHash
	next.FirstName, next.LastName, next.Phone, next.Active = u.FirstName, u.LastName, u.Phone, u.Active
	next.UpdatedAt = r.s.now()
	r.s.users[u.ID] = &next
	*u = next
	return r.s.record(ctx, tenantID, audit.ActionUpdated, &before, &next)
}

func (r Users) UpdatePermissions(ctx context.Context, id int64, mask permission.Permission) (*entity.User, error) {
	tenantID, err := tenant.IDFrom(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[id]
	if !ok || cur.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	before := *cur
	next := *cur
	next.Permissions = mask
	next.UpdatedAt = r.s.now()
	r.s.users[id] = &next
	out := next
	return &out, r.s.record(ctx, tenantID, audit.ActionUpdated, &before, &next)
}

func (r Users) Delete(ctx context.Context, id int64) error {
	tenantID, err := tenant.IDFrom(ctx)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[id]
	if !ok || cur.TenantID != tenantID {
		return domain.ErrNotFound
	}
	for _, c := range r.s.customers {
		if c.AdvisorID != nil && *c.AdvisorID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.users, id)
	return r.s.record(ctx, tenantID, audit.ActionDeleted, cur, nil)
}
