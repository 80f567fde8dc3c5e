package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/advisor-crm/internal/domain"
	"github.com/jhoicas/advisor-crm/internal/domain/audit"
	"github.com/jhoicas/advisor-crm/internal/domain/entity"
	"github.com/jhoicas/advisor-crm/internal/domain/repository"
	"github.com/jhoicas/advisor-crm/internal/domain/tenant"
)

var (
	_ repository.TenantRepository       = Tenants{}
	_ repository.UserRepository         = Users{}
	_ repository.CustomerRepository     = Customers{}
	_ repository.DocumentRepository     = Documents{}
	_ repository.TaskRepository         = Tasks{}
	_ repository.RelationshipRepository = Relationships{}
	_ repository.ChangeLogRepository    = ChangeLogs{}
	_ repository.TxRunner               = (*Store)(nil)
)

// Customers clientes en memoria (borrado lógico).
type Customers struct{ s *Store }

func (r Customers) Create(ctx context.Context, c *entity.Customer) error {
	tenantID, err := stamp(ctx, &c.TenantID)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.nextID()
	c.Deleted = false
	c.CreatedAt, c.UpdatedAt = r.s.now(), r.s.now()
	cp := *c
	r.s.customers[c.ID] = &cp
	return r.s.record(ctx, tenantID, audit.ActionCreated, nil, &cp)
}

func (r Customers) GetByID(ctx context.Context, id int64, includeDeleted bool) (*entity.Customer, error) {
	tenantID, err := tenant.IDFrom(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok || c.TenantID != tenantID || (c.Deleted && !includeDeleted) {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r Customers) List(ctx context.Context, f repository.CustomerFilter) ([]*entity.Customer, error) {
	tenantID, err := tenant.IDFrom(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	search := strings.ToLower(strings.TrimSpace(f.Search))
	var out []*entity.Customer
	for _, c := range r.s.customers {
		if c.TenantID != tenantID || (c.Deleted && !f.IncludeDeleted) {
			continue
		}
		if f.AdvisorID != nil && (c.AdvisorID == nil || *c.AdvisorID != *f.AdvisorID) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.FirstName+" "+c.LastName+" "+c.Email), search) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sortByID(out, func(c *entity.Customer) int64 { return c.ID })
	return page(out, f.Limit, f.Offset), nil
}

func (r Customers) Update(ctx context.Context, c *entity.Customer) error {
	tenantID, err := check(ctx, c.TenantID)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.customers[c.ID]
	if !ok || cur.TenantID != tenantID || cur.Deleted {
		return domain.ErrNotFound
	}
	before := *cur
	next := *c
	next.TenantID, next.Deleted, next.CreatedAt = tenantID, false, cur.CreatedAt
	next.UpdatedAt = r.s.now()
	r.s.customers[c.ID] = &next
	*c = next
	return r.s.record(ctx, tenantID, audit.ActionUpdated, &before, &next)
}

func (r Customers) SoftDelete(ctx context.Context, id int64) error {
	tenantID, err := tenant.IDFrom(ctx)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.customers[id]
	if !ok || cur.TenantID != tenantID || cur.Deleted {
		return domain.ErrNotFound
	}
	before := *cur
	next := *cur
	next.Deleted = true
	next.UpdatedAt = r.s.now()
	r.s.customers[id] = &next
	return r.s.record(ctx, tenantID, audit.ActionDeleted, &before, &next)
}

// Documents metadatos de documentos en memoria.
type Documents struct{ s *Store }

func (r Documents) Create(ctx context.Context, d *entity.Document) error {
	tenantID, err := stamp(ctx, &d.TenantID)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.customers[d.CustomerID]; !ok || c.TenantID != tenantID {
		return domain.ErrInvalidReference
	}
	d.ID = r.s.nextID()
	d.CreatedAt = r.s.now()
	cp := *d
	r.s.documents[d.ID] = &cp
	return r.s.record(ctx, tenantID, audit.ActionCreated, nil, &cp)
}

func (r Documents) GetByID(ctx context.Context, id int64) (*entity.Document, error) {
	tenantID, err := tenant.IDFrom(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.documents[id]
	if !ok || d.TenantID != tenantID {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r Documents) ListByCustomer(ctx context.Context, customerID int64) ([]*entity.Document, error) {
	tenantID, err := tenant.IDFrom(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Document
	for _, d := range r.s.documents {
		if d.TenantID == tenantID && d.CustomerID == customerID {
			cp := *d
			out = append(out, &cp)
		}
	}
	sortByID(out, func(d *entity.Document) int64 { return d.ID })
	return out, nil
}

func (r Documents) Delete(ctx context.Context, id int64) error {
	tenantID, err := tenant.IDFrom(ctx)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.documents[id]
	if !ok || d.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(r.s.documents, id)
	return r.s.record(ctx, tenantID, audit.ActionDeleted, d, nil)
}

// Tasks tareas en memoria.
type Tasks struct{ s *Store }

func (r Tasks) Create(ctx context.Context, t *entity.Task) error {
	tenantID, err := stamp(ctx, &t.TenantID)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = r.s.nextID()
	t.CreatedAt, t.UpdatedAt = r.s.now(), r.s.now()
	cp := *t
	r.s.tasks[t.ID] = &cp
	return r.s.record(ctx, tenantID, audit.ActionCreated, nil, &cp)
}

func (r Tasks) GetByID(ctx context.Context, id int64) (*entity.Task, error) {
	tenantID, err := tenant.IDFrom(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok || t.TenantID != tenantID {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r Tasks) List(ctx context.Context, f repository.TaskFilter) ([]*entity.Task, error) {
	tenantID, err := tenant.IDFrom(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Task
	for _, t := range r.s.tasks {
		if t.TenantID != tenantID {
			continue
		}
		if f.CustomerID != nil && (t.CustomerID == nil || *t.CustomerID != *f.CustomerID) {
			continue
		}
		if f.UserID != nil && (t.UserID == nil || *t.UserID != *f.UserID) {
			continue
		}
		if f.Completed != nil && t.Completed != *f.Completed {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sortByID(out, func(t *entity.Task) int64 { return t.ID })
	return page(out, f.Limit, f.Offset), nil
}

func (r Tasks) Update(ctx context.Context, t *entity.Task) error {
	tenantID, err := check(ctx, t.TenantID)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.tasks[t.ID]
	if !ok || cur.TenantID != tenantID {
		return domain.ErrNotFound
	}
	before := *cur
	next := *t
	next.TenantID, next.CreatedAt, next.UpdatedAt = tenantID, cur.CreatedAt, r.s.now()
	r.s.tasks[t.ID] = &next
	*t = next
	return r.s.record(ctx, tenantID, audit.ActionUpdated, &before, &next)
}

func (r Tasks) Delete(ctx context.Context, id int64) error {
	tenantID, err := tenant.IDFrom(ctx)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok || t.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(r.s.tasks, id)
	return r.s.record(ctx, tenantID, audit.ActionDeleted, t, nil)
}

// Relationships relaciones entre clientes en memoria.
type Relationships struct{ s *Store }

func (r Relationships) Create(ctx context.Context, rel *entity.CustomerRelationship) error {
	tenantID, err := stamp(ctx, &rel.TenantID)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range []int64{rel.CustomerID, rel.RelatedCustomerID} {
		if c, ok := r.s.customers[id]; !ok || c.TenantID != tenantID {
			return domain.ErrInvalidReference
		}
	}
	for _, x := range r.s.rels {
		if x.TenantID == tenantID && x.CustomerID == rel.CustomerID &&
			x.RelatedCustomerID == rel.RelatedCustomerID && x.RelationshipType == rel.RelationshipType {
			return domain.ErrDuplicate
		}
	}
	rel.ID = r.s.nextID()
	rel.CreatedAt = r.s.now()
	cp := *rel
	r.s.rels[rel.ID] = &cp
	return r.s.record(ctx, tenantID, audit.ActionCreated, nil, &cp)
}

func (r Relationships) GetByID(ctx context.Context, id int64) (*entity.CustomerRelationship, error) {
	tenantID, err := tenant.IDFrom(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rel, ok := r.s.rels[id]
	if !ok || rel.TenantID != tenantID {
		return nil, nil
	}
	cp := *rel
	return &cp, nil
}

func (r Relationships) ListByCustomer(ctx context.Context, customerID int64) ([]*entity.CustomerRelationship, error) {
	tenantID, err := tenant.IDFrom(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.CustomerRelationship
	for _, rel := range r.s.rels {
		if rel.TenantID == tenantID && (rel.CustomerID == customerID || rel.RelatedCustomerID == customerID) {
			cp := *rel
			out = append(out, &cp)
		}
	}
	sortByID(out, func(r *entity.CustomerRelationship) int64 { return r.ID })
	return out, nil
}

func (r Relationships) Delete(ctx context.Context, id int64) error {
	tenantID, err := tenant.IDFrom(ctx)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rel, ok := r.s.rels[id]
	if !ok || rel.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(r.s.rels, id)
	return r.s.record(ctx, tenantID, audit.ActionDeleted, rel, nil)
}

// ChangeLogs lectura del change log en memoria.
type ChangeLogs struct{ s *Store }

// NewChangeLogs construye el repositorio de lectura.
func NewChangeLogs(s *Store) ChangeLogs { return ChangeLogs{s} }

func (r ChangeLogs) List(ctx context.Context, f repository.ChangeLogFilter) ([]*entity.ChangeLog, error) {
	tenantID, err := tenant.IDFrom(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ChangeLog
	for _, l := range r.s.logs {
		if l.TenantID != tenantID {
			continue
		}
		if f.EntityName != "" && l.EntityName != f.EntityName {
			continue
		}
		if f.EntityID != nil && l.EntityID != *f.EntityID {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, f.Limit, f.Offset), nil
}
