package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Marga-Ghale/club-portal/internal/types"
)

// ============================================
// In-memory repositories
// ============================================

// memoryTable is a mutex-guarded row set shared by the in-memory repositories.
// column resolves a column name to a comparable value for filters and ordering.
type memoryTable[T any] struct {
	mu     sync.RWMutex
	rows   map[string]*T
	column func(row *T, name string) any
}

func newMemoryTable[T any](column func(row *T, name string) any) *memoryTable[T] {
	return &memoryTable[T]{rows: make(map[string]*T), column: column}
}

func (t *memoryTable[T]) list(opts ListOptions) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []*T
	for _, row := range t.rows {
		if t.matches(row, opts.Filters) {
			cp := *row
			out = append(out, &cp)
		}
	}

	if opts.OrderBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			less := lessValue(t.column(out[i], opts.OrderBy), t.column(out[j], opts.OrderBy))
			if opts.Desc {
				return lessValue(t.column(out[j], opts.OrderBy), t.column(out[i], opts.OrderBy))
			}
			return less
		})
	}

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}

func (t *memoryTable[T]) matches(row *T, filters []Filter) bool {
	for _, f := range filters {
		if t.column(row, f.Column) != f.Value {
			return false
		}
	}
	return true
}

func (t *memoryTable[T]) get(id string) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (t *memoryTable[T]) delete(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

func lessValue(a, b any) bool {
	switch av := a.(type) {
	case time.Time:
		bv, _ := b.(time.Time)
		return av.Before(bv)
	case string:
		bv, _ := b.(string)
		return av < bv
	case bool:
		bv, _ := b.(bool)
		return !av && bv
	}
	return false
}

// Member in-memory
type memoryMemberRepository struct {
	table *memoryTable[Member]
}

func NewMemoryMemberRepository() MemberRepository {
	return &memoryMemberRepository{table: newMemoryTable(func(m *Member, name string) any {
		switch name {
		case "id":
			return m.ID
		case "name":
			return m.Name
		case "email":
			return m.Email
		case "status":
			return m.Status
		case "updated_at":
			return m.UpdatedAt
		}
		return m.CreatedAt
	})}
}

func (r *memoryMemberRepository) Create(ctx context.Context, member *Member) error {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	for _, existing := range r.table.rows {
		if strings.EqualFold(existing.Email, member.Email) {
			return ErrDuplicate
		}
	}

	now := time.Now()
	member.ID = uuid.New().String()
	member.CreatedAt = now
	member.UpdatedAt = now
	if member.Status == "" {
		member.Status = types.MemberActive
	}
	cp := *member
	r.table.rows[member.ID] = &cp
	return nil
}

func (r *memoryMemberRepository) FindByID(ctx context.Context, id string) (*Member, error) {
	return r.table.get(id)
}

func (r *memoryMemberRepository) List(ctx context.Context, opts ListOptions) ([]*Member, error) {
	return r.table.list(opts.orDefault("created_at", true)), nil
}

func (r *memoryMemberRepository) FindActive(ctx context.Context) ([]*Member, error) {
	return r.table.list(ListOptions{
		Filters: []Filter{{Column: "status", Value: types.MemberActive}},
		OrderBy: "created_at",
	}), nil
}

func (r *memoryMemberRepository) Delete(ctx context.Context, id string) error {
	return r.table.delete(id)
}

// Event / meeting in-memory
type memoryEventRepository struct {
	table *memoryTable[Event]
}

func NewMemoryEventRepository() EventRepository {
	return &memoryEventRepository{table: newMemoryTable(func(e *Event, name string) any {
		switch name {
		case "id":
			return e.ID
		case "title":
			return e.Title
		case "date":
			return e.Date
		}
		return e.CreatedAt
	})}
}

func (r *memoryEventRepository) Create(ctx context.Context, event *Event) error {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	now := time.Now()
	event.ID = uuid.New().String()
	event.CreatedAt = now
	event.UpdatedAt = now
	cp := *event
	r.table.rows[event.ID] = &cp
	return nil
}

func (r *memoryEventRepository) FindByID(ctx context.Context, id string) (*Event, error) {
	return r.table.get(id)
}

func (r *memoryEventRepository) List(ctx context.Context, opts ListOptions) ([]*Event, error) {
	return r.table.list(opts.orDefault("date", false)), nil
}

func (r *memoryEventRepository) Delete(ctx context.Context, id string) error {
	return r.table.delete(id)
}

// Expense in-memory
type memoryExpenseRepository struct {
	table *memoryTable[Expense]
}

func NewMemoryExpenseRepository() ExpenseRepository {
	return &memoryExpenseRepository{table: newMemoryTable(func(e *Expense, name string) any {
		switch name {
		case "id":
			return e.ID
		case "category":
			return e.Category
		case "date":
			return e.Date
		}
		return e.CreatedAt
	})}
}

func (r *memoryExpenseRepository) Create(ctx context.Context, expense *Expense) error {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	expense.ID = uuid.New().String()
	expense.CreatedAt = time.Now()
	cp := *expense
	r.table.rows[expense.ID] = &cp
	return nil
}

func (r *memoryExpenseRepository) List(ctx context.Context, opts ListOptions) ([]*Expense, error) {
	return r.table.list(opts.orDefault("date", true)), nil
}

func (r *memoryExpenseRepository) Delete(ctx context.Context, id string) error {
	return r.table.delete(id)
}

// Gallery in-memory
type memoryGalleryRepository struct {
	table *memoryTable[GalleryItem]
}

func NewMemoryGalleryRepository() GalleryRepository {
	return &memoryGalleryRepository{table: newMemoryTable(func(g *GalleryItem, name string) any {
		if name == "id" {
			return g.ID
		}
		return g.CreatedAt
	})}
}

func (r *memoryGalleryRepository) Create(ctx context.Context, item *GalleryItem) error {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	item.ID = uuid.New().String()
	item.CreatedAt = time.Now()
	cp := *item
	r.table.rows[item.ID] = &cp
	return nil
}

func (r *memoryGalleryRepository) List(ctx context.Context, opts ListOptions) ([]*GalleryItem, error) {
	return r.table.list(opts.orDefault("created_at", true)), nil
}

func (r *memoryGalleryRepository) Delete(ctx context.Context, id string) error {
	return r.table.delete(id)
}

// Notification in-memory
type memoryNotificationRepository struct {
	table *memoryTable[Notification]
}

func NewMemoryNotificationRepository() NotificationRepository {
	return &memoryNotificationRepository{table: newMemoryTable(func(n *Notification, name string) any {
		switch name {
		case "id":
			return n.ID
		case "is_read":
			return n.IsRead
		case "type":
			return n.Type
		}
		return n.CreatedAt
	})}
}

func (r *memoryNotificationRepository) Create(ctx context.Context, notification *Notification) error {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	notification.ID = uuid.New().String()
	notification.CreatedAt = time.Now()
	cp := *notification
	r.table.rows[notification.ID] = &cp
	return nil
}

func (r *memoryNotificationRepository) List(ctx context.Context, unreadOnly bool) ([]*Notification, error) {
	opts := ListOptions{OrderBy: "created_at", Desc: true, Limit: 200}
	if unreadOnly {
		opts.Filters = []Filter{{Column: "is_read", Value: false}}
	}
	return r.table.list(opts), nil
}

func (r *memoryNotificationRepository) CountUnread(ctx context.Context) (int, int, error) {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()

	unread := 0
	for _, n := range r.table.rows {
		if !n.IsRead {
			unread++
		}
	}
	return len(r.table.rows), unread, nil
}

func (r *memoryNotificationRepository) MarkAsRead(ctx context.Context, id string) error {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	n, ok := r.table.rows[id]
	if !ok {
		return ErrNotFound
	}
	n.IsRead = true
	return nil
}

func (r *memoryNotificationRepository) MarkAllAsRead(ctx context.Context) (int, error) {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	updated := 0
	for _, n := range r.table.rows {
		if !n.IsRead {
			n.IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (r *memoryNotificationRepository) Delete(ctx context.Context, id string) error {
	return r.table.delete(id)
}

func (r *memoryNotificationRepository) DeleteOlderThan(ctx context.Context, olderThan time.Time, readOnly bool) (int, error) {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	deleted := 0
	for id, n := range r.table.rows {
		if n.CreatedAt.Before(olderThan) && (!readOnly || n.IsRead) {
			delete(r.table.rows, id)
			deleted++
		}
	}
	return deleted, nil
}
