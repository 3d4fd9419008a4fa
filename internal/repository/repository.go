// internal/repository/repository.go
package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ============================================
// Models / Entities
// ============================================

type Member struct {
	ID           string
	Name         string
	Email        string
	PhoneNumber  *string
	AcademicYear *string
	Department   *string
	Role         *string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Event is a scheduled club gathering. Meetings are stored with the
// same shape in their own table.
type Event struct {
	ID          string
	Title       string
	Description *string
	Date        time.Time
	Time        *string // "15:04", optional
	Location    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Expense struct {
	ID        string
	Item      string
	Amount    decimal.Decimal
	Category  string
	Date      time.Time
	CreatedAt time.Time
}

type GalleryItem struct {
	ID        string
	Title     *string
	ImageURL  string
	CreatedAt time.Time
}

type Notification struct {
	ID        string
	Title     string
	Message   string
	Type      string
	IsRead    bool
	CreatedAt time.Time
}

// ============================================
// Repository Interfaces
// ============================================

type MemberRepository interface {
	Create(ctx context.Context, member *Member) error
	FindByID(ctx context.Context, id string) (*Member, error)
	List(ctx context.Context, opts ListOptions) ([]*Member, error)
	FindActive(ctx context.Context) ([]*Member, error)
	Delete(ctx context.Context, id string) error
}

type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	FindByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, opts ListOptions) ([]*Event, error)
	Delete(ctx context.Context, id string) error
}

type ExpenseRepository interface {
	Create(ctx context.Context, expense *Expense) error
	List(ctx context.Context, opts ListOptions) ([]*Expense, error)
	Delete(ctx context.Context, id string) error
}

type GalleryRepository interface {
	Create(ctx context.Context, item *GalleryItem) error
	List(ctx context.Context, opts ListOptions) ([]*GalleryItem, error)
	Delete(ctx context.Context, id string) error
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *Notification) error
	List(ctx context.Context, unreadOnly bool) ([]*Notification, error)
	CountUnread(ctx context.Context) (total int, unread int, err error)
	MarkAsRead(ctx context.Context, id string) error
	MarkAllAsRead(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
	DeleteOlderThan(ctx context.Context, olderThan time.Time, readOnly bool) (int, error)
}
