package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// ============================================
// Repositories Container
// ============================================

type Repositories struct {
	MemberRepo       MemberRepository
	EventRepo        EventRepository
	MeetingRepo      EventRepository
	ExpenseRepo      ExpenseRepository
	GalleryRepo      GalleryRepository
	NotificationRepo NotificationRepository
}

// NewPgRepositories creates PostgreSQL-backed repositories
func NewPgRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		MemberRepo:       NewMemberRepository(pool),
		EventRepo:        NewEventRepository(pool, TableEvents),
		MeetingRepo:      NewEventRepository(pool, TableMeetings),
		ExpenseRepo:      NewExpenseRepository(pool),
		GalleryRepo:      NewGalleryRepository(pool),
		NotificationRepo: NewNotificationRepository(pool),
	}
}

// NewMemoryRepositories creates in-memory repositories (for testing/fallback)
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		MemberRepo:       NewMemoryMemberRepository(),
		EventRepo:        NewMemoryEventRepository(),
		MeetingRepo:      NewMemoryEventRepository(),
		ExpenseRepo:      NewMemoryExpenseRepository(),
		GalleryRepo:      NewMemoryGalleryRepository(),
		NotificationRepo: NewMemoryNotificationRepository(),
	}
}
