// internal/seed/seed.go
package seed

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Marga-Ghale/club-portal/internal/repository"
	"github.com/Marga-Ghale/club-portal/internal/types"
)

// SeedData fills an empty database with a small demo club. It is a no-op
// once any member exists.
func SeedData(ctx context.Context, repos *repository.Repositories, log *zap.Logger) error {
	existing, err := repos.MemberRepo.List(ctx, repository.ListOptions{Limit: 1})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Info("seed data already present, skipping")
		return nil
	}

	log.Info("seeding development data")

	// ============================================
	// MEMBERS
	// ============================================
	members := []*repository.Member{
		{
			Name:         "Aarati Shrestha",
			Email:        "aarati.shrestha@example.com",
			PhoneNumber:  stringPtr("+977-9800000001"),
			AcademicYear: stringPtr("Third Year"),
			Department:   stringPtr("Fashion Design"),
			Role:         stringPtr("President"),
		},
		{
			Name:         "Bikash Thapa",
			Email:        "bikash.thapa@example.com",
			AcademicYear: stringPtr("Second Year"),
			Department:   stringPtr("Business"),
			Role:         stringPtr("Treasurer"),
		},
		{
			Name:       "Sujata Rai",
			Email:      "sujata.rai@example.com",
			Department: stringPtr("Fine Arts"),
			Role:       stringPtr("Member"),
		},
		{
			Name:   "Rohan Karki",
			Email:  "rohan.karki@example.com",
			Status: types.MemberInactive,
		},
	}
	for _, m := range members {
		if err := repos.MemberRepo.Create(ctx, m); err != nil {
			return err
		}
	}

	// ============================================
	// EVENTS & MEETINGS
	// ============================================
	today := time.Now().UTC().Truncate(24 * time.Hour)

	events := []*repository.Event{
		{
			Title:       "Spring Runway Show",
			Description: stringPtr("Annual showcase of member collections."),
			Date:        today.AddDate(0, 0, 21),
			Time:        stringPtr("18:00"),
			Location:    stringPtr("Main Auditorium"),
		},
		{
			Title:    "Thrift Swap",
			Date:     today.AddDate(0, 0, 7),
			Location: stringPtr("Student Center"),
		},
	}
	for _, e := range events {
		if err := repos.EventRepo.Create(ctx, e); err != nil {
			return err
		}
	}

	meeting := &repository.Event{
		Title:       "Committee Planning Meeting",
		Description: stringPtr("Budget review and show logistics."),
		Date:        today.AddDate(0, 0, 3),
		Time:        stringPtr("16:30"),
		Location:    stringPtr("Room 204"),
	}
	if err := repos.MeetingRepo.Create(ctx, meeting); err != nil {
		return err
	}

	// ============================================
	// EXPENSES
	// ============================================
	expenses := []*repository.Expense{
		{Item: "Runway lighting rental", Amount: decimal.RequireFromString("350.00"), Category: types.ExpenseEquipment, Date: today.AddDate(0, 0, -5)},
		{Item: "Poster printing", Amount: decimal.RequireFromString("42.50"), Category: types.ExpenseMarketing, Date: today.AddDate(0, 0, -3)},
		{Item: "Snacks for rehearsal", Amount: decimal.RequireFromString("27.80"), Category: types.ExpenseFoodBeverages, Date: today.AddDate(0, 0, -1)},
	}
	for _, e := range expenses {
		if err := repos.ExpenseRepo.Create(ctx, e); err != nil {
			return err
		}
	}

	// ============================================
	// GALLERY
	// ============================================
	gallery := []*repository.GalleryItem{
		{Title: stringPtr("Last year's finale"), ImageURL: "https://images.example.com/club/finale.jpg"},
		{ImageURL: "https://images.example.com/club/backstage.jpg"},
	}
	for _, g := range gallery {
		if err := repos.GalleryRepo.Create(ctx, g); err != nil {
			return err
		}
	}

	seedNotifications(ctx, repos, log)

	log.Info("seed complete",
		zap.Int("members", len(members)),
		zap.Int("events", len(events)),
		zap.Int("expenses", len(expenses)),
		zap.Int("gallery", len(gallery)),
	)
	return nil
}

func seedNotifications(ctx context.Context, repos *repository.Repositories, log *zap.Logger) {
	notifications := []*repository.Notification{
		{Title: "New Event: Spring Runway Show", Message: "Spring Runway Show has been scheduled.", Type: types.CategoryEvent},
		{Title: "New Meeting: Committee Planning Meeting", Message: "Committee Planning Meeting has been scheduled.", Type: types.CategoryMeeting},
		{Title: "New Expense: Poster printing", Message: "42.50 recorded under Marketing", Type: types.CategoryExpense, IsRead: true},
	}
	for _, n := range notifications {
		if err := repos.NotificationRepo.Create(ctx, n); err != nil {
			log.Warn("failed to seed notification", zap.String("title", n.Title), zap.Error(err))
		}
	}
}

func stringPtr(s string) *string {
	return &s
}
