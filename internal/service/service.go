package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Marga-Ghale/club-portal/internal/notification"
	"github.com/Marga-Ghale/club-portal/internal/repository"
	"github.com/Marga-Ghale/club-portal/internal/types"
)

var (
	ErrNotFound       = errors.New("resource not found")
	ErrDuplicateEmail = errors.New("A member with this email already exists.")
	ErrInvalidInput   = errors.New("invalid input")
)

// InputError is a rejected create request. It matches ErrInvalidInput with errors.Is.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

func invalid(message string) error {
	return &InputError{Message: message}
}

// Announcer is implemented by *notification.Announcer.
type Announcer interface {
	Announce(ctx context.Context, a notification.Announcement) notification.Outcome
	Record(ctx context.Context, kind, title, message string) (*repository.Notification, error)
}

// ============================================
// Services Container
// ============================================

type Services struct {
	Member       MemberService
	Event        EventService
	Meeting      EventService
	Expense      ExpenseService
	Gallery      GalleryService
	Notification NotificationService
}

type ServiceDeps struct {
	Repos     *repository.Repositories
	Announcer Announcer
}

func NewServices(deps *ServiceDeps) *Services {
	v := newValidator()

	return &Services{
		Member:       NewMemberService(deps.Repos.MemberRepo, v),
		Event:        NewEventService(types.CategoryEvent, deps.Repos.EventRepo, deps.Announcer, v),
		Meeting:      NewEventService(types.CategoryMeeting, deps.Repos.MeetingRepo, deps.Announcer, v),
		Expense:      NewExpenseService(deps.Repos.ExpenseRepo, deps.Announcer, v),
		Gallery:      NewGalleryService(deps.Repos.GalleryRepo, deps.Announcer, v),
		Notification: NewNotificationService(deps.Repos.NotificationRepo),
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("expense_category", func(fl validator.FieldLevel) bool {
		return types.IsValidExpenseCategory(fl.Field().String())
	})
	return v
}

// mapRepoError turns repository sentinels into service sentinels.
func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	default:
		return err
	}
}

// matches reports whether any field contains term, ignoring case. Nil fields
// are skipped and an empty term matches everything.
func matches(term string, fields ...*string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if f != nil && strings.Contains(strings.ToLower(*f), term) {
			return true
		}
	}
	return false
}

// optional trims s and maps an empty result to nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
