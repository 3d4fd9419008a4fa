package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Marga-Ghale/club-portal/internal/notification"
	"github.com/Marga-Ghale/club-portal/internal/repository"
	"github.com/Marga-Ghale/club-portal/internal/types"
)

// EventService manages events or meetings, depending on its kind.
type EventService interface {
	List(ctx context.Context, query string) ([]*repository.Event, error)
	Get(ctx context.Context, id string) (*repository.Event, error)
	Create(ctx context.Context, input CreateEventInput) (*EventCreated, error)
	Delete(ctx context.Context, id string) error
}

type CreateEventInput struct {
	Title       string `validate:"required"`
	Description *string
	Location    *string
	Date        string `validate:"required"`
	Time        *string
}

// EventCreated is the stored row plus what happened to its notifications.
type EventCreated struct {
	Event         *repository.Event
	Notifications notification.Outcome
	Message       string
}

type eventService struct {
	kind      string
	eventRepo repository.EventRepository
	announcer Announcer
	validate  *validator.Validate
}

func NewEventService(kind string, eventRepo repository.EventRepository, announcer Announcer, v *validator.Validate) EventService {
	return &eventService{
		kind:      kind,
		eventRepo: eventRepo,
		announcer: announcer,
		validate:  v,
	}
}

func (s *eventService) List(ctx context.Context, query string) ([]*repository.Event, error) {
	events, err := s.eventRepo.List(ctx, repository.ListOptions{})
	if err != nil {
		return nil, err
	}

	out := make([]*repository.Event, 0, len(events))
	for _, e := range events {
		if matches(query, &e.Title, e.Description, e.Location) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *eventService) Create(ctx context.Context, input CreateEventInput) (*EventCreated, error) {
	input.Title = strings.TrimSpace(input.Title)
	if err := s.validate.Struct(input); err != nil {
		return nil, invalid("Title and date are required")
	}

	date, err := parseDate(input.Date)
	if err != nil {
		return nil, invalid("Date must be in YYYY-MM-DD format")
	}

	clock := optional(input.Time)
	if clock != nil {
		if _, err := time.Parse("15:04", *clock); err != nil {
			return nil, invalid("Time must be in HH:MM format")
		}
	}

	event := &repository.Event{
		Title:       input.Title,
		Description: optional(input.Description),
		Date:        date,
		Time:        clock,
		Location:    optional(input.Location),
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	outcome := s.announcer.Announce(ctx, notification.Announcement{
		Kind:        s.kind,
		Title:       event.Title,
		Date:        event.Date,
		Time:        event.Time,
		Location:    event.Location,
		Description: event.Description,
	})

	return &EventCreated{
		Event:         event,
		Notifications: outcome,
		Message:       outcome.Describe(s.createdPhrase()),
	}, nil
}

func (s *eventService) Get(ctx context.Context, id string) (*repository.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	return event, mapRepoError(err)
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	return mapRepoError(s.eventRepo.Delete(ctx, id))
}

func (s *eventService) createdPhrase() string {
	if s.kind == types.CategoryMeeting {
		return "Meeting scheduled successfully"
	}
	return "Event created successfully"
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp. Calendar
// dates are stored as midnight UTC.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
