package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Marga-Ghale/club-portal/internal/repository"
	"github.com/Marga-Ghale/club-portal/pkg/logger"
)

// BatchSender is satisfied by *Dispatcher.
type BatchSender interface {
	Dispatch(ctx context.Context, req *Request) (*Result, error)
}

// Publisher pushes freshly created in-app notifications to live clients.
type Publisher interface {
	PublishNotification(n *repository.Notification)
}

type OutcomeStatus string

const (
	OutcomeSkipped OutcomeStatus = "skipped"
	OutcomeSent    OutcomeStatus = "sent"
	OutcomePartial OutcomeStatus = "partial"
	OutcomeFailed  OutcomeStatus = "failed"
)

// Outcome describes what happened to the email side of an announcement.
type Outcome struct {
	Status  OutcomeStatus `json:"status"`
	Summary *Summary      `json:"summary,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// Describe builds the user-facing message, where created is the success
// phrase for the write itself, e.g. "Event created successfully".
func (o Outcome) Describe(created string) string {
	switch o.Status {
	case OutcomeSent:
		return created + " and notifications sent to all members!"
	case OutcomePartial:
		return fmt.Sprintf("%s, but %d of %d email notifications failed to send.",
			created, o.Summary.Failed, o.Summary.Total)
	case OutcomeFailed:
		return created + ", but email notifications failed to send."
	default:
		return created + "!"
	}
}

// Announcement is a newly stored event or meeting.
type Announcement struct {
	Kind        string
	Title       string
	Date        time.Time
	Time        *string
	Location    *string
	Description *string
}

// Announcer runs the side effects of a successful creation: an in-app
// notification row and, for events and meetings, an email to every active member.
type Announcer struct {
	members       repository.MemberRepository
	notifications repository.NotificationRepository
	sender        BatchSender
	publisher     Publisher
	clubName      string
}

func NewAnnouncer(
	members repository.MemberRepository,
	notifications repository.NotificationRepository,
	sender BatchSender,
	clubName string,
) *Announcer {
	return &Announcer{
		members:       members,
		notifications: notifications,
		sender:        sender,
		clubName:      clubName,
	}
}

func (a *Announcer) SetPublisher(p Publisher) {
	a.publisher = p
}

// Record stores an in-app notification and publishes it. Failures are logged
// and returned; they never undo the write that triggered them.
func (a *Announcer) Record(ctx context.Context, kind, title, message string) (*repository.Notification, error) {
	n := &repository.Notification{
		Title:   title,
		Message: message,
		Type:    kind,
	}
	if err := a.notifications.Create(ctx, n); err != nil {
		logger.FromContext(ctx).Error("failed to record notification",
			zap.String("type", kind), zap.Error(err))
		return nil, errors.Wrap(err, "record notification")
	}

	if a.publisher != nil {
		a.publisher.PublishNotification(n)
	}
	return n, nil
}

// Announce must be called after the event or meeting has been stored.
func (a *Announcer) Announce(ctx context.Context, ann Announcement) Outcome {
	log := logger.FromContext(ctx).With(zap.String("kind", ann.Kind), zap.String("title", ann.Title))

	_, _ = a.Record(ctx, ann.Kind, ann.Subject(), ann.inAppMessage())

	members, err := a.members.FindActive(ctx)
	if err != nil {
		log.Error("failed to load active members", zap.Error(err))
		return Outcome{Status: OutcomeFailed, Error: "could not load member list"}
	}
	if len(members) == 0 {
		return Outcome{Status: OutcomeSkipped}
	}

	emails := make([]string, 0, len(members))
	for _, m := range members {
		emails = append(emails, m.Email)
	}

	result, err := a.sender.Dispatch(ctx, &Request{
		Emails:  emails,
		Subject: ann.Subject(),
		Message: ann.Body(a.clubName),
		Type:    ann.Kind,
	})
	if err != nil {
		log.Error("failed to send email notifications", zap.Error(err))
		msg := err.Error()
		var derr *Error
		if errors.As(err, &derr) {
			msg = derr.Message
		}
		return Outcome{Status: OutcomeFailed, Error: msg}
	}

	summary := result.Summary
	switch {
	case summary.Failed == 0:
		return Outcome{Status: OutcomeSent, Summary: &summary}
	case summary.Sent == 0:
		return Outcome{Status: OutcomeFailed, Summary: &summary, Error: "every email notification failed"}
	default:
		return Outcome{Status: OutcomePartial, Summary: &summary}
	}
}
