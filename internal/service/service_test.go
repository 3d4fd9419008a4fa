package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marga-Ghale/club-portal/internal/notification"
	"github.com/Marga-Ghale/club-portal/internal/repository"
	"github.com/Marga-Ghale/club-portal/internal/types"
)

// stubDispatcher records requests and answers with a fixed result.
type stubDispatcher struct {
	requests []*notification.Request
	failFor  map[string]bool
	err      error
}

func (d *stubDispatcher) Dispatch(ctx context.Context, req *notification.Request) (*notification.Result, error) {
	d.requests = append(d.requests, req)
	if d.err != nil {
		return nil, d.err
	}
	res := &notification.Result{Success: true, Summary: notification.Summary{Total: len(req.Emails)}}
	for _, e := range req.Emails {
		if d.failFor[e] {
			res.Summary.Failed++
		} else {
			res.Summary.Sent++
		}
	}
	return res, nil
}

func newTestServices(t *testing.T, dispatcher *stubDispatcher) (*Services, *repository.Repositories) {
	t.Helper()
	repos := repository.NewMemoryRepositories()
	announcer := notification.NewAnnouncer(repos.MemberRepo, repos.NotificationRepo, dispatcher, "Fashion Walk Club")
	return NewServices(&ServiceDeps{Repos: repos, Announcer: announcer}), repos
}

func strPtr(s string) *string { return &s }

func TestMemberService_CreateAndSearch(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t, &stubDispatcher{})

	m, err := svcs.Member.Create(ctx, CreateMemberInput{
		Name:       " Ada Lovelace ",
		Email:      "ada@example.com",
		Department: strPtr("Design"),
		Role:       strPtr("  "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", m.Name)
	assert.Equal(t, types.MemberActive, m.Status)
	assert.Nil(t, m.Role)

	_, err = svcs.Member.Create(ctx, CreateMemberInput{Name: "Grace", Email: "grace@example.com", AcademicYear: strPtr("3rd Year")})
	require.NoError(t, err)

	_, err = svcs.Member.Create(ctx, CreateMemberInput{Name: "Copy", Email: "ADA@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Equal(t, "A member with this email already exists.", err.Error())

	_, err = svcs.Member.Create(ctx, CreateMemberInput{Name: "No Mail", Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	found, err := svcs.Member.List(ctx, "design")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "ada@example.com", found[0].Email)

	all, err := svcs.Member.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestEventService_CreateNotifiesActiveMembers(t *testing.T) {
	ctx := context.Background()
	dispatcher := &stubDispatcher{}
	svcs, repos := newTestServices(t, dispatcher)

	_, err := svcs.Member.Create(ctx, CreateMemberInput{Name: "A", Email: "a@x.com"})
	require.NoError(t, err)
	_, err = svcs.Member.Create(ctx, CreateMemberInput{Name: "B", Email: "b@x.com", Status: types.MemberInactive})
	require.NoError(t, err)

	created, err := svcs.Event.Create(ctx, CreateEventInput{
		Title:    "Gala",
		Date:     "2025-01-01",
		Time:     strPtr("19:00"),
		Location: strPtr("Main Hall"),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.Event.ID)
	assert.Equal(t, notification.OutcomeSent, created.Notifications.Status)
	assert.Equal(t, "Event created successfully and notifications sent to all members!", created.Message)

	require.Len(t, dispatcher.requests, 1)
	assert.Equal(t, []string{"a@x.com"}, dispatcher.requests[0].Emails)
	assert.Equal(t, "New Event: Gala", dispatcher.requests[0].Subject)
	assert.Contains(t, dispatcher.requests[0].Message, "Date: January 1st, 2025")
	assert.Contains(t, dispatcher.requests[0].Message, "Time: 7:00 PM")

	rows, err := repos.NotificationRepo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, types.CategoryEvent, rows[0].Type)
}

func TestEventService_MeetingWithoutMembersSkipsEmail(t *testing.T) {
	dispatcher := &stubDispatcher{}
	svcs, _ := newTestServices(t, dispatcher)

	created, err := svcs.Meeting.Create(context.Background(), CreateEventInput{Title: "Board", Date: "2025-02-03"})
	require.NoError(t, err)

	assert.Equal(t, notification.OutcomeSkipped, created.Notifications.Status)
	assert.Equal(t, "Meeting scheduled successfully!", created.Message)
	assert.Empty(t, dispatcher.requests)
}

func TestEventService_DispatchFailureKeepsEvent(t *testing.T) {
	ctx := context.Background()
	dispatcher := &stubDispatcher{err: &notification.Error{Code: notification.CodeNotConfigured, Message: "Email service not configured"}}
	svcs, _ := newTestServices(t, dispatcher)

	_, err := svcs.Member.Create(ctx, CreateMemberInput{Name: "A", Email: "a@x.com"})
	require.NoError(t, err)

	created, err := svcs.Event.Create(ctx, CreateEventInput{Title: "Gala", Date: "2025-01-01"})
	require.NoError(t, err)
	assert.Equal(t, "Event created successfully, but email notifications failed to send.", created.Message)

	events, err := svcs.Event.List(ctx, "gala")
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestEventService_Validation(t *testing.T) {
	svcs, _ := newTestServices(t, &stubDispatcher{})

	tests := []CreateEventInput{
		{Title: "", Date: "2025-01-01"},
		{Title: "Gala", Date: "01/01/2025"},
		{Title: "Gala", Date: "2025-01-01", Time: strPtr("7pm")},
	}
	for _, input := range tests {
		_, err := svcs.Event.Create(context.Background(), input)
		assert.ErrorIs(t, err, ErrInvalidInput, "%+v", input)
	}
}

func TestExpenseService_CreateListSummary(t *testing.T) {
	ctx := context.Background()
	dispatcher := &stubDispatcher{}
	svcs, repos := newTestServices(t, dispatcher)

	for _, in := range []CreateExpenseInput{
		{Item: "Chairs", Amount: "40", Category: types.ExpenseEquipment, Date: "2025-03-01"},
		{Item: "Pizza", Amount: "25.50", Category: types.ExpenseFoodBeverages, Date: "2025-03-02"},
		{Item: "Lights", Amount: "60.25", Category: types.ExpenseEquipment, Date: "2025-03-03"},
	} {
		_, err := svcs.Expense.Create(ctx, in)
		require.NoError(t, err)
	}

	_, err := svcs.Expense.Create(ctx, CreateExpenseInput{Item: "Free", Amount: "0", Category: types.ExpenseOther, Date: "2025-03-01"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svcs.Expense.Create(ctx, CreateExpenseInput{Item: "Odd", Amount: "5", Category: "Snacks", Date: "2025-03-01"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svcs.Expense.Create(ctx, CreateExpenseInput{Item: "Crumbs", Amount: "0.004", Category: types.ExpenseOther, Date: "2025-03-01"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	equipment, err := svcs.Expense.List(ctx, ExpenseFilter{Category: types.ExpenseEquipment})
	require.NoError(t, err)
	require.Len(t, equipment, 2)
	assert.Equal(t, "Lights", equipment[0].Item)

	searched, err := svcs.Expense.List(ctx, ExpenseFilter{Query: "food"})
	require.NoError(t, err)
	require.Len(t, searched, 1)
	assert.Equal(t, "Pizza", searched[0].Item)

	summary, err := svcs.Expense.Summary(ctx, ExpenseFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Count)
	assert.True(t, summary.Total.Equal(decimal.RequireFromString("125.75")), summary.Total.String())
	assert.True(t, summary.ByCategory[types.ExpenseEquipment].Equal(decimal.RequireFromString("100.25")))

	assert.Empty(t, dispatcher.requests, "expenses never send email")
	rows, err := repos.NotificationRepo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestExpenseService_AmountRoundedBeforeCheck(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t, &stubDispatcher{})

	_, err := svcs.Expense.Create(ctx, CreateExpenseInput{Item: "Crumbs", Amount: "0.004", Category: types.ExpenseOther, Date: "2025-03-01"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	stamp, err := svcs.Expense.Create(ctx, CreateExpenseInput{Item: "Stamp", Amount: "0.005", Category: types.ExpenseOther, Date: "2025-03-01"})
	require.NoError(t, err)
	assert.Equal(t, "0.01", stamp.Amount.StringFixed(2))
	assert.True(t, stamp.Amount.IsPositive())

	stored, err := svcs.Expense.List(ctx, ExpenseFilter{})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.True(t, stored[0].Amount.Equal(decimal.RequireFromString("0.01")))
}

func TestGalleryService_Create(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t, &stubDispatcher{})

	_, err := svcs.Gallery.Create(ctx, CreateGalleryInput{ImageURL: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	item, err := svcs.Gallery.Create(ctx, CreateGalleryInput{Title: strPtr("Spring Show"), ImageURL: "https://img.example/1.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "Spring Show", *item.Title)

	found, err := svcs.Gallery.List(ctx, "spring")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	assert.ErrorIs(t, svcs.Gallery.Delete(ctx, "missing"), ErrNotFound)
	assert.NoError(t, svcs.Gallery.Delete(ctx, item.ID))
}

func TestNotificationService_MarkAllAsRead(t *testing.T) {
	ctx := context.Background()
	svcs, repos := newTestServices(t, &stubDispatcher{})

	for i := 0; i < 3; i++ {
		require.NoError(t, repos.NotificationRepo.Create(ctx, &repository.Notification{Title: "t", Message: "m", Type: types.CategoryEvent}))
	}
	rows, err := svcs.Notification.List(ctx, false)
	require.NoError(t, err)
	require.NoError(t, svcs.Notification.MarkAsRead(ctx, rows[0].ID))

	updated, err := svcs.Notification.MarkAllAsRead(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	total, unread, err := svcs.Notification.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Zero(t, unread)

	assert.ErrorIs(t, svcs.Notification.MarkAsRead(ctx, "missing"), ErrNotFound)
}

func TestNotificationService_MarkAllAsReadBeyondListLimit(t *testing.T) {
	ctx := context.Background()
	svcs, repos := newTestServices(t, &stubDispatcher{})

	for i := 0; i < 250; i++ {
		require.NoError(t, repos.NotificationRepo.Create(ctx, &repository.Notification{Title: "t", Message: "m", Type: types.CategoryEvent}))
	}

	updated, err := svcs.Notification.MarkAllAsRead(ctx)
	require.NoError(t, err)
	assert.Equal(t, 250, updated)

	total, unread, err := svcs.Notification.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 250, total)
	assert.Zero(t, unread)
}
