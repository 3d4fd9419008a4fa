package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Marga-Ghale/club-portal/internal/api/handlers"
	"github.com/Marga-Ghale/club-portal/internal/email"
	"github.com/Marga-Ghale/club-portal/internal/metrics"
	"github.com/Marga-Ghale/club-portal/internal/models"
	"github.com/Marga-Ghale/club-portal/internal/notification"
	"github.com/Marga-Ghale/club-portal/internal/repository"
	"github.com/Marga-Ghale/club-portal/internal/service"
	"github.com/Marga-Ghale/club-portal/internal/session"
)

const (
	adminPassword = "runway2025"
	functionKey   = "fn-key-123"
)

// fakeSender accepts every address except those containing "bad".
type fakeSender struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeSender) Send(ctx context.Context, msg *email.Message) (string, error) {
	if strings.Contains(msg.To, "bad") {
		return "", &email.ProviderError{StatusCode: http.StatusUnprocessableEntity, Message: "Invalid `to` field"}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg.To)
	return "msg-" + msg.To, nil
}

type testServer struct {
	router *gin.Engine
	repos  *repository.Repositories
	sender *fakeSender
	token  string
}

func newTestServer(t *testing.T, sender email.Sender) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := repository.NewMemoryRepositories()
	gate, err := session.NewGate(adminPassword, "test-secret", time.Hour, session.NewMemoryStore())
	require.NoError(t, err)

	m := metrics.New()
	dispatcher := notification.NewDispatcher(sender, email.NewRenderer("Fashion Walk Club"), notification.Options{Timeout: time.Second, Observer: m})
	announcer := notification.NewAnnouncer(repos.MemberRepo, repos.NotificationRepo, dispatcher, "Fashion Walk Club")
	services := service.NewServices(&service.ServiceDeps{Repos: repos, Announcer: announcer})

	router := NewRouter(RouterDeps{
		Logger:      zap.NewNop(),
		Handlers:    handlers.NewHandlers(services, gate, dispatcher),
		Gate:        gate,
		Metrics:     m,
		CORSOrigins: []string{"*"},
		FunctionKey: functionKey,
		Status:      Status{Database: "memory", Sessions: "memory", EmailConfigured: sender != nil},
	})

	ts := &testServer{router: router, repos: repos}
	if fs, ok := sender.(*fakeSender); ok {
		ts.sender = fs
	}

	w := ts.do(t, http.MethodPost, "/api/auth/login", map[string]string{"password": adminPassword}, false)
	require.Equal(t, http.StatusOK, w.Code)
	var sess models.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sess))
	ts.token = sess.Token

	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any, auth bool) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+ts.token)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, &fakeSender{})

	w := ts.do(t, http.MethodGet, "/health", nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[map[string]any](t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "configured", body["email"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, &fakeSender{})

	ts.do(t, http.MethodPost, "/api/functions/send-notifications", map[string]any{
		"emails": []string{"a@example.com", "bad@example.com"}, "subject": "s", "message": "m",
	}, true)

	w := ts.do(t, http.MethodGet, "/metrics", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `club_portal_emails_total{status="failed"} 1`)
	assert.Contains(t, body, `club_portal_emails_total{status="sent"} 1`)
	assert.Contains(t, body, `route="/api/functions/send-notifications"`)
}

func TestSendNotifications(t *testing.T) {
	ts := newTestServer(t, &fakeSender{})

	t.Run("mixed batch answers 200 with per-recipient results", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/functions/send-notifications", map[string]any{
			"emails":  []string{"a@example.com", "bad@example.com", "c@example.com"},
			"subject": "Hello",
			"message": "Line one\nLine two",
			"type":    "event",
		}, true)
		require.Equal(t, http.StatusOK, w.Code)

		res := decode[notification.Result](t, w)
		assert.True(t, res.Success)
		assert.Equal(t, notification.Summary{Total: 3, Sent: 2, Failed: 1}, res.Summary)
		require.Len(t, res.Results, 3)
		assert.Equal(t, "bad@example.com", res.Results[1].Email)
		assert.Equal(t, "Invalid `to` field", res.Results[1].Error)
	})

	t.Run("empty list is a validation error", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/functions/send-notifications", map[string]any{
			"emails": []string{}, "subject": "s", "message": "m",
		}, true)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No email addresses provided", decode[models.DispatchFailure](t, w).Error)
	})

	t.Run("missing subject is a validation error", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/functions/send-notifications", map[string]any{
			"emails": []string{"a@example.com"}, "message": "m",
		}, true)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Subject and message are required", decode[models.DispatchFailure](t, w).Error)
	})

	t.Run("malformed body is an internal error", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/functions/send-notifications", "{not json", true)
		require.Equal(t, http.StatusInternalServerError, w.Code)
		failure := decode[models.DispatchFailure](t, w)
		assert.Equal(t, "Internal server error", failure.Error)
		assert.NotEmpty(t, failure.Message)
	})
}

func TestSendNotifications_Access(t *testing.T) {
	ts := newTestServer(t, &fakeSender{})
	payload := `{"emails":["a@example.com"],"subject":"s","message":"m"}`

	send := func(header, value string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/functions/send-notifications", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		if header != "" {
			req.Header.Set(header, value)
		}
		w := httptest.NewRecorder()
		ts.router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusUnauthorized, send("", ""))
	assert.Equal(t, http.StatusUnauthorized, send("apikey", "wrong"))
	assert.Equal(t, http.StatusUnauthorized, send("Authorization", "Bearer wrong"))
	assert.Equal(t, http.StatusOK, send("apikey", functionKey))
	assert.Equal(t, http.StatusOK, send("Authorization", "Bearer "+functionKey))
	assert.Equal(t, http.StatusOK, send("Authorization", "Bearer "+ts.token))
	assert.Len(t, ts.sender.sent, 3)
}

func TestSendNotifications_BodyShape(t *testing.T) {
	ts := newTestServer(t, &fakeSender{})

	w := ts.do(t, http.MethodPost, "/api/functions/send-notifications", "[]", true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No email addresses provided", decode[models.DispatchFailure](t, w).Error)

	huge := `{"emails":["a@example.com"],"subject":"s","message":"` + strings.Repeat("x", 2<<20) + `"}`
	w = ts.do(t, http.MethodPost, "/api/functions/send-notifications", huge, true)
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "Request body too large", decode[models.DispatchFailure](t, w).Error)
	assert.Empty(t, ts.sender.sent)
}

func TestSendNotifications_NotConfigured(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodPost, "/api/functions/send-notifications", map[string]any{
		"emails": []string{"a@example.com"}, "subject": "s", "message": "m",
	}, true)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Email service not configured", decode[models.DispatchFailure](t, w).Error)
}

func TestAdminRoutesRequireSession(t *testing.T) {
	ts := newTestServer(t, &fakeSender{})

	for _, path := range []string{"/api/members", "/api/expenses", "/api/notifications", "/api/auth/session"} {
		w := ts.do(t, http.MethodGet, path, nil, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	for _, path := range []string{"/api/events", "/api/meetings", "/api/gallery"} {
		w := ts.do(t, http.MethodGet, path, nil, false)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := ts.do(t, http.MethodPost, "/api/events", map[string]string{"title": "x", "date": "2025-06-01"}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginAndLogout(t *testing.T) {
	ts := newTestServer(t, &fakeSender{})

	w := ts.do(t, http.MethodPost, "/api/auth/login", map[string]string{"password": "nope"}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(t, http.MethodGet, "/api/auth/session", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPost, "/api/auth/logout", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/api/members", nil, true)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMembers(t *testing.T) {
	ts := newTestServer(t, &fakeSender{})

	w := ts.do(t, http.MethodPost, "/api/members", map[string]string{"name": "Ada", "email": "ada@example.com"}, true)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[models.MemberResponse](t, w)
	assert.Equal(t, "active", created.Status)

	w = ts.do(t, http.MethodPost, "/api/members", map[string]string{"name": "Ada", "email": "ADA@example.com"}, true)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "A member with this email already exists.", decode[models.ErrorResponse](t, w).Error)

	w = ts.do(t, http.MethodPost, "/api/members", map[string]string{"name": "No Email"}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/api/members?q=ada", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.MemberResponse](t, w), 1)

	w = ts.do(t, http.MethodGet, "/api/members/"+created.ID, nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ada@example.com", decode[models.MemberResponse](t, w).Email)

	w = ts.do(t, http.MethodGet, "/api/members/"+created.ID, nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(t, http.MethodDelete, "/api/members/"+created.ID, nil, true)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodDelete, "/api/members/"+created.ID, nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateEvent_NotifiesActiveMembers(t *testing.T) {
	ts := newTestServer(t, &fakeSender{})

	for _, m := range []map[string]string{
		{"name": "A", "email": "a@example.com"},
		{"name": "B", "email": "bad@example.com"},
		{"name": "C", "email": "c@example.com", "status": "inactive"},
	} {
		require.Equal(t, http.StatusCreated, ts.do(t, http.MethodPost, "/api/members", m, true).Code)
	}

	w := ts.do(t, http.MethodPost, "/api/events", map[string]any{
		"title":    "Runway Night",
		"date":     "2025-06-01",
		"time":     "18:30",
		"location": "Hall A",
	}, true)
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decode[models.EventCreatedResponse](t, w)
	assert.Equal(t, "Runway Night", resp.Data.Title)
	assert.Equal(t, notification.OutcomePartial, resp.Notifications.Status)
	require.NotNil(t, resp.Notifications.Summary)
	assert.Equal(t, 2, resp.Notifications.Summary.Total)
	assert.Equal(t, 1, resp.Notifications.Summary.Failed)
	assert.Contains(t, resp.Message, "1 of 2")
	assert.Equal(t, []string{"a@example.com"}, ts.sender.sent)

	// The in-app notification exists regardless of email outcome.
	w = ts.do(t, http.MethodGet, "/api/notifications/count", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.NotificationCountResponse{Total: 1, Unread: 1}, decode[models.NotificationCountResponse](t, w))

	w = ts.do(t, http.MethodGet, "/api/events", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.EventResponse](t, w), 1)

	w = ts.do(t, http.MethodGet, "/api/events/"+resp.Data.ID, nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Runway Night", decode[models.EventResponse](t, w).Title)

	w = ts.do(t, http.MethodGet, "/api/meetings/"+resp.Data.ID, nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateMeeting_BadTime(t *testing.T) {
	ts := newTestServer(t, &fakeSender{})

	w := ts.do(t, http.MethodPost, "/api/meetings", map[string]any{
		"title": "Committee", "date": "2025-06-01", "time": "half past six",
	}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExpenses(t *testing.T) {
	ts := newTestServer(t, &fakeSender{})

	for _, e := range []map[string]any{
		{"item": "Lights", "amount": "120.50", "category": "Equipment", "date": "2025-05-01"},
		{"item": "Pizza", "amount": 30, "category": "Food & Beverages", "date": "2025-05-02"},
	} {
		require.Equal(t, http.StatusCreated, ts.do(t, http.MethodPost, "/api/expenses", e, true).Code)
	}

	w := ts.do(t, http.MethodPost, "/api/expenses", map[string]any{
		"item": "Refund", "amount": "-5", "category": "Other", "date": "2025-05-03",
	}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/api/expenses", map[string]any{
		"item": "Mystery", "amount": "5", "category": "Snacks", "date": "2025-05-03",
	}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/api/expenses?category=Equipment", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.ExpenseResponse](t, w), 1)

	w = ts.do(t, http.MethodGet, "/api/expenses/summary?category=all", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	summary := decode[models.ExpenseSummaryResponse](t, w)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, "150.5", summary.Total.String())
}

func TestGalleryAndNotifications(t *testing.T) {
	ts := newTestServer(t, &fakeSender{})

	w := ts.do(t, http.MethodPost, "/api/gallery", map[string]any{"image_url": ""}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/api/gallery", map[string]any{"title": "Finale", "image_url": "https://img.example.com/1.jpg"}, true)
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodGet, "/api/notifications?unread=true", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]models.NotificationResponse](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "gallery", list[0].Type)

	w = ts.do(t, http.MethodPut, "/api/notifications/"+list[0].ID+"/read", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPut, "/api/notifications/missing/read", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodPut, "/api/notifications/read-all", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decode[map[string]any](t, w)["updated"])

	w = ts.do(t, http.MethodDelete, "/api/notifications/"+list[0].ID, nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFakeSenderSatisfiesProviderError(t *testing.T) {
	_, err := (&fakeSender{}).Send(context.Background(), &email.Message{To: "bad@example.com"})
	var perr *email.ProviderError
	assert.True(t, errors.As(err, &perr))
}
