package socket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Marga-Ghale/club-portal/internal/repository"
	"github.com/Marga-Ghale/club-portal/internal/session"
	"github.com/Marga-Ghale/club-portal/internal/types"
)

func setupFeed(t *testing.T) (*Hub, *httptest.Server, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gate, err := session.NewGate("secret-pass", "signing-key", time.Hour, session.NewMemoryStore())
	require.NoError(t, err)
	token, _, err := gate.Login(context.Background(), "secret-pass")
	require.NoError(t, err)

	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)

	r := gin.New()
	r.GET("/ws", NewHandler(hub, gate, nil).HandleWebSocket)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return hub, srv, token
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func TestHandleWebSocket_RejectsMissingToken(t *testing.T) {
	_, srv, _ := setupFeed(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandleWebSocket_RejectsBadToken(t *testing.T) {
	_, srv, _ := setupFeed(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv)+"?token=garbage", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestBroadcaster_PublishNotification(t *testing.T) {
	hub, srv, token := setupFeed(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv)+"?token="+token, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ConnectedClients() == 1 }, 2*time.Second, 10*time.Millisecond)

	NewBroadcaster(hub).PublishNotification(&repository.Notification{
		ID:      "n-1",
		Title:   "New Event: Gala",
		Message: "Gala has been scheduled.",
		Type:    types.CategoryEvent,
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, MessageNotification, msg.Type)
	assert.Equal(t, "n-1", msg.Payload["id"])
	assert.Equal(t, "New Event: Gala", msg.Payload["title"])
	assert.Equal(t, false, msg.Payload["is_read"])
}

func TestClient_PingPong(t *testing.T) {
	hub, srv, token := setupFeed(t)

	header := http.Header{"Authorization": []string{"Bearer " + token}}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), header)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ConnectedClients() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(ClientMessage{Action: "ping"}))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, MessagePong, msg.Type)
}

func TestHub_UnregisterOnClose(t *testing.T) {
	hub, srv, token := setupFeed(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv)+"?token="+token, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.ConnectedClients() == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.ConnectedClients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestClient_PongAfterHubStopped(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	client := &Client{ID: "c-1", Hub: hub, Send: make(chan []byte, 1)}
	require.True(t, hub.Register(client))
	require.Eventually(t, func() bool { return hub.ConnectedClients() == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-stopped

	_, open := <-client.Send
	assert.False(t, open)
	assert.NotPanics(t, client.sendPong)
	assert.False(t, hub.Register(client))
}

func TestHub_SendToDropsSlowClient(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := &Client{ID: "c-1", Hub: hub, Send: make(chan []byte, 1)}
	require.True(t, hub.Register(client))

	client.sendPong()
	client.sendPong()

	assert.Eventually(t, func() bool { return hub.ConnectedClients() == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.NotPanics(t, client.sendPong)
}
