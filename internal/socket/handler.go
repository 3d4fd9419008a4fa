// internal/socket/handler.go
package socket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Marga-Ghale/club-portal/internal/api/middleware"
	"github.com/Marga-Ghale/club-portal/internal/session"
)

// Handler upgrades authenticated requests to live feed connections.
type Handler struct {
	Hub      *Hub
	gate     *session.Gate
	upgrader websocket.Upgrader
}

// NewHandler builds the upgrade handler. allowedOrigins mirrors the CORS
// setting; "*" or an empty list accepts any origin.
func NewHandler(hub *Hub, gate *session.Gate, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &Handler{
		Hub:  hub,
		gate: gate,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowed) == 0 || allowed["*"] || allowed[origin]
			},
		},
	}
}

// HandleWebSocket takes the session token from the "token" query parameter,
// since browsers cannot set headers on WebSocket requests, or from a bearer header.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = middleware.BearerToken(c)
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
		return
	}

	sess, err := h.gate.Validate(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Hub.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		ID:        uuid.New().String(),
		SessionID: sess.ID,
		Conn:      conn,
		Hub:       h.Hub,
		Send:      make(chan []byte, 64),
	}
	if !h.Hub.Register(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
