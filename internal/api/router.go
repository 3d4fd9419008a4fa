// internal/api/router.go
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Marga-Ghale/club-portal/internal/api/handlers"
	"github.com/Marga-Ghale/club-portal/internal/api/middleware"
	"github.com/Marga-Ghale/club-portal/internal/metrics"
	"github.com/Marga-Ghale/club-portal/internal/session"
	"github.com/Marga-Ghale/club-portal/internal/socket"
)

// Status describes the backing services reported by /health.
type Status struct {
	Database        string
	Sessions        string
	EmailConfigured bool
}

type RouterDeps struct {
	Logger      *zap.Logger
	Handlers    *handlers.Handlers
	Gate        *session.Gate
	WebSocket   *socket.Handler  // nil disables /api/ws
	Metrics     *metrics.Metrics // nil disables /metrics
	CORSOrigins []string
	// Optional key for server-to-server calls to the dispatch function.
	FunctionKey string
	Status      Status
}

func NewRouter(deps RouterDeps) *gin.Engine {
	h := deps.Handlers

	r := gin.New()
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(deps.CORSOrigins)))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		body := gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"database":  deps.Status.Database,
			"sessions":  deps.Status.Sessions,
			"email":     emailStatus(deps.Status.EmailConfigured),
		}
		if deps.WebSocket != nil {
			body["ws_clients"] = deps.WebSocket.Hub.ConnectedClients()
		}
		c.JSON(http.StatusOK, body)
	})

	api := r.Group("/api")
	{
		// ============================================
		// Public routes
		// ============================================
		api.POST("/functions/send-notifications",
			middleware.RequireFunctionAccess(deps.Gate, deps.FunctionKey),
			h.Dispatch.SendNotifications)

		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/logout", h.Auth.Logout)
			auth.GET("/session", middleware.RequireSession(deps.Gate), h.Auth.Session)
		}

		api.GET("/events", h.Event.List)
		api.GET("/events/:id", h.Event.Get)
		api.GET("/meetings", h.Meeting.List)
		api.GET("/meetings/:id", h.Meeting.Get)
		api.GET("/gallery", h.Gallery.List)

		// The feed authenticates itself since browsers pass the token as a query parameter.
		if deps.WebSocket != nil {
			api.GET("/ws", deps.WebSocket.HandleWebSocket)
		}

		// ============================================
		// Admin routes
		// ============================================
		admin := api.Group("")
		admin.Use(middleware.RequireSession(deps.Gate))
		{
			members := admin.Group("/members")
			{
				members.GET("", h.Member.List)
				members.GET("/:id", h.Member.Get)
				members.POST("", h.Member.Create)
				members.DELETE("/:id", h.Member.Delete)
			}

			events := admin.Group("/events")
			{
				events.POST("", h.Event.Create)
				events.DELETE("/:id", h.Event.Delete)
			}

			meetings := admin.Group("/meetings")
			{
				meetings.POST("", h.Meeting.Create)
				meetings.DELETE("/:id", h.Meeting.Delete)
			}

			gallery := admin.Group("/gallery")
			{
				gallery.POST("", h.Gallery.Create)
				gallery.DELETE("/:id", h.Gallery.Delete)
			}

			expenses := admin.Group("/expenses")
			{
				expenses.GET("", h.Expense.List)
				expenses.GET("/summary", h.Expense.Summary)
				expenses.POST("", h.Expense.Create)
				expenses.DELETE("/:id", h.Expense.Delete)
			}

			notifications := admin.Group("/notifications")
			{
				notifications.GET("", h.Notification.List)
				notifications.GET("/count", h.Notification.Count)
				notifications.PUT("/read-all", h.Notification.MarkAllRead)
				notifications.PUT("/:id/read", h.Notification.MarkRead)
				notifications.DELETE("/:id", h.Notification.Delete)
			}
		}
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Client-Info", "Apikey", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}

	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func emailStatus(configured bool) string {
	if configured {
		return "configured"
	}
	return "disabled"
}
