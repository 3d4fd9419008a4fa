package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/Marga-Ghale/club-portal/internal/api/middleware"
	"github.com/Marga-Ghale/club-portal/internal/models"
	"github.com/Marga-Ghale/club-portal/internal/session"
)

// ============================================
// Auth Handler
// ============================================

type AuthHandler struct {
	gate *session.Gate
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	token, sess, err := h.gate.Login(c.Request.Context(), req.Password)
	switch {
	case errors.Is(err, session.ErrInvalidPassword):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid password"})
		return
	case errors.Is(err, session.ErrGateDisabled):
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "Admin access is not configured"})
		return
	case err != nil:
		respondError(c, err, "Failed to start session")
		return
	}

	c.JSON(http.StatusOK, models.SessionResponse{Token: token, ExpiresAt: sess.ExpiresAt})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.BearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	if err := h.gate.Logout(c.Request.Context(), token); err != nil {
		if errors.Is(err, session.ErrInvalidSession) {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid session"})
			return
		}
		respondError(c, err, "Failed to end session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Session reports the caller's current session. It runs behind RequireSession.
func (h *AuthHandler) Session(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	c.JSON(http.StatusOK, models.SessionResponse{ExpiresAt: sess.ExpiresAt})
}
