package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Marga-Ghale/club-portal/internal/session"
	"github.com/Marga-Ghale/club-portal/pkg/logger"
)

const sessionKey = "session"

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(c *gin.Context) string {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireSession admits only requests carrying a live admin session.
func RequireSession(gate *session.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.FromContext(c.Request.Context())

		token := BearerToken(c)
		if token == "" {
			log.Debug("missing session token", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		sess, err := gate.Validate(c.Request.Context(), token)
		if err != nil {
			log.Info("rejected session token", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// RequireFunctionAccess admits a live admin session or, when functionKey is
// set, a caller presenting that key as a bearer token or apikey header.
func RequireFunctionAccess(gate *session.Gate, functionKey string) gin.HandlerFunc {
	requireSession := RequireSession(gate)
	return func(c *gin.Context) {
		if functionKey != "" {
			for _, presented := range []string{BearerToken(c), c.GetHeader("apikey")} {
				if presented != "" && subtle.ConstantTimeCompare([]byte(presented), []byte(functionKey)) == 1 {
					c.Next()
					return
				}
			}
		}
		requireSession(c)
	}
}

// GetSession returns the session set by RequireSession, or nil.
func GetSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}
