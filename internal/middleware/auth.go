package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"skillup/api/internal/models"
)

const (
	SessionHeader     = "X-Session-Token"
	sessionContextKey = "session"
)

// SessionVerifier resolves a session token, returning nil for anything that
// is not a live session.
type SessionVerifier interface {
	VerifySession(ctx context.Context, token string) *models.Session
}

// Session resolves the X-Session-Token header when present. It never aborts;
// pair it with RequireSession or RequireAdmin on routes that need a caller.
func Session(verifier SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader(SessionHeader))
		if token != "" {
			if session := verifier.VerifySession(c.Request.Context(), token); session != nil {
				c.Set(sessionContextKey, session)
			}
		}
		c.Next()
	}
}

func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// CurrentSession returns the session resolved by Session, or nil.
func CurrentSession(c *gin.Context) *models.Session {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	session, _ := value.(*models.Session)
	return session
}
