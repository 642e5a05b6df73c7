package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/smartcart-api/auth"
	"github.com/junaidrashid-git/smartcart-api/session"
	"go.uber.org/zap"
)

const sessionKey = "session"

const (
	// HeaderSessionToken carries a renewed token for a session in active use.
	HeaderSessionToken = "X-Session-Token"
	// HeaderSessionExpires is the RFC 3339 expiry of the renewed token.
	HeaderSessionExpires = "X-Session-Expires"
)

// SessionAuth resolves the Authorization token to a live session and stores it on the
// context. "Bearer " is optional. Once less than half of the session TTL is left on the
// token, a fresh one is returned in HeaderSessionToken so an active session keeps a valid
// token for as long as the session itself lives.
func SessionAuth(secret string, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}

		claims, err := auth.ParseSessionClaims(secret, tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		sessionID := claims.SessionID
		s, err := sessions.Get(sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			c.Abort()
			return
		}

		if ttl := sessions.TTL(); ttl > 0 && claims.ExpiresAt != nil && time.Until(claims.ExpiresAt.Time) < ttl/2 {
			renewed, expiresAt, err := auth.IssueSessionToken(secret, sessionID, ttl)
			if err != nil {
				zap.S().Warnw("session token renewal failed", "namespace", "auth", "session", sessionID, "error", err)
			} else {
				c.Header(HeaderSessionToken, renewed)
				c.Header(HeaderSessionExpires, expiresAt.UTC().Format(time.RFC3339))
			}
		}

		c.Set("session_id", sessionID)
		c.Set(sessionKey, s)
		c.Next()
	}
}

// CurrentSession returns the session SessionAuth attached.
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}
