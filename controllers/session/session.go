package sessionController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/smartcart-api/auth"
	"github.com/junaidrashid-git/smartcart-api/session"
)

// POST /sessions starts a shopping session and returns its token.
func CreateSession(sessions *session.Manager, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.Create()

		token, expiresAt, err := auth.IssueSessionToken(secret, s.ID, sessions.TTL())
		if err != nil {
			sessions.Delete(s.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"session_id": s.ID,
			"token":      token,
			"expires_at": expiresAt,
		})
	}
}
