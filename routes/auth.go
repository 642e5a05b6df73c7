package routes

import (
	"github.com/gin-gonic/gin"
	sessionController "github.com/junaidrashid-git/smartcart-api/controllers/session"
)

// SetupAuthRoutes registers session creation.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	r.POST("/sessions", sessionController.CreateSession(d.Sessions, d.JWTSecret))
}
