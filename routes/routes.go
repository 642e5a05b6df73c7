package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/smartcart-api/catalog"
	orderControllers "github.com/junaidrashid-git/smartcart-api/controllers/order"
	"github.com/junaidrashid-git/smartcart-api/session"
)

// Deps is everything the handlers are built from.
type Deps struct {
	Snapshot    *catalog.Snapshot
	Store       *catalog.GormStore
	Sessions    *session.Manager
	Orders      orderControllers.OrderLister
	CatalogFeed *orderControllers.Hub
	OrderFeed   *orderControllers.Hub
	JWTSecret   string
	AdminAPIKey string
}

// SetupRoutes is the single entry point that wires up the public, session and admin
// route groups.
func SetupRoutes(r *gin.Engine, d Deps) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "smartcart api is running")
	})

	// Public catalog and session creation
	SetupAuthRoutes(r, d)
	SetupProductRoutes(r, d)

	// Session routes (JWT-protected)
	SetupSessionRoutes(r, d)
	SetupOrderRoutes(r, d)

	// Admin routes (API-Key-protected)
	SetupAdminRoutes(r, d)
}
