package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/junaidrashid-git/smartcart-api/controllers/cart"
	recommendController "github.com/junaidrashid-git/smartcart-api/controllers/recommend"
	"github.com/junaidrashid-git/smartcart-api/middleware"
)

// SetupSessionRoutes registers all "/session/*" cart endpoints. Requires a session token.
func SetupSessionRoutes(r *gin.Engine, d Deps) {
	sessionGroup := r.Group("/session")
	sessionGroup.Use(middleware.SessionAuth(d.JWTSecret, d.Sessions))
	{
		cartGroup := sessionGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetCart())                       // GET /session/cart
			cartGroup.POST("", cartControllers.AddToCart())                    // POST /session/cart
			cartGroup.POST("/batch", cartControllers.AddBatchToCart())         // POST /session/cart/batch
			cartGroup.PUT("/:product_id", cartControllers.UpdateCartItem())    // PUT /session/cart/:product_id
			cartGroup.DELETE("/:product_id", cartControllers.RemoveCartItem()) // DELETE /session/cart/:product_id
			cartGroup.DELETE("", cartControllers.ClearCart())                  // DELETE /session/cart
		}

		sessionGroup.POST("/scan", cartControllers.Scan())
		sessionGroup.POST("/recommendations", recommendController.Recommend())
	}
}
