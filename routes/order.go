package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/junaidrashid-git/smartcart-api/controllers/order"
	"github.com/junaidrashid-git/smartcart-api/middleware"
)

func SetupOrderRoutes(r *gin.Engine, d Deps) {
	checkoutGroup := r.Group("/session/checkout")
	checkoutGroup.Use(middleware.SessionAuth(d.JWTSecret, d.Sessions))
	{
		// Price breakdown and status
		checkoutGroup.GET("", orderControllers.GetQuote())

		// Pay for the cart
		checkoutGroup.POST("", orderControllers.Checkout())
	}
}
