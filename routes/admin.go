package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/junaidrashid-git/smartcart-api/controllers/order"
	productcontroller "github.com/junaidrashid-git/smartcart-api/controllers/product"
	"github.com/junaidrashid-git/smartcart-api/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-Key middleware.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(d.AdminAPIKey))
	{
		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(d.Store))
			productAdmin.PUT("/:id/stock", productcontroller.UpdateStock(d.Store))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(d.Store))
			productAdmin.POST("/import-excel", productcontroller.ImportProductsFromExcel(d.Store))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(d.Store))
		}

		// ─────────── Orders ───────────
		adminGroup.GET("/orders", orderControllers.GetAllOrders(d.Orders))
		if d.OrderFeed != nil {
			adminGroup.GET("/ws/orders", d.OrderFeed.Handler())
		}
	}
}
