package routes

import (
	"github.com/gin-gonic/gin"
	productcontroller "github.com/junaidrashid-git/smartcart-api/controllers/product"
)

// SetupProductRoutes registers the public browse endpoints and the catalog feed.
func SetupProductRoutes(r *gin.Engine, d Deps) {
	products := r.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(d.Snapshot))
		products.GET("/:id", productcontroller.GetProductByID(d.Snapshot))
		products.GET("/barcode/:code", productcontroller.GetProductByBarcode(d.Store))
		products.GET("/qr/:code", productcontroller.GetProductByQRCode(d.Store))
	}

	if d.CatalogFeed != nil {
		r.GET("/ws/catalog", d.CatalogFeed.Handler())
	}
}
