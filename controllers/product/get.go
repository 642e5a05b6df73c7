package productcontroller

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/smartcart-api/catalog"
	"github.com/junaidrashid-git/smartcart-api/models"
)

// GetProductByID returns a single product from the snapshot.
// URL param: /products/:id
func GetProductByID(snap *catalog.Snapshot) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, ok := snap.Find(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// GetProductByBarcode looks a code up in the store.
// URL param: /products/barcode/:code
func GetProductByBarcode(store catalog.Store) gin.HandlerFunc {
	return lookup(store.GetByBarcode)
}

// GetProductByQRCode looks a code up in the store.
// URL param: /products/qr/:code
func GetProductByQRCode(store catalog.Store) gin.HandlerFunc {
	return lookup(store.GetByQRCode)
}

func lookup(find func(ctx context.Context, code string) (models.Product, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := find(c.Request.Context(), c.Param("code"))
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
