package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/smartcart-api/catalog"
)

// UpdateStock sets the absolute stock level of a product.
// URL param: /admin/products/:id/stock
func UpdateStock(store catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			StockQuantity *int `json:"stock_quantity" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		err := store.UpdateStock(c.Request.Context(), c.Param("id"), *input.StockQuantity)
		switch {
		case errors.Is(err, catalog.ErrInvalidStock):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, catalog.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
		default:
			c.JSON(http.StatusOK, gin.H{"message": "Stock updated", "stock_quantity": *input.StockQuantity})
		}
	}
}
