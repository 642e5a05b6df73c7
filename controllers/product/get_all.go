package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/smartcart-api/catalog"
)

// GetProducts lists the catalog snapshot.
// Query: search, category, in_stock
func GetProducts(snap *catalog.Snapshot) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := catalog.Filter{
			Search:   c.Query("search"),
			Category: c.Query("category"),
		}
		if v := c.Query("in_stock"); v != "" {
			inStock, err := strconv.ParseBool(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid in_stock"})
				return
			}
			filter.InStock = inStock
		}

		products := snap.Query(filter)
		c.Header("X-Catalog-Version", strconv.FormatUint(snap.Version(), 10))
		c.JSON(http.StatusOK, products)
	}
}
