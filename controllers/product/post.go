package productcontroller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/smartcart-api/catalog"
	"github.com/junaidrashid-git/smartcart-api/models"
	"github.com/shopspring/decimal"
)

type productInput struct {
	ID            string          `json:"id"`
	Name          string          `json:"name" binding:"required"`
	Price         decimal.Decimal `json:"price"`
	Barcode       string          `json:"barcode"`
	QRCode        string          `json:"qr_code"`
	ImageURL      string          `json:"image_url"`
	Category      string          `json:"category"`
	StockQuantity int             `json:"stock_quantity"`
	Description   string          `json:"description"`
}

// CreateProduct adds a product to the catalog.
func CreateProduct(store *catalog.GormStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input productInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}

		product := models.Product{
			ID:            strings.TrimSpace(input.ID),
			Name:          strings.TrimSpace(input.Name),
			Price:         input.Price.Round(2),
			Barcode:       strings.TrimSpace(input.Barcode),
			QRCode:        strings.TrimSpace(input.QRCode),
			ImageURL:      input.ImageURL,
			Category:      input.Category,
			StockQuantity: input.StockQuantity,
			Description:   input.Description,
		}
		if err := store.Create(c.Request.Context(), &product); err != nil {
			if errors.Is(err, catalog.ErrInvalidStock) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
