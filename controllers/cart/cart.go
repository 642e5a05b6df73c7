package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/smartcart-api/cart"
	"github.com/junaidrashid-git/smartcart-api/checkout"
	"github.com/junaidrashid-git/smartcart-api/middleware"
	"github.com/junaidrashid-git/smartcart-api/session"
)

type CartItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  *int   `json:"quantity"`
}

type QuantityInput struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type BatchInput struct {
	ProductIDs []string `json:"product_ids" binding:"required"`
}

func cartResponse(c cart.Cart) gin.H {
	return gin.H{
		"items":      c.Items,
		"total":      c.Total,
		"item_count": c.ItemCount(),
	}
}

// cartError maps session and cart failures onto HTTP statuses.
func cartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrUnknownProduct):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product does not exist"})
	case errors.Is(err, session.ErrOutOfStock):
		c.JSON(http.StatusConflict, gin.H{"error": "Product is out of stock"})
	case errors.Is(err, checkout.ErrInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": "Checkout in progress"})
	case errors.Is(err, cart.ErrInvalidQuantity), errors.Is(err, cart.ErrInvalidProduct):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
	}
}

// GET /session/cart
func GetCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)
		c.JSON(http.StatusOK, cartResponse(s.Cart()))
	}
}

// POST /session/cart
func AddToCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		quantity := 1
		if input.Quantity != nil {
			quantity = *input.Quantity
		}

		s := middleware.CurrentSession(c)
		if err := s.AddProduct(input.ProductID, quantity); err != nil {
			cartError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartResponse(s.Cart()))
	}
}

// POST /session/cart/batch adds one unit of each listed product.
func AddBatchToCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input BatchInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		s := middleware.CurrentSession(c)
		added, err := s.AddProducts(input.ProductIDs)
		if err != nil {
			cartError(c, err)
			return
		}
		resp := cartResponse(s.Cart())
		resp["added"] = added
		c.JSON(http.StatusOK, resp)
	}
}

// PUT /session/cart/:product_id sets an absolute quantity. Zero or less removes the line.
func UpdateCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input QuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		s := middleware.CurrentSession(c)
		if err := s.UpdateQuantity(c.Param("product_id"), *input.Quantity); err != nil {
			cartError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartResponse(s.Cart()))
	}
}

// DELETE /session/cart/:product_id
func RemoveCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)
		if err := s.Remove(c.Param("product_id")); err != nil {
			cartError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartResponse(s.Cart()))
	}
}

// DELETE /session/cart
func ClearCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)
		if err := s.Clear(); err != nil {
			cartError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartResponse(s.Cart()))
	}
}
