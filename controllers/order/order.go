package orderControllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/smartcart-api/checkout"
	"github.com/junaidrashid-git/smartcart-api/middleware"
	"github.com/junaidrashid-git/smartcart-api/models"
	"github.com/junaidrashid-git/smartcart-api/payment"
)

type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// OrderLister reads recorded orders.
type OrderLister interface {
	ListOrders(ctx context.Context, limit int) ([]models.Order, error)
}

// GET /session/checkout
func GetQuote() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)
		c.JSON(http.StatusOK, gin.H{
			"summary": s.Quote(),
			"status":  s.CheckoutStatus(),
		})
	}
}

// POST /session/checkout pays for the cart. The request waits for the payment step.
func Checkout() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.PaymentMethod == "" {
			req.PaymentMethod = string(payment.MethodCard)
		}
		method, err := payment.ParseMethod(req.PaymentMethod)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		s := middleware.CurrentSession(c)
		receipt, err := s.Checkout(c.Request.Context(), method)
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		case errors.Is(err, checkout.ErrInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": "Checkout already in progress"})
		case errors.Is(err, payment.ErrDeclined):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment declined", "status": s.CheckoutStatus()})
		case err != nil:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "status": s.CheckoutStatus()})
		default:
			c.JSON(http.StatusOK, gin.H{
				"message": "Order placed successfully",
				"receipt": receipt,
			})
		}
	}
}

// GET /admin/orders?limit=
func GetAllOrders(orders OrderLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		list, err := orders.ListOrders(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}
