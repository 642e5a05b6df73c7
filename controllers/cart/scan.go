package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/smartcart-api/middleware"
	"github.com/junaidrashid-git/smartcart-api/scanner"
)

// POST /session/scan resolves decoded barcode or QR text and adds one unit when found.
func Scan() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Text string `json:"text"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		s := middleware.CurrentSession(c)
		res, err := s.Scan(c.Request.Context(), input.Text)
		if err != nil {
			cartError(c, err)
			return
		}

		status := http.StatusOK
		if res.Status == scanner.StatusNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{
			"result": res,
			"cart":   cartResponse(s.Cart()),
		})
	}
}
