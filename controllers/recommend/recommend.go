package recommendController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/smartcart-api/middleware"
	"github.com/junaidrashid-git/smartcart-api/recommend"
)

// POST /session/recommendations
func Recommend() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req recommend.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if req.Servings == 0 {
			req.Servings = 1
		}
		if req.Occasion == "" {
			req.Occasion = recommend.OccasionDaily
		}
		occasion, err := recommend.ParseOccasion(string(req.Occasion))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		req.Occasion = occasion
		if err := req.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res := middleware.CurrentSession(c).Recommend(req)
		c.JSON(http.StatusOK, gin.H{
			"products":   res.Products,
			"total_cost": res.TotalCost,
			"remaining":  res.Remaining(req.Budget),
		})
	}
}
