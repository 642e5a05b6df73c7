package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/smartcart-api/catalog"
)

// ImportProductsFromExcel upserts products from an uploaded workbook (form field "file").
func ImportProductsFromExcel(store *catalog.GormStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		report, err := catalog.ImportExcel(c.Request.Context(), store, file, excelFileHeader.Size)
		if err != nil {
			if errors.Is(err, catalog.ErrEmptySheet) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": report.Created,
			"updated_count": report.Updated,
			"skipped_count": report.Skipped,
		})
	}
}
