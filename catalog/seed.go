package catalog

import (
	"context"

	"github.com/junaidrashid-git/smartcart-api/models"
	"github.com/shopspring/decimal"
)

func demo(id, name, price, barcode, category string, stock int, photo string) models.Product {
	return models.Product{
		ID:            id,
		Name:          name,
		Price:         decimal.RequireFromString(price),
		Barcode:       barcode,
		QRCode:        "QR-" + barcode,
		Category:      category,
		StockQuantity: stock,
		ImageURL:      "https://images.pexels.com/photos/" + photo + "/pexels-photo-" + photo + ".jpeg",
	}
}

// DemoProducts is the in-store demo catalog.
func DemoProducts() []models.Product {
	return []models.Product{
		demo("1", "Organic Bananas", "2.99", "1234567890123", "Fruits", 50, "2238309"),
		demo("2", "Whole Grain Bread", "3.49", "2345678901234", "Bakery", 25, "209206"),
		demo("3", "Greek Yogurt", "4.99", "3456789012345", "Dairy", 30, "793759"),
		demo("4", "Fresh Apples", "3.99", "4567890123456", "Fruits", 40, "102104"),
		demo("5", "Premium Coffee", "12.99", "5678901234567", "Beverages", 15, "894695"),
		demo("6", "Organic Spinach", "2.49", "6789012345678", "Vegetables", 20, "2325843"),
		demo("7", "Organic Chicken Breast", "8.99", "7890123456789", "Meat", 12, "616354"),
		demo("8", "Artisan Pasta", "4.49", "8901234567890", "Pantry", 35, "1279330"),
		demo("9", "Fresh Salmon Fillet", "15.99", "9012345678901", "Seafood", 8, "725991"),
		demo("10", "Organic Quinoa", "6.99", "0123456789012", "Grains", 22, "1640777"),
	}
}

// Seed inserts the demo catalog when the product table is empty. It reports how many
// rows it created.
func Seed(ctx context.Context, s *GormStore) (int, error) {
	n, err := s.Count(ctx)
	if err != nil || n > 0 {
		return 0, err
	}
	products := DemoProducts()
	if err := s.db.WithContext(ctx).Create(&products).Error; err != nil {
		return 0, err
	}
	s.changed("seed")
	return len(products), nil
}
