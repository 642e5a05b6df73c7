package checkout

import (
	"context"
	"fmt"

	"github.com/junaidrashid-git/smartcart-api/catalog"
	"github.com/junaidrashid-git/smartcart-api/models"
	"gorm.io/gorm"
)

// GormRecorder stores orders next to the catalog and takes sold units out of stock in
// the same transaction.
type GormRecorder struct {
	store *catalog.GormStore
}

func NewGormRecorder(store *catalog.GormStore) *GormRecorder {
	return &GormRecorder{store: store}
}

func (r *GormRecorder) Record(ctx context.Context, receipt Receipt) error {
	items := make([]models.OrderItem, 0, len(receipt.Items))
	for _, line := range receipt.Items {
		items = append(items, models.OrderItem{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Category:    line.Product.Category,
			UnitPrice:   line.Product.Price,
			Quantity:    line.Quantity,
		})
	}
	order := models.Order{
		OrderRef:      receipt.OrderRef,
		SessionID:     receipt.SessionID,
		Items:         items,
		Subtotal:      receipt.Summary.Subtotal,
		Tax:           receipt.Summary.Tax,
		GrandTotal:    receipt.Summary.GrandTotal,
		PaymentMethod: string(receipt.Method),
		PaymentStatus: models.PaymentStatusPaid,
		PaymentRef:    receipt.Confirmation.Reference,
		CreatedAt:     receipt.CompletedAt,
	}

	err := r.store.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			if err := catalog.DecrementStock(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return fmt.Errorf("failed to record order %s: %w", receipt.OrderRef, err)
	}
	r.store.Changed("order")
	return nil
}

// ListOrders returns recorded orders, newest first.
func (r *GormRecorder) ListOrders(ctx context.Context, limit int) ([]models.Order, error) {
	var orders []models.Order
	q := r.store.DB().WithContext(ctx).Preload("Items").Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
