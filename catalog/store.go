// Package catalog owns the product table, the change bus that announces edits to it and
// the in-memory snapshot sessions browse.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/junaidrashid-git/smartcart-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound     = errors.New("product not found")
	ErrInvalidStock = errors.New("stock quantity cannot be negative")
)

// Store is the read side every session depends on, plus the one write the checkout
// flow needs.
type Store interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (models.Product, error)
	GetByBarcode(ctx context.Context, code string) (models.Product, error)
	GetByQRCode(ctx context.Context, code string) (models.Product, error)
	UpdateStock(ctx context.Context, id string, quantity int) error
}

// GormStore keeps products in any gorm dialect and announces every write on notifier.
type GormStore struct {
	db       *gorm.DB
	notifier *Notifier
}

// NewGormStore wraps db. notifier may be nil.
func NewGormStore(db *gorm.DB, notifier *Notifier) *GormStore {
	return &GormStore{db: db, notifier: notifier}
}

func (s *GormStore) changed(reason string) {
	if s.notifier != nil {
		s.notifier.Publish(reason)
	}
}

// List returns every product ordered by name.
func (s *GormStore) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("name asc").Order("id asc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *GormStore) first(ctx context.Context, query string, arg string) (models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).Where(query, arg).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, fmt.Errorf("failed to find product: %w", err)
	}
	return product, nil
}

func (s *GormStore) GetByID(ctx context.Context, id string) (models.Product, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *GormStore) GetByBarcode(ctx context.Context, code string) (models.Product, error) {
	if code == "" {
		return models.Product{}, ErrNotFound
	}
	return s.first(ctx, "barcode = ?", code)
}

func (s *GormStore) GetByQRCode(ctx context.Context, code string) (models.Product, error) {
	if code == "" {
		return models.Product{}, ErrNotFound
	}
	return s.first(ctx, "qr_code = ?", code)
}

// UpdateStock sets the absolute stock level of a product.
func (s *GormStore) UpdateStock(ctx context.Context, id string, quantity int) error {
	if quantity < 0 {
		return ErrInvalidStock
	}
	result := s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("stock_quantity", quantity)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	s.changed("stock")
	return nil
}

// Create inserts a new product. An empty ID is filled in by the model hook.
func (s *GormStore) Create(ctx context.Context, product *models.Product) error {
	if product.StockQuantity < 0 {
		return ErrInvalidStock
	}
	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	s.changed("create")
	return nil
}

// Upsert inserts product or overwrites the row with the same ID. It reports whether a
// new row was created.
func (s *GormStore) Upsert(ctx context.Context, product *models.Product) (bool, error) {
	created, err := s.upsert(ctx, product)
	if err != nil {
		return false, err
	}
	s.changed("upsert")
	return created, nil
}

// upsert writes without publishing so bulk callers can announce the batch once.
func (s *GormStore) upsert(ctx context.Context, product *models.Product) (bool, error) {
	if product.StockQuantity < 0 {
		return false, ErrInvalidStock
	}
	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		err := tx.Where("id = ?", product.ID).First(&existing).Error
		switch {
		case product.ID == "" || errors.Is(err, gorm.ErrRecordNotFound):
			created = true
			return tx.Create(product).Error
		case err != nil:
			return err
		}
		product.CreatedAt = existing.CreatedAt
		return tx.Save(product).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to upsert product: %w", err)
	}
	return created, nil
}

// Delete removes a product by ID.
func (s *GormStore) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	s.changed("delete")
	return nil
}

// Count returns the number of stored products.
func (s *GormStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

// DecrementStock lowers stock for a sold quantity inside tx, flooring at zero. Unknown
// products are skipped so a catalog edit never blocks recording a paid order. The caller
// publishes the change once its transaction commits.
func DecrementStock(tx *gorm.DB, id string, quantity int) error {
	var product models.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to lock product %s: %w", id, err)
	}
	remaining := product.StockQuantity - quantity
	if remaining < 0 {
		remaining = 0
	}
	if err := tx.Model(&models.Product{}).Where("id = ?", id).Update("stock_quantity", remaining).Error; err != nil {
		return fmt.Errorf("failed to decrement stock for %s: %w", id, err)
	}
	return nil
}

// Changed lets callers that wrote through DecrementStock announce the edit.
func (s *GormStore) Changed(reason string) {
	s.changed(reason)
}

// DB exposes the underlying handle so order recording can share a transaction.
func (s *GormStore) DB() *gorm.DB {
	return s.db
}
