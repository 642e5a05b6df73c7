package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog entry. The core treats it as a read-only value; stock and
// price changes arrive as a new catalog snapshot.
type Product struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	Name          string          `gorm:"not null;index" json:"name"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Barcode       string          `gorm:"index" json:"barcode"`
	QRCode        string          `gorm:"column:qr_code;index" json:"qr_code,omitempty"`
	ImageURL      string          `json:"image_url,omitempty"`
	Category      string          `gorm:"index" json:"category"`
	StockQuantity int             `gorm:"not null;default:0" json:"stock_quantity"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BeforeCreate assigns an id to products created without one.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.StockQuantity > 0
}
