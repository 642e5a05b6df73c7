package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPaid   PaymentStatus = "paid"   // Payment step reported success
	PaymentStatusFailed PaymentStatus = "failed" // Payment step reported failure
)

// Order is the persisted receipt of a completed checkout.
type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	OrderRef      string          `gorm:"uniqueIndex;size:64" json:"order_ref"`
	SessionID     string          `gorm:"index;size:36" json:"session_id"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(12,2)" json:"subtotal"`
	Tax           decimal.Decimal `gorm:"type:numeric(12,2)" json:"tax"`
	GrandTotal    decimal.Decimal `gorm:"type:numeric(12,2)" json:"grand_total"`
	PaymentMethod string          `json:"payment_method"` // "card" or "cash"
	PaymentStatus PaymentStatus   `gorm:"type:VARCHAR(20);default:'paid'" json:"payment_status"`
	PaymentRef    string          `json:"payment_ref"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OrderItem snapshots a cart line at checkout time.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     uint            `gorm:"index" json:"-"`
	ProductID   string          `gorm:"size:36" json:"product_id"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2)" json:"unit_price"`
	Quantity    int             `json:"quantity"`
}
