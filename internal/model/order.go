package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusPaid       = "paid"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
	OrderStatusRejected   = "rejected"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

type Order struct {
	ID          string `gorm:"primaryKey;size:36;not null"`
	OrderNumber string `gorm:"size:32;uniqueIndex;not null"`

	CustomerName  string `gorm:"size:128"`
	CustomerEmail string `gorm:"size:128;index;not null"`
	CustomerPhone string `gorm:"size:32"`

	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ShippingAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency       string          `gorm:"size:8;not null"`

	Status        string `gorm:"size:16;index;not null"`
	PaymentStatus string `gorm:"size:16;not null;default:pending"`

	// nil for guest checkout; guests authenticate by customer email instead
	UserID  *string `gorm:"size:36;index"`
	EventID *string `gorm:"size:36;index"`

	// provider transaction reference, set once by intent creation
	PaymentIntentID *string `gorm:"size:64;index"`

	TotalCommission decimal.NullDecimal `gorm:"type:decimal(12,2)"`

	PaidAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	ID      string `gorm:"primaryKey;size:36;not null"`
	OrderID string `gorm:"size:36;index;not null"`

	// FK → listing.id, with title/type denormalized at checkout time
	ListingID   string `gorm:"size:36;index;not null"`
	ListingType string `gorm:"size:16;not null"` // product | service | ticket
	Title       string `gorm:"size:256;not null"`

	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	// populated by commission resolution, absent until it runs
	SellerID         *string             `gorm:"size:36;index"`
	CommissionRate   decimal.NullDecimal `gorm:"type:decimal(5,2)"`
	CommissionAmount decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	CommissionSource string              `gorm:"size:16"`

	VariantID *string `gorm:"size:36"`
	Metadata  string  `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
