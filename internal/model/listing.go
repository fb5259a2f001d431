package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ListingTypeProduct = "product"
	ListingTypeService = "service"
	ListingTypeTicket  = "ticket"
)

// Listing is a sellable unit (product, service or event ticket). Its
// seller, category and optional per-item commission override all feed the
// commission resolution hierarchy.
type Listing struct {
	ID    string `gorm:"primaryKey;size:36;not null"`
	Type  string `gorm:"size:16;index;not null"`
	Title string `gorm:"size:256;not null"`

	SellerID   *string `gorm:"size:36;index"`
	CategoryID *string `gorm:"size:36;index"`

	// explicit override, wins over every rule when set (zero included)
	CommissionRate decimal.NullDecimal `gorm:"type:decimal(5,2)"`

	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency string          `gorm:"size:8;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
