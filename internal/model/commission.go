package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	RuleTypeDefault     = "default"
	RuleTypeCategory    = "category"
	RuleTypeEvent       = "event"
	RuleTypeSeller      = "seller"
	RuleTypeProductType = "product_type"
)

// CommissionRule specifies the platform's cut at one scope of the
// resolution hierarchy. Rules are not unique per scope; lookup is by
// precedence over the active set.
type CommissionRule struct {
	ID       string `gorm:"primaryKey;size:36;not null"`
	RuleType string `gorm:"size:16;index;not null"`

	// scopes the rule to a category/event/seller/listing; nil for default rules
	ReferenceID *string `gorm:"size:36;index"`

	// no column default here: gorm omits false from inserts when one is
	// set, which would store explicitly disabled rules as active
	Rate        decimal.Decimal `gorm:"type:decimal(5,2);not null"` // percent, 0-100
	IsActive    bool            `gorm:"index;not null"`
	Description string          `gorm:"size:256"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *CommissionRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func ValidRuleType(t string) bool {
	switch t {
	case RuleTypeDefault, RuleTypeCategory, RuleTypeEvent, RuleTypeSeller, RuleTypeProductType:
		return true
	}
	return false
}
