package models

import (
	"time"

	"gorm.io/gorm"
)

// Promotion discount types
const (
	DiscountPercentage = "PERCENTAGE"
	DiscountFixed      = "FIXED"
)

// Promotion is a discount code with a validity window and usage cap.
// Codes are stored uppercase; validation normalizes input before lookup.
type Promotion struct {
	gorm.Model
	Code              string     `gorm:"unique;not null" json:"code"`
	Description       string     `gorm:"type:text;default:''" json:"description"`
	DiscountType      string     `gorm:"not null" json:"discount_type"` // PERCENTAGE, FIXED
	DiscountValue     float64    `gorm:"not null" json:"discount_value"`
	MaxDiscountAmount *float64   `json:"max_discount_amount"` // percentage ceiling, optional
	MinPurchaseAmount float64    `gorm:"default:0" json:"min_purchase_amount"`
	StartDate         time.Time  `json:"start_date"`
	EndDate           time.Time  `json:"end_date"`
	UsageLimit        *int       `json:"usage_limit"`
	UsedCount         int        `gorm:"default:0" json:"used_count"`
	IsActive          bool       `gorm:"default:true" json:"is_active"`
	IsDeleted         bool       `gorm:"default:false" json:"-"`
}
