package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Discount types for the wholesale rule.
const (
	DiscountTypePercentage  = "percentage"
	DiscountTypeFixedAmount = "fixed_amount"
)

// DiscountSettings is a singleton row (ID = 1) holding the wholesale discount
// policy. A cart whose total unit count reaches WholesaleMinUnits qualifies
// for the configured order-wide discount.
type DiscountSettings struct {
	ID                       int             `gorm:"primaryKey"`
	WholesaleMinUnits        int             `gorm:"not null;default:5"`
	DiscountType             string          `gorm:"type:varchar(20);not null;default:'percentage'"`
	WholesaleDiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:1"`
	WholesaleDiscountAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	UpdatedAt                time.Time
}

func (DiscountSettings) TableName() string { return "discount_settings" }
