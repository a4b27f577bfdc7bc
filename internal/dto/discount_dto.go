package dto

import "github.com/shopspring/decimal"

// UpdateDiscountSettingsRequest replaces the singleton wholesale policy.
type UpdateDiscountSettingsRequest struct {
	WholesaleMinUnits        int             `json:"wholesale_min_units"        validate:"required,min=1"`
	DiscountType             string          `json:"discount_type"              validate:"required,oneof=percentage fixed_amount"`
	WholesaleDiscountPercent decimal.Decimal `json:"wholesale_discount_percent" validate:"min=0,max=100"`
	WholesaleDiscountAmount  decimal.Decimal `json:"wholesale_discount_amount"  validate:"min=0"`
}

type DiscountSettingsResponse struct {
	WholesaleMinUnits        int             `json:"wholesale_min_units"`
	DiscountType             string          `json:"discount_type"`
	WholesaleDiscountPercent decimal.Decimal `json:"wholesale_discount_percent"`
	WholesaleDiscountAmount  decimal.Decimal `json:"wholesale_discount_amount"`
}
