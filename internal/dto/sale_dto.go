package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	// Quantity is decimal because meat products are sold by weight
	Quantity    decimal.Decimal `json:"quantity"     validate:"required"`
	DiscountPct decimal.Decimal `json:"discount_pct" validate:"min=0,max=100"`
}

type CheckoutRequest struct {
	LocationID        string            `json:"location_id"          validate:"required,uuid"`
	Items             []SaleItemRequest `json:"items"                validate:"required,min=1,dive"`
	GlobalDiscountPct decimal.Decimal   `json:"global_discount_pct"  validate:"min=0,max=100"`
	PaymentMethod     string            `json:"payment_method"       validate:"required,oneof=cash card gcash transfer"`
}

type ReverseSaleRequest struct {
	Reason string `json:"reason" validate:"required,min=5"`
}

// ResecoRequest applies a manual post-sale cash deduction used for
// reconciling cash variance — unrelated to product discounting.
type ResecoRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// ─── Filter / List ──────────────────────────────────────────────────────────

type SaleFilter struct {
	Date       string `form:"date"`                     // YYYY-MM-DD; empty = today
	Status     string `form:"status,default=completed"` // completed | reversed | all
	LocationID string `form:"location_id" validate:"omitempty,uuid"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	Product     string          `json:"product"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type SaleResponse struct {
	ID                string             `json:"id"`
	TransactionID     string             `json:"transaction_id"`
	LocationID        string             `json:"location_id"`
	Items             []SaleItemResponse `json:"items"`
	Subtotal          decimal.Decimal    `json:"subtotal"`
	GlobalDiscount    decimal.Decimal    `json:"global_discount"`
	WholesaleDiscount decimal.Decimal    `json:"wholesale_discount"`
	Wholesale         bool               `json:"wholesale"`
	Tax               decimal.Decimal    `json:"tax"`
	Total             decimal.Decimal    `json:"total"`
	PaymentMethod     string             `json:"payment_method"`
	Reseco            *decimal.Decimal   `json:"reseco,omitempty"`
	Status            string             `json:"status"`
	CreatedAt         string             `json:"created_at"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
