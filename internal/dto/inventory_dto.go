package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// AdjustStockRequest applies a manual correction to one (product, location)
// quantity. Delta may be negative; the result may never go below zero.
type AdjustStockRequest struct {
	ProductID  string          `json:"product_id"  validate:"required,uuid"`
	LocationID string          `json:"location_id" validate:"required,uuid"`
	Delta      decimal.Decimal `json:"delta"       validate:"required"`
	Reason     string          `json:"reason"      validate:"required,min=3"`
}

// ─── Filter / List ──────────────────────────────────────────────────────────

type InventoryFilter struct {
	LocationID string `form:"location_id" validate:"omitempty,uuid"`
}

type MovementFilter struct {
	ProductID  string `form:"product_id"  validate:"omitempty,uuid"`
	LocationID string `form:"location_id" validate:"omitempty,uuid"`
	Kind       string `form:"kind"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type InventoryRecordResponse struct {
	ProductID  string          `json:"product_id"`
	Product    string          `json:"product"`
	Unit       string          `json:"unit"`
	LocationID string          `json:"location_id"`
	Location   string          `json:"location"`
	Quantity   decimal.Decimal `json:"quantity"`
}

type MovementResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	LocationID     string          `json:"location_id"`
	Kind           string          `json:"kind"`
	Quantity       decimal.Decimal `json:"quantity"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	Reason         string          `json:"reason"`
	ReferenceID    *string         `json:"reference_id"`
	CreatedAt      string          `json:"created_at"`
}

type MovementListResponse struct {
	Data  []MovementResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
