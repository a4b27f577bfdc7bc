package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type IngredientUseRequest struct {
	IngredientID string          `json:"ingredient_id" validate:"required,uuid"`
	Quantity     decimal.Decimal `json:"quantity"      validate:"required"`
}

type RecordProductionRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"   validate:"required"`
	// BatchNumber is auto-assigned ("B001", "B002", …) when omitted
	BatchNumber string                 `json:"batch_number" validate:"omitempty,max=20"`
	Ingredients []IngredientUseRequest `json:"ingredients"  validate:"omitempty,dive"`
}

// SetProductionStatusRequest drives the production state machine.
// ActualWeight overrides the planned quantity on the transition into
// "completed"; AdditionalIngredients are consumed at the same moment.
type SetProductionStatusRequest struct {
	Status                string                 `json:"status"        validate:"required,oneof=in-progress quality-check completed"`
	ActualWeight          *decimal.Decimal       `json:"actual_weight"`
	AdditionalIngredients []IngredientUseRequest `json:"additional_ingredients" validate:"omitempty,dive"`
}

// ─── Filter / List ──────────────────────────────────────────────────────────

type ProductionFilter struct {
	Status    string `form:"status"` // in-progress | quality-check | completed | all
	ProductID string `form:"product_id" validate:"omitempty,uuid"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type IngredientUseResponse struct {
	IngredientID string          `json:"ingredient_id"`
	Ingredient   string          `json:"ingredient"`
	Quantity     decimal.Decimal `json:"quantity"`
	Stage        string          `json:"stage"`
}

type ProductionResponse struct {
	ID          string                  `json:"id"`
	ProductID   string                  `json:"product_id"`
	ProductName string                  `json:"product_name"`
	Quantity    decimal.Decimal         `json:"quantity"`
	BatchNumber string                  `json:"batch_number"`
	Status      string                  `json:"status"`
	Ingredients []IngredientUseResponse `json:"ingredients"`
	CreatedAt   string                  `json:"created_at"`
}

type ProductionListResponse struct {
	Data  []ProductionResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
