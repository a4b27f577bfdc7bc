package dto

import "github.com/shopspring/decimal"

type CreateIngredientRequest struct {
	Name       string          `json:"name"        validate:"required,min=2,max=120"`
	CategoryID *string         `json:"category_id" validate:"omitempty,uuid"`
	Unit       string          `json:"unit"`
	Quantity   decimal.Decimal `json:"quantity"    validate:"min=0"`
}

type UpdateIngredientRequest struct {
	Name       *string `json:"name"        validate:"omitempty,min=2,max=120"`
	CategoryID *string `json:"category_id" validate:"omitempty,uuid"`
	Unit       *string `json:"unit"`
}

// AdjustIngredientRequest corrects an ingredient's facility stock.
type AdjustIngredientRequest struct {
	Delta  decimal.Decimal `json:"delta"  validate:"required"`
	Reason string          `json:"reason" validate:"required,min=3"`
}

type IngredientResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	CategoryID *string         `json:"category_id"`
	Unit       string          `json:"unit"`
	Quantity   decimal.Decimal `json:"quantity"`
	Active     bool            `json:"active"`
}
