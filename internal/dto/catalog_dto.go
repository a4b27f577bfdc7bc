package dto

import "github.com/shopspring/decimal"

// ─── Product DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name         string           `json:"name"          validate:"required,min=2,max=120"`
	CategoryID   *string          `json:"category_id"   validate:"omitempty,uuid"`
	Unit         string           `json:"unit"`
	Price        decimal.Decimal  `json:"price"         validate:"required"`
	ReorderLevel *decimal.Decimal `json:"reorder_level"`
}

type UpdateProductRequest struct {
	Name         *string          `json:"name"          validate:"omitempty,min=2,max=120"`
	CategoryID   *string          `json:"category_id"   validate:"omitempty,uuid"`
	Unit         *string          `json:"unit"`
	Price        *decimal.Decimal `json:"price"`
	ReorderLevel *decimal.Decimal `json:"reorder_level"`
}

type ProductFilter struct {
	Name       string `form:"name"`
	CategoryID string `form:"category_id" validate:"omitempty,uuid"`
	Active     string `form:"active"` // "false" = inactive, "all" = everything, default = active
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	CategoryID   *string         `json:"category_id"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	Price        decimal.Decimal `json:"price"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	Active       bool            `json:"active"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ─── Category DTOs ───────────────────────────────────────────────────────────

type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=80"`
	Description *string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=80"`
	Description *string `json:"description"`
}

type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Active      bool    `json:"active"`
}
