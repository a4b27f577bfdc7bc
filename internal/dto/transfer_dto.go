package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RequestTransferRequest struct {
	ProductID      string          `json:"product_id"       validate:"required,uuid"`
	Quantity       decimal.Decimal `json:"quantity"         validate:"required"`
	FromLocationID string          `json:"from_location_id" validate:"required,uuid"`
	ToLocationID   string          `json:"to_location_id"   validate:"required,uuid"`
}

type SetTransferStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in-transit completed cancelled rejected"`
}

// ─── Filter / List ──────────────────────────────────────────────────────────

type TransferFilter struct {
	Status    string `form:"status"` // pending | in-transit | completed | cancelled | rejected | all
	ProductID string `form:"product_id" validate:"omitempty,uuid"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TransferResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	Product        string          `json:"product"`
	Quantity       decimal.Decimal `json:"quantity"`
	FromLocationID string          `json:"from_location_id"`
	From           string          `json:"from"`
	ToLocationID   string          `json:"to_location_id"`
	To             string          `json:"to"`
	Status         string          `json:"status"`
	TransferredBy  string          `json:"transferred_by"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}

type TransferListResponse struct {
	Data  []TransferResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
