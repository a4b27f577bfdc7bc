package dto

// ─── Store / Location DTOs ───────────────────────────────────────────────────

type CreateStoreRequest struct {
	Name    string  `json:"name"    validate:"required,min=2,max=120"`
	Address *string `json:"address"`
}

type UpdateStoreRequest struct {
	Name    *string `json:"name"    validate:"omitempty,min=2,max=120"`
	Address *string `json:"address"`
	Status  *string `json:"status"  validate:"omitempty,oneof=active inactive"`
}

type LocationResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address"`
	Kind    string  `json:"kind"`
	Status  string  `json:"status"`
}
