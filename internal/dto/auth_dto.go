package dto

// ─── Auth DTOs ───────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserResponse `json:"user"`
}

// ─── User DTOs ───────────────────────────────────────────────────────────────

type CreateUserRequest struct {
	Username   string  `json:"username"    validate:"required,min=3,max=60"`
	Name       string  `json:"name"        validate:"required,min=2,max=120"`
	Email      *string `json:"email"       validate:"omitempty,email"`
	Password   string  `json:"password"    validate:"required,min=8"`
	Role       string  `json:"role"        validate:"required,oneof=cashier manager admin"`
	LocationID *string `json:"location_id" validate:"omitempty,uuid"`
}

type UpdateUserRequest struct {
	Name       string  `json:"name"        validate:"omitempty,min=2,max=120"`
	Email      *string `json:"email"       validate:"omitempty,email"`
	Password   string  `json:"password"    validate:"omitempty,min=8"`
	Role       string  `json:"role"        validate:"omitempty,oneof=cashier manager admin"`
	LocationID *string `json:"location_id" validate:"omitempty,uuid"`
}

type UserResponse struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	Name       string  `json:"name"`
	Email      *string `json:"email,omitempty"`
	Role       string  `json:"role"`
	LocationID *string `json:"location_id"`
	Active     bool    `json:"active"`
}
