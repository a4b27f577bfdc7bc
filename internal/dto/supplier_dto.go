package dto

type CreateSupplierRequest struct {
	Name        string  `json:"name"         validate:"required,min=2,max=120"`
	ContactName *string `json:"contact_name"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
}

type UpdateSupplierRequest struct {
	Name        *string `json:"name"         validate:"omitempty,min=2,max=120"`
	ContactName *string `json:"contact_name"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
}

type SupplierResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ContactName *string `json:"contact_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	Active      bool    `json:"active"`
}
