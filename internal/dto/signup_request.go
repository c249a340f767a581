// File: internal/dto/signup_request.go
package dto

// swagger:model dto.SignupRequest
type SignupRequest struct {
	Email    string  `json:"email" validate:"required,email,max=128" example:"alice@example.com"`
	FullName *string `json:"full_name" validate:"omitempty,max=64" example:"Alice"`
	Password string  `json:"password" validate:"required,min=6,max=64" example:"Secret123!"`
}
