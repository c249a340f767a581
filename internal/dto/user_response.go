// File: internal/dto/user_response.go
package dto

import (
	"time"

	"income-expenses-api/internal/model"
)

// swagger:model dto.UserResponse
type UserResponse struct {
	ID         int64      `json:"id" example:"1"`
	Email      string     `json:"email" example:"alice@example.com"`
	FullName   *string    `json:"full_name" example:"Alice"`
	IsVerified bool       `json:"is_verified" example:"false"`
	IsActive   bool       `json:"is_active" example:"true"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	CreatedAt  time.Time  `json:"created_at" example:"2025-05-01T15:04:05Z"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		IsVerified: u.IsVerified,
		IsActive:   u.IsActive,
		LastLogin:  u.LastLogin,
		CreatedAt:  u.CreatedAt,
	}
}
