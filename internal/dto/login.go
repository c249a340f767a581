// File: internal/dto/login.go
package dto

// 密碼上限與所有設定密碼的路徑中最大者(重設密碼 72)一致
// swagger:model dto.LoginRequest
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=128" example:"alice@example.com"`
	Password string `json:"password" validate:"required,max=72" example:"Secret123!"`
}

// swagger:model dto.TokenPair
type TokenPair struct {
	Access  string `json:"access" example:"eyJhbGciOi..."`
	Refresh string `json:"refresh" example:"eyJhbGciOi..."`
}

// swagger:model dto.LoginResponse
type LoginResponse struct {
	Email  string    `json:"email" example:"alice@example.com"`
	Tokens TokenPair `json:"tokens"`
}

// swagger:model dto.RefreshRequest
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required" example:"eyJhbGciOi..."`
}
