// File: internal/dto/password_reset.go
package dto

// swagger:model dto.PasswordResetEmailRequest
type PasswordResetEmailRequest struct {
	Email string `json:"email" validate:"required,email" example:"alice@example.com"`
}

// swagger:model dto.PasswordResetCheckResponse
type PasswordResetCheckResponse struct {
	Message string `json:"message" example:"Your credentials are valid!"`
	UIDB64  string `json:"uidb64" example:"MQ"`
	Token   string `json:"token" example:"c4h2lo-2f1b..."`
}

// 密碼上限 72 為 bcrypt 可處理的最大長度
// swagger:model dto.PasswordResetRequest
type PasswordResetRequest struct {
	Password string `json:"password" validate:"required,min=4,max=72" example:"NewSecret456!"`
	Token    string `json:"token" validate:"required" example:"c4h2lo-2f1b..."`
	UIDB64   string `json:"uidb64" validate:"required" example:"MQ"`
}

// swagger:model dto.UpdatePasswordMeRequest
type UpdatePasswordMeRequest struct {
	OldPassword string `json:"old_password" validate:"required" example:"OldSecret123!"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=64" example:"NewSecret456!"`
}
