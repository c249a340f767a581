// File: internal/dto/http_error.go
package dto

// HTTPError 全域錯誤響應模型
// swagger:model dto.HTTPError
type HTTPError struct {
	// message 錯誤描述
	Message string `json:"message" example:"validation failed"`
	// errors 欄位錯誤，僅在驗證失敗時出現
	Errors map[string]string `json:"errors,omitempty"`
}

// MessageResponse 只帶訊息的成功回應
// swagger:model dto.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"Your account has been verified!"`
}
