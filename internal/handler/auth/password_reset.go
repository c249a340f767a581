// File: internal/handler/auth/password_reset.go
package auth

import (
	"net/http"

	"income-expenses-api/internal/dto"
	"income-expenses-api/internal/handler"

	"github.com/labstack/echo/v4"
)

const resetRequestedMsg = "If an account with this email exists, a password reset link has been sent."

// RequestPasswordResetHandler 寄出重設密碼連結
// @Summary     申請重設密碼
// @Description 不論 email 是否存在都回傳相同訊息
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.PasswordResetEmailRequest true "Email"
// @Success     200  {object} dto.MessageResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /request-password-reset-email [post]
func RequestPasswordResetHandler(a Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.PasswordResetEmailRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.RespondError(c, err)
		}
		sent, err := a.RequestPasswordReset(c.Request().Context(), req.Email)
		if err != nil {
			return handler.RespondError(c, err)
		}
		if !sent {
			c.Logger().Infof("password reset requested for unknown email %q", req.Email)
		}
		return c.JSON(http.StatusOK, dto.MessageResponse{Message: resetRequestedMsg})
	}
}

// CheckResetTokenHandler 檢查重設連結
// @Summary     檢查重設密碼連結
// @Tags        auth
// @Produce     json
// @Param       uidb64 path     string true "編碼後的使用者 id"
// @Param       token  path     string true "重設 token"
// @Success     200    {object} dto.PasswordResetCheckResponse
// @Failure     401    {object} dto.HTTPError
// @Router      /password-reset/{uidb64}/{token} [get]
func CheckResetTokenHandler(a Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		uidb64, token := c.Param("uidb64"), c.Param("token")
		if err := a.CheckResetToken(c.Request().Context(), uidb64, token); err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, dto.PasswordResetCheckResponse{
			Message: "Your credentials are valid!",
			UIDB64:  uidb64,
			Token:   token,
		})
	}
}

// ConfirmPasswordResetHandler 設定新密碼
// @Summary     重設密碼
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.PasswordResetRequest true "新密碼與重設連結內容"
// @Success     200  {object} dto.MessageResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Router      /password-reset [patch]
func ConfirmPasswordResetHandler(a Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.PasswordResetRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.RespondError(c, err)
		}
		if err := a.ConfirmPasswordReset(c.Request().Context(), req.UIDB64, req.Token, req.Password); err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password reset succeeded!"})
	}
}
