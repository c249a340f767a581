// File: internal/handler/auth/verify_email.go
package auth

import (
	"net/http"

	"income-expenses-api/internal/dto"
	"income-expenses-api/internal/handler"

	"github.com/labstack/echo/v4"
)

// VerifyEmailHandler 以驗證信中的 token 啟用帳號
// @Summary     驗證 Email
// @Description 過期與無效的 token 回傳不同訊息；已驗證的帳號再次驗證視為成功
// @Tags        auth
// @Produce     json
// @Param       token query    string true "驗證 token"
// @Success     200   {object} dto.MessageResponse
// @Failure     400   {object} dto.HTTPError
// @Router      /verify-email [get]
func VerifyEmailHandler(a Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := c.QueryParam("token")
		if token == "" {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: handler.MsgTokenInvalid})
		}
		already, err := a.VerifyEmail(c.Request().Context(), token)
		if err != nil {
			return handler.RespondError(c, err)
		}
		msg := "Your account has been verified!"
		if already {
			msg = "Your account is already verified."
		}
		return c.JSON(http.StatusOK, dto.MessageResponse{Message: msg})
	}
}
