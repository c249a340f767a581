// File: internal/handler/users/update_password_me.go
package users

import (
	"net/http"

	"income-expenses-api/internal/dto"
	"income-expenses-api/internal/handler"

	"github.com/labstack/echo/v4"
)

// UpdatePasswordMeHandler 更新當前使用者密碼
// @Summary     Update own password
// @Description 驗證舊密碼並更新為新密碼；尚未使用的重設密碼連結一併失效
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body dto.UpdatePasswordMeRequest true "舊密碼與新密碼"
// @Success     204  "No Content"
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /users/me/password [patch]
func UpdatePasswordMeHandler(a Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := currentUser(c)
		if !ok {
			return unauthorized(c)
		}
		var req dto.UpdatePasswordMeRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.RespondError(c, err)
		}
		if err := a.ChangePassword(c.Request().Context(), uid, req.OldPassword, req.NewPassword); err != nil {
			return handler.RespondError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
