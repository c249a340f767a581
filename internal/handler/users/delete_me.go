// File: internal/handler/users/delete_me.go
package users

import (
	"net/http"

	"income-expenses-api/internal/handler"

	"github.com/labstack/echo/v4"
)

// DeleteMeHandler 刪除當前使用者帳號
// @Summary     Delete current user
// @Description 一併刪除該使用者的所有收入與支出紀錄
// @Tags        users
// @Produce     json
// @Success     204
// @Failure     401 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /users/me [delete]
func DeleteMeHandler(a Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := currentUser(c)
		if !ok {
			return unauthorized(c)
		}
		if err := a.DeleteAccount(c.Request().Context(), uid); err != nil {
			return handler.RespondError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
