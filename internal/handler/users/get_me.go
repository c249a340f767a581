// File: internal/handler/users/get_me.go
package users

import (
	"net/http"

	"income-expenses-api/internal/dto"
	"income-expenses-api/internal/handler"

	"github.com/labstack/echo/v4"
)

// GetMeHandler 取得當前使用者資料
// @Summary     Get current user
// @Tags        users
// @Produce     json
// @Success     200 {object} dto.UserResponse
// @Failure     401 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /users/me [get]
func GetMeHandler(a Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := currentUser(c)
		if !ok {
			return unauthorized(c)
		}
		u, err := a.Profile(c.Request().Context(), uid)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, dto.NewUserResponse(u))
	}
}
