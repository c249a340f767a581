// File: internal/handler/auth/signup.go
package auth

import (
	"net/http"

	"income-expenses-api/internal/dto"
	"income-expenses-api/internal/handler"

	"github.com/labstack/echo/v4"
)

// SignupHandler 註冊新帳號並寄出驗證信
// @Summary     註冊
// @Description 建立未驗證帳號 (Email 會自動轉小寫)，並寄出含驗證連結的郵件
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.SignupRequest true "註冊資料"
// @Success     201  {object} dto.UserResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /signup [post]
func SignupHandler(a Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.SignupRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.RespondError(c, err)
		}
		u, err := a.Signup(c.Request().Context(), req.Email, req.FullName, req.Password)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusCreated, dto.NewUserResponse(u))
	}
}
