// File: internal/handler/auth/login.go
package auth

import (
	"errors"
	"net/http"

	"income-expenses-api/internal/dto"
	"income-expenses-api/internal/handler"
	"income-expenses-api/internal/service"

	"github.com/labstack/echo/v4"
)

// LoginHandler 使用 Email/Password 驗證並回傳 access 與 refresh token
// @Summary     登入使用者
// @Description 帳號不存在與密碼錯誤回傳相同訊息；停用或未驗證的帳號無法登入
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.LoginRequest true "登入資料"
// @Success     200  {object} dto.LoginResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /login [post]
func LoginHandler(a Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.LoginRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.RespondError(c, err)
		}
		u, pair, err := a.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, dto.LoginResponse{
			Email:  u.Email,
			Tokens: dto.TokenPair{Access: pair.Access, Refresh: pair.Refresh},
		})
	}
}

// RefreshHandler 以 refresh token 換發新的一組 token，舊的 refresh token 即失效
// @Summary     Refresh token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.RefreshRequest true "refresh token"
// @Success     200  {object} dto.TokenPair
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /token/refresh [post]
func RefreshHandler(a Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.RefreshRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.RespondError(c, err)
		}
		pair, err := a.Refresh(c.Request().Context(), req.Refresh)
		switch {
		case errors.Is(err, service.ErrTokenExpired):
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: handler.MsgTokenExpired})
		case errors.Is(err, service.ErrTokenInvalid):
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: handler.MsgTokenInvalid})
		case err != nil:
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, dto.TokenPair{Access: pair.Access, Refresh: pair.Refresh})
	}
}
