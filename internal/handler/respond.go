// File: internal/handler/respond.go
package handler

import (
	"errors"
	"net/http"

	"income-expenses-api/internal/dto"
	"income-expenses-api/internal/service"
	"income-expenses-api/internal/validate"

	"github.com/labstack/echo/v4"
)

const (
	MsgTokenExpired = "Token has expired, consider requesting a new one."
	MsgTokenInvalid = "Your token is invalid, consider receiving a new one."
	MsgResetInvalid = "This token is invalid."
	MsgResetUsed    = "Token has already been used, request a new one, please."
)

// Bind 綁定 JSON 並執行 validator；錯誤已轉成 *service.ValidationError 或 400 回應
func Bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return &service.ValidationError{Fields: map[string]string{"body": "invalid request body"}}
	}
	if err := c.Validate(req); err != nil {
		if fields := validate.Fields(err); fields != nil {
			return &service.ValidationError{Fields: fields}
		}
		return err
	}
	return nil
}

// RespondError 將 service 錯誤轉成 dto.HTTPError 與對應狀態碼
func RespondError(c echo.Context, err error) error {
	var ve *service.ValidationError
	var le *service.LoginError
	var re *service.ResetError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "validation failed", Errors: ve.Fields})
	case errors.As(err, &le):
		c.Logger().Infof("login rejected: %s", le.Reason)
		return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: le.PublicMessage()})
	case errors.As(err, &re):
		c.Logger().Infof("password reset rejected: %s", re.Reason)
		if re.Reason == service.ResetBadUID {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: MsgResetInvalid})
		}
		return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: MsgResetUsed})
	case errors.Is(err, service.ErrTokenExpired):
		return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: MsgTokenExpired})
	case errors.Is(err, service.ErrTokenInvalid):
		return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: MsgTokenInvalid})
	case errors.Is(err, service.ErrAuthenticationFailed):
		return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "authentication failed"})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, dto.HTTPError{Message: "Not found."})
	}
	c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "internal server error"})
}
