// File: internal/handler/users/users.go
package users

import (
	"context"
	"net/http"

	"income-expenses-api/internal/dto"
	"income-expenses-api/internal/middleware"
	"income-expenses-api/internal/model"

	"github.com/labstack/echo/v4"
)

// Accounts 為 /users/me 所需的帳號操作，*service.Accounts 實作
type Accounts interface {
	Profile(ctx context.Context, userID int64) (*model.User, error)
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
	DeleteAccount(ctx context.Context, userID int64) error
}

func currentUser(c echo.Context) (int64, bool) {
	return middleware.UserID(c)
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "invalid or missing token"})
}
