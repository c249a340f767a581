package middleware

import (
	"errors"
	"net/http"
	"strings"

	"income-expenses-api/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

// AccessVerifier 驗證 access token，*service.Tokens 實作
type AccessVerifier interface {
	VerifyAccess(token string) (*service.CustomClaims, error)
}

func extractClaims(c echo.Context, tokens AccessVerifier) (*service.CustomClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	claims, err := tokens.VerifyAccess(strings.TrimSpace(parts[1]))
	if errors.Is(err, service.ErrTokenExpired) {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "token expired")
	}
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return claims, nil
}

// RequireAuth 驗證 Bearer access token，並將 claims 存入 context
func RequireAuth(tokens AccessVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := extractClaims(c, tokens)
			if err != nil {
				return err
			}
			c.Set(ContextUserKey, claims)
			return next(c)
		}
	}
}

// UserID 取出已驗證的使用者 id；未經 RequireAuth 時回傳 false
func UserID(c echo.Context) (int64, bool) {
	claims, ok := c.Get(ContextUserKey).(*service.CustomClaims)
	if !ok || claims == nil {
		return 0, false
	}
	return claims.UserID, true
}
