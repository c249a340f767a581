// File: internal/handler/ping.go
package handler

import (
	"context"
	"net/http"
	"time"

	"income-expenses-api/internal/cache"
	"income-expenses-api/internal/database"
	"income-expenses-api/internal/dto"

	"github.com/labstack/echo/v4"
)

const (
	pingTimeout  = 2 * time.Second
	pingHealthKey = "health:ping"
	pingHealthTTL = 10 * time.Second
)

// PingResponse 健康檢查回應模型
// swagger:model PingResponse
type PingResponse struct {
	Message  string `json:"message" example:"pong"`
	Database string `json:"database" example:"ok"`
	Cache    string `json:"cache" example:"ok"`
}

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 檢查 Postgres 與 Redis；任一失敗回傳 503 並列出失敗元件
// @Tags        health
// @Produce     json
// @Success     200 {object} PingResponse
// @Failure     503 {object} dto.HTTPError
// @Router      /ping [get]
func PingHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), pingTimeout)
		defer cancel()

		failed := map[string]string{}
		if err := db.Ping(ctx); err != nil {
			c.Logger().Errorf("ping database: %v", err)
			failed["database"] = "unreachable"
		}
		// 寫入短效 key 確認 redis 可寫，refresh 黑名單依賴寫入
		if err := cch.Set(ctx, pingHealthKey, "pong", pingHealthTTL).Err(); err != nil {
			c.Logger().Errorf("ping cache: %v", err)
			failed["cache"] = "unreachable"
		}
		if len(failed) > 0 {
			return c.JSON(http.StatusServiceUnavailable, dto.HTTPError{Message: "service unhealthy", Errors: failed})
		}
		return c.JSON(http.StatusOK, PingResponse{Message: "pong", Database: "ok", Cache: "ok"})
	}
}
