// File: internal/handler/records/records.go
package records

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"income-expenses-api/internal/dto"
	"income-expenses-api/internal/handler"
	"income-expenses-api/internal/middleware"
	"income-expenses-api/internal/model"
	"income-expenses-api/internal/service"
	"income-expenses-api/internal/stats"

	"github.com/labstack/echo/v4"
)

var timeNow = time.Now

// Store 為單一 Kind 的 owner-scoped CRUD，*service.Records 實作
type Store interface {
	List(ctx context.Context, ownerID int64) ([]model.Record, error)
	Create(ctx context.Context, ownerID int64, in service.RecordInput) (*model.Record, error)
	Get(ctx context.Context, ownerID, id int64) (*model.Record, error)
	Update(ctx context.Context, ownerID, id int64, in service.RecordInput, partial bool) (*model.Record, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

// Handlers 收入與支出共用同一組 handler，只差在 Kind
type Handlers struct {
	Kind  model.Kind
	Store Store
}

func owner(c echo.Context) (int64, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	return id, nil
}

// recordID 無法解析的 id 與不存在的 id 一樣回傳 404
func recordID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, service.ErrNotFound
	}
	return id, nil
}

func (h *Handlers) input(req dto.RecordRequest) service.RecordInput {
	return service.RecordInput{
		Date:        req.Date,
		Description: req.Description,
		Amount:      req.Amount,
		Group:       req.Group(h.Kind),
	}
}

// List 列出目前使用者的紀錄，依日期由新到舊
// @Summary     List records
// @Description 路徑為 /expenses 或 /income
// @Tags        records
// @Produce     json
// @Success     200 {array}  dto.RecordResponse
// @Failure     401 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /expenses [get]
// @Router      /income [get]
func (h *Handlers) List(c echo.Context) error {
	uid, err := owner(c)
	if err != nil {
		return err
	}
	list, err := h.Store.List(c.Request().Context(), uid)
	if err != nil {
		return handler.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewRecordList(h.Kind, list))
}

// Create 新增紀錄，owner 取自 access token
// @Summary     Create record
// @Tags        records
// @Accept      json
// @Produce     json
// @Param       body body     dto.RecordRequest true "支出帶 category，收入帶 source"
// @Success     201  {object} dto.RecordResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /expenses [post]
// @Router      /income [post]
func (h *Handlers) Create(c echo.Context) error {
	uid, err := owner(c)
	if err != nil {
		return err
	}
	var req dto.RecordRequest
	if err := handler.Bind(c, &req); err != nil {
		return handler.RespondError(c, err)
	}
	rec, err := h.Store.Create(c.Request().Context(), uid, h.input(req))
	if err != nil {
		return handler.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.NewRecordResponse(h.Kind, rec))
}

// Get 取得單筆紀錄
// @Summary     Get record
// @Tags        records
// @Produce     json
// @Param       id  path     int true "紀錄 ID"
// @Success     200 {object} dto.RecordResponse
// @Failure     404 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /expenses/{id} [get]
// @Router      /income/{id} [get]
func (h *Handlers) Get(c echo.Context) error {
	uid, err := owner(c)
	if err != nil {
		return err
	}
	id, err := recordID(c)
	if err != nil {
		return handler.RespondError(c, err)
	}
	rec, err := h.Store.Get(c.Request().Context(), uid, id)
	if err != nil {
		return handler.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewRecordResponse(h.Kind, rec))
}

// Update 回傳 PUT（partial=false）或 PATCH（partial=true）的 handler
// @Summary     Update record
// @Description PUT 需帶齊所有欄位，PATCH 只更新有帶的欄位
// @Tags        records
// @Accept      json
// @Produce     json
// @Param       id   path     int               true "紀錄 ID"
// @Param       body body     dto.RecordRequest true "欄位"
// @Success     200  {object} dto.RecordResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     404  {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /expenses/{id} [put]
// @Router      /expenses/{id} [patch]
// @Router      /income/{id} [put]
// @Router      /income/{id} [patch]
func (h *Handlers) Update(partial bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, err := owner(c)
		if err != nil {
			return err
		}
		id, err := recordID(c)
		if err != nil {
			return handler.RespondError(c, err)
		}
		var req dto.RecordRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.RespondError(c, err)
		}
		rec, err := h.Store.Update(c.Request().Context(), uid, id, h.input(req), partial)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, dto.NewRecordResponse(h.Kind, rec))
	}
}

// Delete 刪除紀錄
// @Summary     Delete record
// @Tags        records
// @Param       id path int true "紀錄 ID"
// @Success     204
// @Failure     404 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /expenses/{id} [delete]
// @Router      /income/{id} [delete]
func (h *Handlers) Delete(c echo.Context) error {
	uid, err := owner(c)
	if err != nil {
		return err
	}
	id, err := recordID(c)
	if err != nil {
		return handler.RespondError(c, err)
	}
	if err := h.Store.Delete(c.Request().Context(), uid, id); err != nil {
		return handler.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// YearlyStats 最近 365 天每個 category/source 的總額
// @Summary     Yearly totals per group
// @Tags        stats
// @Produce     json
// @Success     200 {object} dto.YearlyStatsResponse
// @Security    ApiKeyAuth
// @Router      /expenses/yearly-stats [get]
// @Router      /income/yearly-stats [get]
func (h *Handlers) YearlyStats(c echo.Context) error {
	uid, err := owner(c)
	if err != nil {
		return err
	}
	list, err := h.Store.List(c.Request().Context(), uid)
	if err != nil {
		return handler.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.YearlyStatsResponse{
		Summary: stats.TotalsByGroup(list, stats.YearWindowDays, timeNow()),
	})
}

// Averages 每個 category/source 的平均金額與筆數
// @Summary     Average amount per group
// @Tags        stats
// @Produce     json
// @Success     200 {object} dto.AveragesResponse
// @Security    ApiKeyAuth
// @Router      /expenses/category-averages [get]
// @Router      /income/source-averages [get]
func (h *Handlers) Averages(c echo.Context) error {
	uid, err := owner(c)
	if err != nil {
		return err
	}
	list, err := h.Store.List(c.Request().Context(), uid)
	if err != nil {
		return handler.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.AveragesResponse(stats.AveragesByGroup(list)))
}
