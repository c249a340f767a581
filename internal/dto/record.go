// File: internal/dto/record.go
package dto

import (
	"income-expenses-api/internal/model"
	"income-expenses-api/internal/stats"
)

// RecordRequest 支出用 category、收入用 source；另一個欄位會被忽略
// swagger:model dto.RecordRequest
type RecordRequest struct {
	Date        *string `json:"date" example:"2024-03-01"`
	Description *string `json:"description" example:"Groceries"`
	Amount      *int64  `json:"amount" example:"42"`
	Category    *string `json:"category,omitempty" example:"FOOD"`
	Source      *string `json:"source,omitempty" example:"SALARY"`
}

// swagger:model dto.RecordResponse
type RecordResponse struct {
	ID          int64  `json:"id" example:"1"`
	Owner       int64  `json:"owner" example:"1"`
	Date        string `json:"date" example:"2024-03-01"`
	Description string `json:"description" example:"Groceries"`
	Amount      int64  `json:"amount" example:"42"`
	Category    string `json:"category,omitempty" example:"FOOD"`
	Source      string `json:"source,omitempty" example:"SALARY"`
}

// Group 依 Kind 取出 category 或 source
func (r RecordRequest) Group(k model.Kind) *string {
	if k.GroupField == model.Income.GroupField {
		return r.Source
	}
	return r.Category
}

func NewRecordResponse(k model.Kind, r *model.Record) RecordResponse {
	resp := RecordResponse{
		ID:          r.ID,
		Owner:       r.OwnerID,
		Date:        r.Date.Format("2006-01-02"),
		Description: r.Description,
		Amount:      r.Amount,
	}
	if k.GroupField == model.Income.GroupField {
		resp.Source = r.Group
	} else {
		resp.Category = r.Group
	}
	return resp
}

func NewRecordList(k model.Kind, list []model.Record) []RecordResponse {
	out := make([]RecordResponse, 0, len(list))
	for i := range list {
		out = append(out, NewRecordResponse(k, &list[i]))
	}
	return out
}

// swagger:model dto.YearlyStatsResponse
type YearlyStatsResponse struct {
	Summary map[string]int64 `json:"summary"`
}

// swagger:model dto.AveragesResponse
type AveragesResponse map[string]stats.Average
