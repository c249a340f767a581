// File: internal/model/record.go
package model

import "time"

const (
	CategoryOnlineServices = "ONLINE_SERVICES"
	CategoryTravel         = "TRAVEL"
	CategoryFood           = "FOOD"
	CategoryRent           = "RENT"
	CategoryOther          = "OTHER"

	SourceSalary   = "SALARY"
	SourceBusiness = "BUSINESS"
	SourceHustle   = "HUSTLE"
	SourceOther    = "OTHER"
)

// Kind 描述一種收支紀錄：資料表、分組欄位與允許的分組值
type Kind struct {
	Name       string
	Table      string
	GroupField string
	Groups     []string
}

var (
	Expense = Kind{
		Name:       "expense",
		Table:      "expenses",
		GroupField: "category",
		Groups:     []string{CategoryOnlineServices, CategoryTravel, CategoryFood, CategoryRent, CategoryOther},
	}
	Income = Kind{
		Name:       "income",
		Table:      "income",
		GroupField: "source",
		Groups:     []string{SourceSalary, SourceBusiness, SourceHustle, SourceOther},
	}
)

// Allows 回報 group 是否在此 Kind 的列舉內
func (k Kind) Allows(group string) bool {
	for _, g := range k.Groups {
		if g == group {
			return true
		}
	}
	return false
}

// Record 是一筆收入或支出；Group 依 Kind 對應 category 或 source
type Record struct {
	ID          int64     `db:"id" json:"id"`
	OwnerID     int64     `db:"owner_id" json:"owner_id"`
	Date        time.Time `db:"date" json:"date"`
	Description string    `db:"description" json:"description"`
	Amount      int64     `db:"amount" json:"amount"`
	Group       string    `db:"group" json:"group"`
}

// RecordPatch 只更新非 nil 的欄位
type RecordPatch struct {
	Date        *time.Time
	Description *string
	Amount      *int64
	Group       *string
}
