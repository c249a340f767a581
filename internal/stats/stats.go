// Package stats 計算單一使用者收支紀錄的分組統計
package stats

import (
	"math"
	"time"

	"income-expenses-api/internal/model"
)

// YearWindowDays yearly-stats 使用的回溯天數
const YearWindowDays = 365

// Average 分組平均與筆數
type Average struct {
	Average float64 `json:"average"`
	Records int     `json:"records"`
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TotalsByGroup 依 category/source 加總金額
// windowDays > 0 時只計入 date 落在 [today-windowDays, today] 的紀錄（含兩端）
func TotalsByGroup(records []model.Record, windowDays int, today time.Time) map[string]int64 {
	totals := map[string]int64{}
	end := day(today)
	start := end.AddDate(0, 0, -windowDays)
	for _, r := range records {
		if windowDays > 0 {
			d := day(r.Date)
			if d.Before(start) || d.After(end) {
				continue
			}
		}
		totals[r.Group] += r.Amount
	}
	return totals
}

// AveragesByGroup 計算每組平均金額（四捨五入到小數第二位）與筆數
// 沒有紀錄的分組不會出現在結果中
func AveragesByGroup(records []model.Record) map[string]Average {
	sums := map[string]int64{}
	counts := map[string]int{}
	for _, r := range records {
		sums[r.Group] += r.Amount
		counts[r.Group]++
	}
	out := make(map[string]Average, len(counts))
	for g, n := range counts {
		if n == 0 {
			continue
		}
		out[g] = Average{
			Average: math.Round(float64(sums[g])/float64(n)*100) / 100,
			Records: n,
		}
	}
	return out
}
