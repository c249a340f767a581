// File: internal/store/record.go
package store

import (
	"context"
	"fmt"

	"income-expenses-api/internal/database"
	"income-expenses-api/internal/model"

	"github.com/jackc/pgx/v5"
)

// 所有查詢都帶 owner_id 條件；別人的紀錄與不存在的紀錄一律回傳 ErrNotFound。
// 表名與欄位名只來自 model.Kind 常數，不接受外部輸入。

func recordColumns(k model.Kind) string {
	return "id, owner_id, date, description, amount, " + k.GroupField
}

func scanRecord(row pgx.Row) (*model.Record, error) {
	r := &model.Record{}
	if err := row.Scan(
		&r.ID,
		&r.OwnerID,
		&r.Date,
		&r.Description,
		&r.Amount,
		&r.Group,
	); err != nil {
		return nil, err
	}
	return r, nil
}

// ListRecords 依日期新到舊列出 owner 的紀錄
func ListRecords(ctx context.Context, db database.DB, k model.Kind, ownerID int64) ([]model.Record, error) {
	rows, err := db.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM %s WHERE owner_id = $1 ORDER BY date DESC, id DESC`, recordColumns(k), k.Table),
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListRecords(%s): %w", k.Name, err)
	}
	defer rows.Close()

	list := []model.Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("ListRecords(%s): %w", k.Name, err)
		}
		list = append(list, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListRecords(%s): %w", k.Name, err)
	}
	return list, nil
}

// CreateRecord 寫入紀錄並回填 id
func CreateRecord(ctx context.Context, db database.DB, k model.Kind, r *model.Record) error {
	row := db.QueryRow(ctx,
		fmt.Sprintf(`INSERT INTO %s (owner_id, date, description, amount, %s)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`, k.Table, k.GroupField),
		r.OwnerID,
		r.Date,
		r.Description,
		r.Amount,
		r.Group,
	)
	if err := row.Scan(&r.ID); err != nil {
		return fmt.Errorf("CreateRecord(%s): %w", k.Name, mapErr(err))
	}
	return nil
}

func GetRecord(ctx context.Context, db database.DB, k model.Kind, ownerID, id int64) (*model.Record, error) {
	r, err := scanRecord(db.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 AND owner_id = $2`, recordColumns(k), k.Table),
		id,
		ownerID,
	))
	if err != nil {
		return nil, fmt.Errorf("GetRecord(%s): %w", k.Name, mapErr(err))
	}
	return r, nil
}

// UpdateRecord 只覆寫 patch 中非 nil 的欄位，回傳更新後的紀錄
func UpdateRecord(ctx context.Context, db database.DB, k model.Kind, ownerID, id int64, p model.RecordPatch) (*model.Record, error) {
	r, err := scanRecord(db.QueryRow(ctx,
		fmt.Sprintf(`UPDATE %[1]s SET
		     date = COALESCE($1, date),
		     description = COALESCE($2, description),
		     amount = COALESCE($3, amount),
		     %[2]s = COALESCE($4, %[2]s)
		 WHERE id = $5 AND owner_id = $6
		 RETURNING %[3]s`, k.Table, k.GroupField, recordColumns(k)),
		p.Date,
		p.Description,
		p.Amount,
		p.Group,
		id,
		ownerID,
	))
	if err != nil {
		return nil, fmt.Errorf("UpdateRecord(%s): %w", k.Name, mapErr(err))
	}
	return r, nil
}

func DeleteRecord(ctx context.Context, db database.DB, k model.Kind, ownerID, id int64) error {
	tag, err := db.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND owner_id = $2`, k.Table),
		id,
		ownerID,
	)
	if err != nil {
		return fmt.Errorf("DeleteRecord(%s): %w", k.Name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteRecord(%s): %w", k.Name, ErrNotFound)
	}
	return nil
}
