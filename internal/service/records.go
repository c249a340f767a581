// File: internal/service/records.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"income-expenses-api/internal/database"
	"income-expenses-api/internal/model"
	"income-expenses-api/internal/store"
)

// DateLayout 紀錄日期格式
const DateLayout = "2006-01-02"

var (
	listRecords  = store.ListRecords
	insertRecord = store.CreateRecord
	getRecord    = store.GetRecord
	updateRecord = store.UpdateRecord
	removeRecord = store.DeleteRecord
)

// RecordInput 客戶端送來的欄位；nil 代表未提供
type RecordInput struct {
	Date        *string
	Description *string
	Amount      *int64
	Group       *string
}

// ValidateRecord 檢查欄位並轉成 patch；partial=false 時所有欄位皆為必填
func ValidateRecord(k model.Kind, in RecordInput, partial bool) (model.RecordPatch, error) {
	var p model.RecordPatch
	fields := map[string]string{}
	required := "This field is required."

	if in.Date != nil {
		d, err := time.Parse(DateLayout, strings.TrimSpace(*in.Date))
		if err != nil {
			fields["date"] = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
		} else {
			p.Date = &d
		}
	} else if !partial {
		fields["date"] = required
	}

	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		if desc == "" {
			fields["description"] = "This field may not be blank."
		} else {
			p.Description = &desc
		}
	} else if !partial {
		fields["description"] = required
	}

	if in.Amount != nil {
		if *in.Amount < 0 {
			fields["amount"] = "Ensure this value is greater than or equal to 0."
		} else {
			p.Amount = in.Amount
		}
	} else if !partial {
		fields["amount"] = required
	}

	if in.Group != nil {
		if !k.Allows(*in.Group) {
			fields[k.GroupField] = `"` + *in.Group + `" is not a valid choice.`
		} else {
			p.Group = in.Group
		}
	} else if !partial {
		fields[k.GroupField] = required
	}

	if len(fields) > 0 {
		return model.RecordPatch{}, &ValidationError{Fields: fields}
	}
	return p, nil
}

// Records 收入或支出的 CRUD；owner 永遠由呼叫端的身分決定
type Records struct {
	DB   database.DB
	Kind model.Kind
}

func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (r *Records) List(ctx context.Context, ownerID int64) ([]model.Record, error) {
	return listRecords(ctx, r.DB, r.Kind, ownerID)
}

func (r *Records) Create(ctx context.Context, ownerID int64, in RecordInput) (*model.Record, error) {
	p, err := ValidateRecord(r.Kind, in, false)
	if err != nil {
		return nil, err
	}
	rec := &model.Record{
		OwnerID:     ownerID,
		Date:        *p.Date,
		Description: *p.Description,
		Amount:      *p.Amount,
		Group:       *p.Group,
	}
	if err := insertRecord(ctx, r.DB, r.Kind, rec); err != nil {
		// 帳號已刪除但 access token 尚未過期
		if errors.Is(err, store.ErrOwnerMissing) {
			return nil, ErrAuthenticationFailed
		}
		return nil, err
	}
	return rec, nil
}

func (r *Records) Get(ctx context.Context, ownerID, id int64) (*model.Record, error) {
	rec, err := getRecord(ctx, r.DB, r.Kind, ownerID, id)
	if err != nil {
		return nil, notFound(err)
	}
	return rec, nil
}

// Update 支援完整 (PUT) 與部分 (PATCH) 更新
func (r *Records) Update(ctx context.Context, ownerID, id int64, in RecordInput, partial bool) (*model.Record, error) {
	p, err := ValidateRecord(r.Kind, in, partial)
	if err != nil {
		return nil, err
	}
	rec, err := updateRecord(ctx, r.DB, r.Kind, ownerID, id, p)
	if err != nil {
		return nil, notFound(err)
	}
	return rec, nil
}

func (r *Records) Delete(ctx context.Context, ownerID, id int64) error {
	return notFound(removeRecord(ctx, r.DB, r.Kind, ownerID, id))
}
