package store

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound 查無資料，或資料不屬於呼叫者
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate 違反 unique constraint
	ErrDuplicate = errors.New("duplicate key")
	// ErrOwnerMissing 違反 foreign key，紀錄的擁有者已不存在
	ErrOwnerMissing = errors.New("owner does not exist")
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// mapErr 將 pgx 錯誤轉成 store 的 sentinel error
func mapErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return ErrDuplicate
		case foreignKeyViolation:
			return ErrOwnerMissing
		}
	}
	return err
}
