// File: internal/store/user.go
package store

import (
	"context"
	"fmt"
	"time"

	"income-expenses-api/internal/database"
	"income-expenses-api/internal/model"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, full_name, password_hash, is_active, is_verified,
		is_staff, is_admin, last_login, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.FullName,
		&u.PasswordHash,
		&u.IsActive,
		&u.IsVerified,
		&u.IsStaff,
		&u.IsAdmin,
		&u.LastLogin,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID int64) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	))
	if err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", mapErr(err))
	}
	return u, nil
}

// GetUserByEmail 不分大小寫比對 email
func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`,
		email,
	))
	if err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", mapErr(err))
	}
	return u, nil
}

// CreateUser 寫入使用者並回填 id 與時間欄位；email 重複時回傳 ErrDuplicate
func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (email, full_name, password_hash, is_active, is_verified, is_staff, is_admin)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		u.Email,
		u.FullName,
		u.PasswordHash,
		u.IsActive,
		u.IsVerified,
		u.IsStaff,
		u.IsAdmin,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", mapErr(err))
	}
	return u, nil
}

// MarkUserVerified 將 is_verified 設為 true
func MarkUserVerified(ctx context.Context, db database.DB, userID int64) error {
	tag, err := db.Exec(ctx,
		`UPDATE users SET is_verified = TRUE, updated_at = now()
		 WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("MarkUserVerified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("MarkUserVerified: %w", ErrNotFound)
	}
	return nil
}

func UpdateUserPassword(ctx context.Context, db database.DB, userID int64, passwordHash string) error {
	tag, err := db.Exec(ctx,
		`UPDATE users
		 SET password_hash = $1, updated_at = now()
		 WHERE id = $2`,
		passwordHash,
		userID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUserPassword: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUserPassword: %w", ErrNotFound)
	}
	return nil
}

func UpdateLastLogin(ctx context.Context, db database.DB, userID int64, at time.Time) error {
	_, err := db.Exec(ctx,
		`UPDATE users SET last_login = $1 WHERE id = $2`,
		at,
		userID,
	)
	if err != nil {
		return fmt.Errorf("UpdateLastLogin: %w", err)
	}
	return nil
}

// DeleteUser 刪除使用者；收支紀錄由 ON DELETE CASCADE 一併刪除
func DeleteUser(ctx context.Context, db database.DB, userID int64) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM users WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteUser: %w", ErrNotFound)
	}
	return nil
}
