// File: internal/service/credentials.go
package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"income-expenses-api/internal/database"
	"income-expenses-api/internal/model"
	"income-expenses-api/internal/store"
)

var (
	insertUser         = store.CreateUser
	getUserByID        = store.GetUserByID
	getUserByEmail     = store.GetUserByEmail
	markUserVerified   = store.MarkUserVerified
	updateUserPassword = store.UpdateUserPassword
	updateLastLogin    = store.UpdateLastLogin
	deleteUser         = store.DeleteUser
)

// NewUser 建立帳號所需資料；IsStaff / IsAdmin 為 nil 時使用預設值
type NewUser struct {
	Email      string
	FullName   *string
	Password   string
	IsStaff    *bool
	IsAdmin    *bool
	IsVerified bool
}

// NormalizeEmail 去除空白並轉小寫
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser 驗證輸入、雜湊密碼後寫入；新帳號 is_verified=false、is_active=true
func CreateUser(ctx context.Context, db database.DB, in NewUser) (*model.User, error) {
	fields := map[string]string{}
	email := NormalizeEmail(in.Email)
	if email == "" {
		fields["email"] = "Users must have an email."
	} else if _, err := mail.ParseAddress(email); err != nil {
		fields["email"] = "Enter a valid email address."
	}
	if in.Password == "" {
		fields["password"] = "Users must have a password."
	} else if len(in.Password) > MaxPasswordBytes {
		fields["password"] = passwordTooLongMsg
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	hash, err := hashPasswordFor("password", in.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Email:        email,
		FullName:     in.FullName,
		PasswordHash: hash,
		IsActive:     true,
		IsVerified:   in.IsVerified,
		IsStaff:      in.IsStaff != nil && *in.IsStaff,
		IsAdmin:      in.IsAdmin != nil && *in.IsAdmin,
	}
	created, err := insertUser(ctx, db, u)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, fieldError("email", "user with this email already exists.")
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CreateSuperuser 強制 is_staff / is_admin 為 true；明確傳入 false 視為錯誤。
// 超級使用者由 CLI 建立，沒有收驗證信的流程，直接標記為已驗證以便登入。
func CreateSuperuser(ctx context.Context, db database.DB, in NewUser) (*model.User, error) {
	if in.IsStaff != nil && !*in.IsStaff {
		return nil, fieldError("is_staff", "Superusers must have is_staff=true.")
	}
	if in.IsAdmin != nil && !*in.IsAdmin {
		return nil, fieldError("is_admin", "Superusers must have is_admin=true.")
	}
	yes := true
	in.IsStaff = &yes
	in.IsAdmin = &yes
	in.IsVerified = true
	return CreateUser(ctx, db, in)
}

// Authenticate 比對 email 與密碼；失敗時回傳 *LoginError
func Authenticate(ctx context.Context, db database.DB, email, password string) (*model.User, error) {
	u, err := getUserByEmail(ctx, db, NormalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		burnCompare(password)
		return nil, &LoginError{Reason: LoginUnknownUser}
	}
	if err != nil {
		return nil, err
	}
	if err := ComparePassword(u.PasswordHash, password); err != nil {
		return nil, &LoginError{Reason: LoginBadPassword}
	}
	return u, nil
}

// SetPassword 重新雜湊並寫入；舊的 reset token 因雜湊改變而失效
func SetPassword(ctx context.Context, db database.DB, u *model.User, newPassword string) error {
	if newPassword == "" {
		return fieldError("password", "This field may not be blank.")
	}
	if err := checkPasswordLength("password", newPassword); err != nil {
		return err
	}
	hash, err := hashPasswordFor("password", newPassword)
	if err != nil {
		return err
	}
	if err := updateUserPassword(ctx, db, u.ID, hash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	u.PasswordHash = hash
	return nil
}
