// File: internal/service/account.go
package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"income-expenses-api/internal/cache"
	"income-expenses-api/internal/database"
	"income-expenses-api/internal/mail"
	"income-expenses-api/internal/model"
	"income-expenses-api/internal/store"
)

// Outbox 非同步交寄郵件，不回報結果
type Outbox interface {
	Dispatch(msg mail.Message)
}

// Accounts 帳號生命週期：註冊、驗證、登入、refresh、重設密碼
type Accounts struct {
	DB      database.DB
	Cache   cache.Cache
	Tokens  *Tokens
	Resets  *ResetTokens
	Outbox  Outbox
	BaseURL string
}

func refreshDenyKey(jti string) string { return "refresh:denied:" + jti }

func (a *Accounts) link(path string) string {
	return strings.TrimRight(a.BaseURL, "/") + path
}

// Signup 建立未驗證帳號並寄出驗證連結
func (a *Accounts) Signup(ctx context.Context, email string, fullName *string, password string) (*model.User, error) {
	u, err := CreateUser(ctx, a.DB, NewUser{Email: email, FullName: fullName, Password: password})
	if err != nil {
		return nil, err
	}
	token, err := a.Tokens.IssueVerification(u)
	if err != nil {
		return nil, fmt.Errorf("issue verification token: %w", err)
	}
	a.Outbox.Dispatch(mail.Message{
		To:      u.Email,
		Subject: "Verify your email",
		Body: fmt.Sprintf("Hi %s,\nUse the link below to verify your email:\n%s",
			u.DisplayName(), a.link("/api/verify-email?token="+url.QueryEscape(token))),
	})
	return u, nil
}

// VerifyEmail 將帳號標記為已驗證；重複驗證回傳 alreadyVerified=true
func (a *Accounts) VerifyEmail(ctx context.Context, token string) (alreadyVerified bool, err error) {
	claims, err := a.Tokens.VerifyVerification(token)
	if err != nil {
		return false, err
	}
	u, err := getUserByID(ctx, a.DB, claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return false, ErrTokenInvalid
	}
	if err != nil {
		return false, err
	}
	if u.IsVerified {
		return true, nil
	}
	if err := markUserVerified(ctx, a.DB, u.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, ErrTokenInvalid
		}
		return false, err
	}
	return false, nil
}

// Login 驗證帳密與帳號狀態，成功後更新 last_login 並簽發 token
func (a *Accounts) Login(ctx context.Context, email, password string) (*model.User, TokenPair, error) {
	u, err := Authenticate(ctx, a.DB, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	if !u.IsActive {
		return nil, TokenPair{}, &LoginError{Reason: LoginInactive}
	}
	if !u.IsVerified {
		return nil, TokenPair{}, &LoginError{Reason: LoginUnverified}
	}
	now := timeNow().UTC()
	if err := updateLastLogin(ctx, a.DB, u.ID, now); err != nil {
		return nil, TokenPair{}, err
	}
	u.LastLogin = &now
	pair, err := a.Tokens.IssueSessionPair(u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Refresh 以 refresh token 換一組新 token；舊 refresh token 的 jti 列入 redis 黑名單直到過期
func (a *Accounts) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := a.Tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return TokenPair{}, err
	}
	u, err := getUserByID(ctx, a.DB, claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return TokenPair{}, &LoginError{Reason: LoginUnknownUser}
	}
	if err != nil {
		return TokenPair{}, err
	}
	if !u.IsActive {
		return TokenPair{}, &LoginError{Reason: LoginInactive}
	}

	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(timeNow())
	}
	fresh, err := cache.Claim(ctx, a.Cache, refreshDenyKey(claims.ID), ttl)
	if err != nil {
		return TokenPair{}, fmt.Errorf("denylist refresh token: %w", err)
	}
	if !fresh {
		return TokenPair{}, ErrTokenInvalid
	}
	return a.Tokens.IssueSessionPair(u)
}

// RequestPasswordReset 寄出重設連結；查無此 email 時 sent=false 且不回傳錯誤
func (a *Accounts) RequestPasswordReset(ctx context.Context, email string) (sent bool, err error) {
	u, err := getUserByEmail(ctx, a.DB, NormalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	a.Outbox.Dispatch(mail.Message{
		To:      u.Email,
		Subject: "Reset your password",
		Body: fmt.Sprintf("Hi %s,\nUse the link below to reset your password:\n%s",
			u.DisplayName(), a.link("/api/password-reset/"+EncodeUID(u.ID)+"/"+a.Resets.Make(u))),
	})
	return true, nil
}

func (a *Accounts) resetUser(ctx context.Context, uidb64, token string) (*model.User, error) {
	id, err := DecodeUID(uidb64)
	if err != nil {
		return nil, &ResetError{Reason: ResetBadUID}
	}
	u, err := getUserByID(ctx, a.DB, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &ResetError{Reason: ResetUnknownUser}
	}
	if err != nil {
		return nil, err
	}
	if !a.Resets.Check(u, token) {
		return nil, &ResetError{Reason: ResetTokenMismatch}
	}
	return u, nil
}

// CheckResetToken 檢查重設連結是否仍有效
func (a *Accounts) CheckResetToken(ctx context.Context, uidb64, token string) error {
	_, err := a.resetUser(ctx, uidb64, token)
	return err
}

// ConfirmPasswordReset 設定新密碼；密碼雜湊改變後同一 token 無法再次使用
func (a *Accounts) ConfirmPasswordReset(ctx context.Context, uidb64, token, newPassword string) error {
	u, err := a.resetUser(ctx, uidb64, token)
	if err != nil {
		return err
	}
	return SetPassword(ctx, a.DB, u, newPassword)
}

// ChangePassword 已登入使用者以舊密碼換新密碼
func (a *Accounts) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	u, err := a.Profile(ctx, userID)
	if err != nil {
		return err
	}
	if err := ComparePassword(u.PasswordHash, oldPassword); err != nil {
		return fieldError("old_password", "Old password is incorrect.")
	}
	if err := checkPasswordLength("new_password", newPassword); err != nil {
		return err
	}
	return SetPassword(ctx, a.DB, u, newPassword)
}

func (a *Accounts) Profile(ctx context.Context, userID int64) (*model.User, error) {
	u, err := getUserByID(ctx, a.DB, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	return u, err
}

// DeleteAccount 刪除帳號，收支紀錄由外鍵 cascade 一併刪除
func (a *Accounts) DeleteAccount(ctx context.Context, userID int64) error {
	err := deleteUser(ctx, a.DB, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
