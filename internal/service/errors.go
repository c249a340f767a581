package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrAuthenticationFailed 帳密錯誤、帳號停用或未驗證、reset token 無效
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrNotFound 查無資料；不屬於呼叫者的紀錄也回傳此錯誤
	ErrNotFound = errors.New("not found")
	// ErrTokenExpired token 簽章正確但已過期，可重新申請
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid token 格式、簽章或用途不符
	ErrTokenInvalid = errors.New("token invalid")
)

// ValidationError 以欄位名稱對應錯誤訊息
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// LoginFailure 登入失敗的內部原因，僅供記錄與測試
type LoginFailure string

const (
	LoginUnknownUser LoginFailure = "unknown user"
	LoginBadPassword LoginFailure = "bad password"
	LoginInactive    LoginFailure = "inactive account"
	LoginUnverified  LoginFailure = "unverified account"
)

type LoginError struct {
	Reason LoginFailure
}

func (e *LoginError) Error() string { return "login failed: " + string(e.Reason) }

func (e *LoginError) Is(target error) bool { return target == ErrAuthenticationFailed }

// PublicMessage 對外訊息；查無使用者與密碼錯誤回傳相同內容
func (e *LoginError) PublicMessage() string {
	switch e.Reason {
	case LoginInactive:
		return "This account is inactive."
	case LoginUnverified:
		return "This account is not verified."
	default:
		return "Invalid email or password."
	}
}

// ResetFailure 區分 reset 連結失效的原因
type ResetFailure string

const (
	ResetBadUID        ResetFailure = "undecodable uid"
	ResetUnknownUser   ResetFailure = "unknown user"
	ResetTokenMismatch ResetFailure = "token mismatch"
)

type ResetError struct {
	Reason ResetFailure
}

func (e *ResetError) Error() string { return "password reset failed: " + string(e.Reason) }

// Is 無法解碼的 uid 視為 ErrTokenInvalid，其餘為 ErrAuthenticationFailed
func (e *ResetError) Is(target error) bool {
	if e.Reason == ResetBadUID {
		return target == ErrTokenInvalid
	}
	return target == ErrAuthenticationFailed
}
