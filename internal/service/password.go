// File: internal/service/password.go
package service

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes bcrypt 只接受 72 bytes 以內的輸入；validator 的 max 以字元計，多位元組密碼需另外檢查
const MaxPasswordBytes = 72

const passwordTooLongMsg = "Ensure this field has no more than 72 bytes."

var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// HashPassword 接收明文密碼，回傳 bcrypt 哈希字串
func HashPassword(password string) (string, error) {
	hashBytes, err := bcryptGenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// checkPasswordLength 超過 bcrypt 上限時回傳 field 上的 *ValidationError
func checkPasswordLength(field, password string) error {
	if len(password) > MaxPasswordBytes {
		return fieldError(field, passwordTooLongMsg)
	}
	return nil
}

// hashPasswordFor 雜湊密碼；bcrypt 拒絕的長度轉為 field 上的 *ValidationError
func hashPasswordFor(field, password string) (string, error) {
	hash, err := HashPassword(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fieldError(field, passwordTooLongMsg)
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// ComparePassword 比對明文密碼與 bcrypt 哈希，成功回傳 nil，失敗則回傳錯誤
func ComparePassword(hash, password string) error {
	return bcryptCompareHashAndPassword([]byte(hash), []byte(password))
}

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// burnCompare 在查無使用者時仍做一次 bcrypt 比對，讓回應時間不洩漏帳號是否存在
func burnCompare(password string) {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}
