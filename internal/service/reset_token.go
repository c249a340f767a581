// File: internal/service/reset_token.go
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"income-expenses-api/internal/model"
)

// resetEpoch token 內時間戳的起點
var resetEpoch = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)

// ResetTokens 產生一次性密碼重設 token：<base36 秒數>-<hmac>
// hmac 綁定 id、密碼雜湊、last_login 與 email，任何一項改變舊 token 即失效
type ResetTokens struct {
	secret  []byte
	Timeout time.Duration
}

func NewResetTokens(secret string, timeout time.Duration) (*ResetTokens, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}
	return &ResetTokens{secret: deriveResetKey(secret), Timeout: timeout}, nil
}

// resetKeySalt 讓重設 token 與 JWT 雖共用 JWT_SECRET 卻使用不同的金鑰
const resetKeySalt = "income-expenses-api/password-reset"

func deriveResetKey(secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(resetKeySalt))
	return mac.Sum(nil)
}

// Make 以目前時間產生 token
func (r *ResetTokens) Make(u *model.User) string {
	return r.makeAt(u, secondsSinceEpoch(timeNow()))
}

// Check 驗證 token 屬於此使用者且未逾時
func (r *ResetTokens) Check(u *model.User, token string) bool {
	if u == nil || token == "" {
		return false
	}
	tsPart, _, ok := strings.Cut(token, "-")
	if !ok {
		return false
	}
	ts, err := strconv.ParseInt(tsPart, 36, 64)
	if err != nil || ts < 0 {
		return false
	}
	if !hmac.Equal([]byte(r.makeAt(u, ts)), []byte(token)) {
		return false
	}
	return secondsSinceEpoch(timeNow())-ts <= int64(r.Timeout/time.Second)
}

func (r *ResetTokens) makeAt(u *model.User, ts int64) string {
	mac := hmac.New(sha256.New, r.secret)
	mac.Write([]byte(hashValue(u, ts)))
	return strconv.FormatInt(ts, 36) + "-" + hex.EncodeToString(mac.Sum(nil))[:32]
}

func hashValue(u *model.User, ts int64) string {
	login := ""
	if u.LastLogin != nil {
		login = u.LastLogin.UTC().Truncate(time.Microsecond).Format(time.RFC3339Nano)
	}
	return strconv.FormatInt(u.ID, 10) + u.PasswordHash + login + strconv.FormatInt(ts, 10) + u.Email
}

func secondsSinceEpoch(t time.Time) int64 {
	return int64(t.Sub(resetEpoch) / time.Second)
}

// EncodeUID 將使用者 id 編為 URL 安全的 base64
func EncodeUID(id int64) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatInt(id, 10)))
}

// DecodeUID 還原 EncodeUID；接受帶或不帶 padding 的輸入
func DecodeUID(uidb64 string) (int64, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(uidb64, "="))
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid uid %d", id)
	}
	return id, nil
}
