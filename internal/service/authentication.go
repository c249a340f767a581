// File: internal/service/authentication.go
package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"income-expenses-api/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// token_type claim 的值
const (
	TokenTypeAccess       = "access"
	TokenTypeRefresh      = "refresh"
	TokenTypeVerification = "verification"
)

var (
	timeNow         = time.Now
	newTokenID      = func() string { return uuid.NewString() }
	parseWithClaims = jwt.ParseWithClaims
)

// CustomClaims 定義 JWT 負載內容
type CustomClaims struct {
	UserID    int64  `json:"user_id"`
	IsAdmin   bool   `json:"is_admin,omitempty"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenPair 登入或 refresh 回傳的兩張 token
type TokenPair struct {
	Access  string
	Refresh string
}

// Tokens 負責簽發與驗證 HS256 token
type Tokens struct {
	secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	VerifyTTL  time.Duration
}

func NewTokens(secret string, accessTTL, refreshTTL, verifyTTL time.Duration) (*Tokens, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}
	return &Tokens{
		secret:     []byte(secret),
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
		VerifyTTL:  verifyTTL,
	}, nil
}

func (t *Tokens) issue(u *model.User, tokenType string, ttl time.Duration) (string, error) {
	now := timeNow()
	claims := CustomClaims{
		UserID:    u.ID,
		IsAdmin:   u.IsAdmin,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        newTokenID(),
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// IssueSessionPair 簽發 access 與 refresh token
func (t *Tokens) IssueSessionPair(u *model.User) (TokenPair, error) {
	access, err := t.issue(u, TokenTypeAccess, t.AccessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := t.issue(u, TokenTypeRefresh, t.RefreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// IssueVerification 簽發 email 驗證用 token，只帶 user_id
func (t *Tokens) IssueVerification(u *model.User) (string, error) {
	return t.issue(&model.User{ID: u.ID}, TokenTypeVerification, t.VerifyTTL)
}

func (t *Tokens) VerifyAccess(token string) (*CustomClaims, error) {
	return t.verify(token, TokenTypeAccess)
}

func (t *Tokens) VerifyRefresh(token string) (*CustomClaims, error) {
	return t.verify(token, TokenTypeRefresh)
}

func (t *Tokens) VerifyVerification(token string) (*CustomClaims, error) {
	return t.verify(token, TokenTypeVerification)
}

// verify 先驗簽章再檢查過期；過期回傳 ErrTokenExpired，其餘皆為 ErrTokenInvalid
func (t *Tokens) verify(tokenString, tokenType string) (*CustomClaims, error) {
	claims := &CustomClaims{}
	token, err := parseWithClaims(tokenString, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(timeNow), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid || claims.TokenType != tokenType || claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
