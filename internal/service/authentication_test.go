package service

import (
	"testing"
	"time"

	"income-expenses-api/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newTestTokens(t *testing.T) *Tokens {
	t.Helper()
	tok, err := NewTokens("test-secret", 5*time.Minute, 24*time.Hour, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestNewTokensRequiresSecret(t *testing.T) {
	_, err := NewTokens("", time.Minute, time.Hour, time.Hour)
	require.EqualError(t, err, "JWT_SECRET not set")
}

func TestSessionPair(t *testing.T) {
	tok := newTestTokens(t)
	u := &model.User{ID: 42, IsAdmin: true}

	pair, err := tok.IssueSessionPair(u)
	require.NoError(t, err)
	require.NotEqual(t, pair.Access, pair.Refresh)

	claims, err := tok.VerifyAccess(pair.Access)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.True(t, claims.IsAdmin)
	require.Equal(t, TokenTypeAccess, claims.TokenType)
	require.Equal(t, "42", claims.Subject)
	require.NotEmpty(t, claims.ID)

	refresh, err := tok.VerifyRefresh(pair.Refresh)
	require.NoError(t, err)
	require.NotEqual(t, claims.ID, refresh.ID)

	// token 用途不可互換
	_, err = tok.VerifyAccess(pair.Refresh)
	require.ErrorIs(t, err, ErrTokenInvalid)
	_, err = tok.VerifyRefresh(pair.Access)
	require.ErrorIs(t, err, ErrTokenInvalid)
	_, err = tok.VerifyVerification(pair.Access)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyExpiredAndInvalid(t *testing.T) {
	tok := newTestTokens(t)
	now := setNow(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	v, err := tok.IssueVerification(&model.User{ID: 7, IsAdmin: true})
	require.NoError(t, err)
	claims, err := tok.VerifyVerification(v)
	require.NoError(t, err)
	require.Equal(t, int64(7), claims.UserID)
	require.False(t, claims.IsAdmin)

	*now = now.Add(2 * time.Hour)
	_, err = tok.VerifyVerification(v)
	require.ErrorIs(t, err, ErrTokenExpired)

	_, err = tok.VerifyVerification("garbage")
	require.ErrorIs(t, err, ErrTokenInvalid)

	other, err := NewTokens("other-secret", time.Minute, time.Hour, time.Hour)
	require.NoError(t, err)
	forged, err := other.IssueVerification(&model.User{ID: 7})
	require.NoError(t, err)
	_, err = tok.VerifyVerification(forged)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	tok := newTestTokens(t)
	claims := CustomClaims{
		UserID:    1,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tok.VerifyAccess(none)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRequiresExpiry(t *testing.T) {
	tok := newTestTokens(t)
	claims := CustomClaims{UserID: 1, TokenType: TokenTypeAccess}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = tok.VerifyAccess(s)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
