package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"income-expenses-api/internal/cache"
	"income-expenses-api/internal/database"
	"income-expenses-api/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newAccounts(t *testing.T) *service.Accounts {
	t.Helper()
	tokens, err := service.NewTokens("secret", time.Minute, time.Hour, time.Hour)
	require.NoError(t, err)
	return &service.Accounts{Tokens: tokens}
}

func TestSetupRoutes(t *testing.T) {
	e := echo.New()
	Setup(e, &database.FakeDB{}, &cache.FakeCache{}, newAccounts(t))

	got := map[string]struct{}{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = struct{}{}
	}

	expected := []string{
		http.MethodGet + " /api/ping",
		http.MethodPost + " /api/signup",
		http.MethodGet + " /api/verify-email",
		http.MethodPost + " /api/login",
		http.MethodPost + " /api/token/refresh",
		http.MethodPost + " /api/request-password-reset-email",
		http.MethodGet + " /api/password-reset/:uidb64/:token",
		http.MethodPatch + " /api/password-reset",
		http.MethodGet + " /api/users/me",
		http.MethodDelete + " /api/users/me",
		http.MethodPatch + " /api/users/me/password",
	}
	for _, prefix := range []string{"/api/expenses", "/api/income"} {
		expected = append(expected,
			http.MethodGet+" "+prefix,
			http.MethodPost+" "+prefix,
			http.MethodGet+" "+prefix+"/yearly-stats",
			http.MethodGet+" "+prefix+"/:id",
			http.MethodPut+" "+prefix+"/:id",
			http.MethodPatch+" "+prefix+"/:id",
			http.MethodDelete+" "+prefix+"/:id",
		)
	}
	expected = append(expected,
		http.MethodGet+" /api/expenses/category-averages",
		http.MethodGet+" /api/income/source-averages",
	)

	require.Equal(t, len(expected), len(got))
	for _, k := range expected {
		_, ok := got[k]
		require.True(t, ok, "missing route %s", k)
	}
}

func TestRecordRoutesRequireAuth(t *testing.T) {
	e := echo.New()
	Setup(e, &database.FakeDB{}, &cache.FakeCache{}, newAccounts(t))

	for _, path := range []string{"/api/expenses", "/api/income/3", "/api/expenses/yearly-stats", "/api/users/me"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}
