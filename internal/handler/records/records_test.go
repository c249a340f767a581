package records

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"income-expenses-api/internal/middleware"
	"income-expenses-api/internal/model"
	"income-expenses-api/internal/service"
	"income-expenses-api/internal/validate"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// memStore 依 owner 切分的記憶體實作，驗證規則直接使用 service.ValidateRecord
type memStore struct {
	kind    model.Kind
	nextID  int64
	records map[int64]model.Record
	listErr error
}

func newMemStore(k model.Kind) *memStore {
	return &memStore{kind: k, records: map[int64]model.Record{}}
}

func (m *memStore) List(_ context.Context, ownerID int64) ([]model.Record, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []model.Record{}
	for _, r := range m.records {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) Create(_ context.Context, ownerID int64, in service.RecordInput) (*model.Record, error) {
	p, err := service.ValidateRecord(m.kind, in, false)
	if err != nil {
		return nil, err
	}
	m.nextID++
	r := model.Record{ID: m.nextID, OwnerID: ownerID, Date: *p.Date, Description: *p.Description, Amount: *p.Amount, Group: *p.Group}
	m.records[r.ID] = r
	return &r, nil
}

func (m *memStore) Get(_ context.Context, ownerID, id int64) (*model.Record, error) {
	r, ok := m.records[id]
	if !ok || r.OwnerID != ownerID {
		return nil, service.ErrNotFound
	}
	return &r, nil
}

func (m *memStore) Update(ctx context.Context, ownerID, id int64, in service.RecordInput, partial bool) (*model.Record, error) {
	p, err := service.ValidateRecord(m.kind, in, partial)
	if err != nil {
		return nil, err
	}
	r, err := m.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Amount != nil {
		r.Amount = *p.Amount
	}
	if p.Group != nil {
		r.Group = *p.Group
	}
	m.records[id] = *r
	return r, nil
}

func (m *memStore) Delete(ctx context.Context, ownerID, id int64) error {
	if _, err := m.Get(ctx, ownerID, id); err != nil {
		return err
	}
	delete(m.records, id)
	return nil
}

func newCtx(method, target, body string, userID int64, id string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validate.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set(middleware.ContextUserKey, &service.CustomClaims{UserID: userID})
	}
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c, rec
}

func TestCreateAndList(t *testing.T) {
	h := &Handlers{Kind: model.Expense, Store: newMemStore(model.Expense)}

	ctx, rec := newCtx(http.MethodPost, "/api/expenses", `{"date":"2024-03-01","description":"Lunch","amount":12,"category":"FOOD"}`, 1, "")
	require.NoError(t, h.Create(ctx))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `{"id":1,"owner":1,"date":"2024-03-01","description":"Lunch","amount":12,"category":"FOOD"}`, rec.Body.String())

	ctx, rec = newCtx(http.MethodGet, "/api/expenses", "", 1, "")
	require.NoError(t, h.List(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"Lunch"`)

	ctx, rec = newCtx(http.MethodGet, "/api/expenses", "", 2, "")
	require.NoError(t, h.List(ctx))
	require.Equal(t, "[]\n", rec.Body.String())
}

func TestCreateIgnoresClientOwner(t *testing.T) {
	h := &Handlers{Kind: model.Income, Store: newMemStore(model.Income)}
	ctx, rec := newCtx(http.MethodPost, "/api/income", `{"owner":99,"date":"2024-03-01","description":"Pay","amount":1000,"source":"SALARY"}`, 1, "")
	require.NoError(t, h.Create(ctx))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"owner":1`)
	require.Contains(t, rec.Body.String(), `"source":"SALARY"`)
	require.NotContains(t, rec.Body.String(), "category")
}

func TestCreateValidation(t *testing.T) {
	store := newMemStore(model.Expense)
	h := &Handlers{Kind: model.Expense, Store: store}

	for _, body := range []string{
		`{"date":"2024-03-01","description":"x","amount":-1,"category":"FOOD"}`,
		`{"date":"2024-03-01","description":"x","amount":1,"category":"CASINO"}`,
		`{"date":"2024-03-01","description":"x","amount":1,"source":"SALARY"}`,
		`{"description":"x","amount":1,"category":"FOOD"}`,
		`not json`,
	} {
		ctx, rec := newCtx(http.MethodPost, "/api/expenses", body, 1, "")
		require.NoError(t, h.Create(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	require.Empty(t, store.records)
}

func TestOwnershipIsNotFound(t *testing.T) {
	store := newMemStore(model.Expense)
	h := &Handlers{Kind: model.Expense, Store: store}
	mine, err := store.Create(context.Background(), 1, service.RecordInput{
		Date: strPtr("2024-01-01"), Description: strPtr("rent"), Amount: int64Ptr(500), Group: strPtr(model.CategoryRent),
	})
	require.NoError(t, err)
	id := "1"
	require.Equal(t, int64(1), mine.ID)

	ctx, rec := newCtx(http.MethodGet, "/api/expenses/1", "", 2, id)
	require.NoError(t, h.Get(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)

	ctx, rec = newCtx(http.MethodPatch, "/api/expenses/1", `{"amount":1}`, 2, id)
	require.NoError(t, h.Update(true)(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)

	ctx, rec = newCtx(http.MethodDelete, "/api/expenses/1", "", 2, id)
	require.NoError(t, h.Delete(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)

	ctx, rec = newCtx(http.MethodGet, "/api/expenses/999", "", 2, "999")
	require.NoError(t, h.Get(ctx))
	foreign := rec.Body.String()
	ctx, rec = newCtx(http.MethodGet, "/api/expenses/1", "", 2, id)
	require.NoError(t, h.Get(ctx))
	require.Equal(t, foreign, rec.Body.String())

	ctx, rec = newCtx(http.MethodGet, "/api/expenses/abc", "", 1, "abc")
	require.NoError(t, h.Get(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)

	require.Len(t, store.records, 1)
}

func TestUpdateAndDelete(t *testing.T) {
	store := newMemStore(model.Expense)
	h := &Handlers{Kind: model.Expense, Store: store}
	_, err := store.Create(context.Background(), 1, service.RecordInput{
		Date: strPtr("2024-01-01"), Description: strPtr("rent"), Amount: int64Ptr(500), Group: strPtr(model.CategoryRent),
	})
	require.NoError(t, err)

	ctx, rec := newCtx(http.MethodPatch, "/api/expenses/1", `{"amount":650}`, 1, "1")
	require.NoError(t, h.Update(true)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"amount":650`)
	require.Contains(t, rec.Body.String(), `"description":"rent"`)

	ctx, rec = newCtx(http.MethodPut, "/api/expenses/1", `{"amount":650}`, 1, "1")
	require.NoError(t, h.Update(false)(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	ctx, rec = newCtx(http.MethodPut, "/api/expenses/1", `{"date":"2024-02-01","description":"rent feb","amount":700,"category":"RENT"}`, 1, "1")
	require.NoError(t, h.Update(false)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"date":"2024-02-01"`)

	ctx, rec = newCtx(http.MethodDelete, "/api/expenses/1", "", 1, "1")
	require.NoError(t, h.Delete(ctx))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, store.records)
}

func TestStatsHandlers(t *testing.T) {
	orig := timeNow
	t.Cleanup(func() { timeNow = orig })
	timeNow = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

	store := newMemStore(model.Expense)
	h := &Handlers{Kind: model.Expense, Store: store}
	for _, in := range []struct {
		date   string
		amount int64
		cat    string
	}{
		{"2024-02-01", 10, model.CategoryFood},
		{"2023-03-02", 20, model.CategoryFood},
		{"2023-06-01", 5, model.CategoryRent},
		{"2023-03-01", 100, model.CategoryRent},
	} {
		_, err := store.Create(context.Background(), 1, service.RecordInput{
			Date: strPtr(in.date), Description: strPtr("x"), Amount: int64Ptr(in.amount), Group: strPtr(in.cat),
		})
		require.NoError(t, err)
	}

	ctx, rec := newCtx(http.MethodGet, "/api/expenses/yearly-stats", "", 1, "")
	require.NoError(t, h.YearlyStats(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"summary":{"FOOD":30,"RENT":5}}`, rec.Body.String())

	ctx, rec = newCtx(http.MethodGet, "/api/expenses/category-averages", "", 1, "")
	require.NoError(t, h.Averages(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"FOOD":{"average":15,"records":2},"RENT":{"average":52.5,"records":2}}`, rec.Body.String())

	ctx, rec = newCtx(http.MethodGet, "/api/expenses/yearly-stats", "", 2, "")
	require.NoError(t, h.YearlyStats(ctx))
	require.JSONEq(t, `{"summary":{}}`, rec.Body.String())

	store.listErr = errors.New("db down")
	ctx, rec = newCtx(http.MethodGet, "/api/expenses/category-averages", "", 1, "")
	require.NoError(t, h.Averages(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequiresUser(t *testing.T) {
	h := &Handlers{Kind: model.Expense, Store: newMemStore(model.Expense)}
	ctx, _ := newCtx(http.MethodGet, "/api/expenses", "", 0, "")
	err := h.List(ctx)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func strPtr(s string) *string { return &s }
func int64Ptr(n int64) *int64 { return &n }
