package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"income-expenses-api/internal/database"
	"income-expenses-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func recordVals(r model.Record) []any {
	return []any{r.ID, r.OwnerID, r.Date, r.Description, r.Amount, r.Group}
}

func TestRecordStore(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	food := model.Record{ID: 1, OwnerID: 7, Date: day, Description: "lunch", Amount: 120, Group: model.CategoryFood}
	rent := model.Record{ID: 2, OwnerID: 7, Date: day.AddDate(0, 0, -1), Description: "march", Amount: 900, Group: model.CategoryRent}

	t.Run("List scoped and ordered", func(t *testing.T) {
		var gotSQL string
		var gotArgs []any
		rows := &database.FakeRows{Data: [][]any{recordVals(food), recordVals(rent)}}
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
				gotSQL, gotArgs = sql, args
				return rows, nil
			},
		}
		list, err := ListRecords(context.Background(), db, model.Expense, 7)
		require.NoError(t, err)
		require.Equal(t, []model.Record{food, rent}, list)
		require.Contains(t, gotSQL, "FROM expenses WHERE owner_id = $1 ORDER BY date DESC")
		require.Contains(t, gotSQL, "category")
		require.Equal(t, []any{int64(7)}, gotArgs)
		require.True(t, rows.Closed)
	})

	t.Run("List income uses source column", func(t *testing.T) {
		var gotSQL string
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
				gotSQL = sql
				return &database.FakeRows{}, nil
			},
		}
		list, err := ListRecords(context.Background(), db, model.Income, 7)
		require.NoError(t, err)
		require.Empty(t, list)
		require.NotNil(t, list)
		require.Contains(t, gotSQL, "amount, source FROM income")
	})

	t.Run("List errors", func(t *testing.T) {
		db := &database.FakeDB{QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
			return nil, errors.New("database fail")
		}}
		_, err := ListRecords(context.Background(), db, model.Expense, 7)
		require.Error(t, err)

		db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) {
			return &database.FakeRows{Data: [][]any{recordVals(food)}, ScanErr: errors.New("scan")}, nil
		}
		_, err = ListRecords(context.Background(), db, model.Expense, 7)
		require.Error(t, err)

		db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) {
			return &database.FakeRows{RowsErr: errors.New("rows")}, nil
		}
		_, err = ListRecords(context.Background(), db, model.Expense, 7)
		require.Error(t, err)
	})

	t.Run("Create", func(t *testing.T) {
		var gotArgs []any
		db := &database.FakeDB{QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			gotArgs = args
			return &database.FakeRow{Vals: []any{int64(99)}}
		}}
		r := model.Record{OwnerID: 7, Date: day, Description: "d", Amount: 5, Group: model.SourceSalary}
		require.NoError(t, CreateRecord(context.Background(), db, model.Income, &r))
		require.Equal(t, int64(99), r.ID)
		require.Equal(t, []any{int64(7), day, "d", int64(5), model.SourceSalary}, gotArgs)

		db.QueryRowFn = func(context.Context, string, ...any) pgx.Row { return &database.FakeRow{ScanErr: errors.New("check")} }
		require.Error(t, CreateRecord(context.Background(), db, model.Income, &r))
		db.QueryRowFn = func(context.Context, string, ...any) pgx.Row {
			return &database.FakeRow{ScanErr: &pgconn.PgError{Code: "23503", ConstraintName: "income_owner_id_fkey"}}
		}
		err := CreateRecord(context.Background(), db, model.Income, &r)
		require.ErrorIs(t, err, ErrOwnerMissing)
		require.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("Get owner scoped", func(t *testing.T) {
		var gotArgs []any
		db := &database.FakeDB{QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			gotArgs = args
			return &database.FakeRow{Vals: recordVals(food)}
		}}
		got, err := GetRecord(context.Background(), db, model.Expense, 7, 1)
		require.NoError(t, err)
		require.Equal(t, &food, got)
		require.Equal(t, []any{int64(1), int64(7)}, gotArgs)

		db.QueryRowFn = func(context.Context, string, ...any) pgx.Row { return &database.FakeRow{ScanErr: pgx.ErrNoRows} }
		_, err = GetRecord(context.Background(), db, model.Expense, 8, 1)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Update partial", func(t *testing.T) {
		amount := int64(300)
		var gotSQL string
		var gotArgs []any
		updated := food
		updated.Amount = amount
		db := &database.FakeDB{QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			gotSQL, gotArgs = sql, args
			return &database.FakeRow{Vals: recordVals(updated)}
		}}
		got, err := UpdateRecord(context.Background(), db, model.Expense, 7, 1, model.RecordPatch{Amount: &amount})
		require.NoError(t, err)
		require.Equal(t, int64(300), got.Amount)
		require.Contains(t, gotSQL, "category = COALESCE($4, category)")
		require.Contains(t, gotSQL, "WHERE id = $5 AND owner_id = $6")
		require.Nil(t, gotArgs[0])
		require.Equal(t, &amount, gotArgs[2])
		require.Equal(t, int64(1), gotArgs[4])
		require.Equal(t, int64(7), gotArgs[5])

		db.QueryRowFn = func(context.Context, string, ...any) pgx.Row { return &database.FakeRow{ScanErr: pgx.ErrNoRows} }
		_, err = UpdateRecord(context.Background(), db, model.Expense, 8, 1, model.RecordPatch{})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		db := &database.FakeDB{ExecFn: execTag("DELETE 1", nil)}
		require.NoError(t, DeleteRecord(context.Background(), db, model.Income, 7, 1))

		db.ExecFn = execTag("DELETE 0", nil)
		require.ErrorIs(t, DeleteRecord(context.Background(), db, model.Income, 8, 1), ErrNotFound)

		db.ExecFn = execTag("", errors.New("fail"))
		require.Error(t, DeleteRecord(context.Background(), db, model.Income, 7, 1))
	})
}
