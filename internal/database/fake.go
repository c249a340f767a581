// File: internal/database/fake.go
package database

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// FakeDB 供測試注入；未設定的方法被呼叫時直接 panic，Close 例外
type FakeDB struct {
	ExecFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	PingFn     func(ctx context.Context) error
	CloseFn    func()
}

func (f *FakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.ExecFn == nil {
		panic("FakeDB: Exec not stubbed")
	}
	return f.ExecFn(ctx, sql, args...)
}

func (f *FakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if f.QueryFn == nil {
		panic("FakeDB: Query not stubbed")
	}
	return f.QueryFn(ctx, sql, args...)
}

func (f *FakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if f.QueryRowFn == nil {
		panic("FakeDB: QueryRow not stubbed")
	}
	return f.QueryRowFn(ctx, sql, args...)
}

func (f *FakeDB) Ping(ctx context.Context) error {
	if f.PingFn == nil {
		panic("FakeDB: Ping not stubbed")
	}
	return f.PingFn(ctx)
}

func (f *FakeDB) Close() {
	if f.CloseFn != nil {
		f.CloseFn()
	}
}

// assign 依序把 vals 寫入 Scan 的目的指標，型別必須完全一致
func assign(dest, vals []any) error {
	if len(dest) != len(vals) {
		return fmt.Errorf("fake scan: %d destinations for %d values", len(dest), len(vals))
	}
	for i, d := range dest {
		dv := reflect.ValueOf(d).Elem()
		vv := reflect.ValueOf(vals[i])
		if !vv.Type().AssignableTo(dv.Type()) {
			return fmt.Errorf("fake scan: column %d is %s, destination is %s", i, vv.Type(), dv.Type())
		}
		dv.Set(vv)
	}
	return nil
}

// FakeRow 實作 pgx.Row；ScanErr 優先於 Vals
type FakeRow struct {
	Vals    []any
	ScanErr error
}

func (r *FakeRow) Scan(dest ...any) error {
	if r.ScanErr != nil {
		return r.ScanErr
	}
	return assign(dest, r.Vals)
}

// FakeRows 實作 pgx.Rows，逐列回傳 Data
type FakeRows struct {
	Data    [][]any
	ScanErr error
	RowsErr error
	Closed  bool
	idx     int
}

func (r *FakeRows) Next() bool {
	if r.idx < len(r.Data) {
		r.idx++
		return true
	}
	return false
}

func (r *FakeRows) Scan(dest ...any) error {
	if r.ScanErr != nil {
		return r.ScanErr
	}
	if r.idx == 0 {
		return fmt.Errorf("fake scan: Scan called before Next")
	}
	return assign(dest, r.Data[r.idx-1])
}

func (r *FakeRows) Close()                                       { r.Closed = true }
func (r *FakeRows) Err() error                                   { return r.RowsErr }
func (r *FakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *FakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *FakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *FakeRows) RawValues() [][]byte                          { return nil }
func (r *FakeRows) Conn() *pgx.Conn                              { return nil }
