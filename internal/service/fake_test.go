package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"income-expenses-api/internal/database"
	"income-expenses-api/internal/mail"
	"income-expenses-api/internal/model"
	"income-expenses-api/internal/store"

	"golang.org/x/crypto/bcrypt"
)

// memStore 以記憶體取代 store 套件，安裝在 package seams 上
type memStore struct {
	mu      sync.Mutex
	nextID  int64
	users   map[int64]*model.User
	records map[string]map[int64]*model.Record
}

func fastBcrypt(t *testing.T) {
	t.Helper()
	orig := bcryptGenerateFromPassword
	bcryptGenerateFromPassword = func(p []byte, _ int) ([]byte, error) {
		return bcrypt.GenerateFromPassword(p, bcrypt.MinCost)
	}
	t.Cleanup(func() { bcryptGenerateFromPassword = orig })
}

func installMemStore(t *testing.T) *memStore {
	t.Helper()
	fastBcrypt(t)
	m := &memStore{
		users:   map[int64]*model.User{},
		records: map[string]map[int64]*model.Record{},
	}

	origs := []func(){}
	save := func(restore func()) { origs = append(origs, restore) }
	{
		a, b, c, d, e, f, g := insertUser, getUserByID, getUserByEmail, markUserVerified, updateUserPassword, updateLastLogin, deleteUser
		h, i, j, k, l := listRecords, insertRecord, getRecord, updateRecord, removeRecord
		save(func() {
			insertUser, getUserByID, getUserByEmail, markUserVerified, updateUserPassword, updateLastLogin, deleteUser = a, b, c, d, e, f, g
			listRecords, insertRecord, getRecord, updateRecord, removeRecord = h, i, j, k, l
		})
	}
	t.Cleanup(func() {
		for _, r := range origs {
			r()
		}
	})

	insertUser = func(_ context.Context, _ database.DB, u *model.User) (*model.User, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, other := range m.users {
			if strings.EqualFold(other.Email, u.Email) {
				return nil, store.ErrDuplicate
			}
		}
		m.nextID++
		cp := *u
		cp.ID = m.nextID
		cp.CreatedAt = time.Now()
		cp.UpdatedAt = cp.CreatedAt
		m.users[cp.ID] = &cp
		out := cp
		return &out, nil
	}
	getUserByID = func(_ context.Context, _ database.DB, id int64) (*model.User, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		u, ok := m.users[id]
		if !ok {
			return nil, store.ErrNotFound
		}
		cp := *u
		return &cp, nil
	}
	getUserByEmail = func(_ context.Context, _ database.DB, email string) (*model.User, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, u := range m.users {
			if strings.EqualFold(u.Email, email) {
				cp := *u
				return &cp, nil
			}
		}
		return nil, store.ErrNotFound
	}
	markUserVerified = func(_ context.Context, _ database.DB, id int64) error {
		return m.mutate(id, func(u *model.User) { u.IsVerified = true })
	}
	updateUserPassword = func(_ context.Context, _ database.DB, id int64, hash string) error {
		return m.mutate(id, func(u *model.User) { u.PasswordHash = hash })
	}
	updateLastLogin = func(_ context.Context, _ database.DB, id int64, at time.Time) error {
		return m.mutate(id, func(u *model.User) { u.LastLogin = &at })
	}
	deleteUser = func(_ context.Context, _ database.DB, id int64) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.users[id]; !ok {
			return store.ErrNotFound
		}
		delete(m.users, id)
		for _, table := range m.records {
			for rid, r := range table {
				if r.OwnerID == id {
					delete(table, rid)
				}
			}
		}
		return nil
	}

	listRecords = func(_ context.Context, _ database.DB, k model.Kind, ownerID int64) ([]model.Record, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		list := []model.Record{}
		for _, r := range m.records[k.Table] {
			if r.OwnerID == ownerID {
				list = append(list, *r)
			}
		}
		sort.Slice(list, func(i, j int) bool {
			if list[i].Date.Equal(list[j].Date) {
				return list[i].ID > list[j].ID
			}
			return list[i].Date.After(list[j].Date)
		})
		return list, nil
	}
	insertRecord = func(_ context.Context, _ database.DB, k model.Kind, r *model.Record) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.records[k.Table] == nil {
			m.records[k.Table] = map[int64]*model.Record{}
		}
		m.nextID++
		r.ID = m.nextID
		cp := *r
		m.records[k.Table][r.ID] = &cp
		return nil
	}
	getRecord = func(_ context.Context, _ database.DB, k model.Kind, ownerID, id int64) (*model.Record, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		r, ok := m.records[k.Table][id]
		if !ok || r.OwnerID != ownerID {
			return nil, store.ErrNotFound
		}
		cp := *r
		return &cp, nil
	}
	updateRecord = func(_ context.Context, _ database.DB, k model.Kind, ownerID, id int64, p model.RecordPatch) (*model.Record, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		r, ok := m.records[k.Table][id]
		if !ok || r.OwnerID != ownerID {
			return nil, store.ErrNotFound
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
		cp := *r
		return &cp, nil
	}
	removeRecord = func(_ context.Context, _ database.DB, k model.Kind, ownerID, id int64) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		r, ok := m.records[k.Table][id]
		if !ok || r.OwnerID != ownerID {
			return store.ErrNotFound
		}
		delete(m.records[k.Table], id)
		return nil
	}
	return m
}

func (m *memStore) mutate(id int64, fn func(*model.User)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return store.ErrNotFound
	}
	fn(u)
	return nil
}

func (m *memStore) user(id int64) model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.users[id]
}

type outbox struct {
	mu   sync.Mutex
	sent []mail.Message
}

func (o *outbox) Dispatch(msg mail.Message) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, msg)
}

func (o *outbox) last() mail.Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sent[len(o.sent)-1]
}

func strPtr(s string) *string { return &s }
func int64Ptr(n int64) *int64 { return &n }
func boolPtr(b bool) *bool    { return &b }

func setNow(t *testing.T, now time.Time) *time.Time {
	t.Helper()
	orig := timeNow
	cur := now
	timeNow = func() time.Time { return cur }
	t.Cleanup(func() { timeNow = orig })
	return &cur
}
