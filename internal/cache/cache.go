// File: internal/cache/cache.go
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache 為 refresh token 黑名單與健康檢查所需的 redis 操作，*redis.Client 直接實作
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.BoolCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// MinClaimTTL 為 Claim 寫入的最短存活時間；redis 不接受 0 以下的 EX
const MinClaimTTL = time.Second

// Claim 以 SET NX 佔用 key 直到 ttl 到期。
// 第一次佔用回傳 true；key 已存在(例如 refresh token 已被換發過)回傳 false。
func Claim(ctx context.Context, c Cache, key string, ttl time.Duration) (bool, error) {
	if ttl < MinClaimTTL {
		ttl = MinClaimTTL
	}
	ok, err := c.SetNX(ctx, key, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim %s: %w", key, err)
	}
	return ok, nil
}

// FakeCache 供測試注入；未設定的方法被呼叫時直接 panic，Close 例外
type FakeCache struct {
	SetFn   func(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd
	SetNXFn func(ctx context.Context, key string, value any, ttl time.Duration) *redis.BoolCmd
	PingFn  func(ctx context.Context) *redis.StatusCmd
	CloseFn func() error
}

func (f *FakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	if f.SetFn == nil {
		panic("FakeCache: Set not stubbed")
	}
	return f.SetFn(ctx, key, value, ttl)
}

func (f *FakeCache) SetNX(ctx context.Context, key string, value any, ttl time.Duration) *redis.BoolCmd {
	if f.SetNXFn == nil {
		panic("FakeCache: SetNX not stubbed")
	}
	return f.SetNXFn(ctx, key, value, ttl)
}

func (f *FakeCache) Ping(ctx context.Context) *redis.StatusCmd {
	if f.PingFn == nil {
		panic("FakeCache: Ping not stubbed")
	}
	return f.PingFn(ctx)
}

func (f *FakeCache) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}
