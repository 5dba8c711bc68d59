// Package cache holds the Redis connection and the board list cache.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache 是看板快取與健康檢查會用到的 Redis 指令
// *redis.Client 直接滿足此介面；ttl 為 0 表示不過期
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// FakeCache 將指令轉給對應的 Fn 欄位，未設定時 panic
// 每個指令都以 "CMD key..." 的格式記錄下來
type FakeCache struct {
	GetFn   func(ctx context.Context, key string) *redis.StringCmd
	SetFn   func(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd
	DelFn   func(ctx context.Context, keys ...string) *redis.IntCmd
	IncrFn  func(ctx context.Context, key string) *redis.IntCmd
	EvalFn  func(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd
	PingFn  func(ctx context.Context) *redis.StatusCmd
	CloseFn func() error

	mu       sync.Mutex
	commands []string
}

func (f *FakeCache) record(cmd string, keys ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(keys) > 0 {
		cmd += " " + strings.Join(keys, " ")
	}
	f.commands = append(f.commands, cmd)
}

// Commands 回傳目前收到的指令，由舊到新
func (f *FakeCache) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...)
}

func (f *FakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	f.record("GET", key)
	if f.GetFn == nil {
		panic("cache.FakeCache: unexpected GET " + key)
	}
	return f.GetFn(ctx, key)
}

func (f *FakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	f.record("SET", key)
	if f.SetFn == nil {
		panic("cache.FakeCache: unexpected SET " + key)
	}
	return f.SetFn(ctx, key, value, ttl)
}

func (f *FakeCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.record("DEL", keys...)
	if f.DelFn == nil {
		panic("cache.FakeCache: unexpected DEL " + strings.Join(keys, " "))
	}
	return f.DelFn(ctx, keys...)
}

func (f *FakeCache) Incr(ctx context.Context, key string) *redis.IntCmd {
	f.record("INCR", key)
	if f.IncrFn == nil {
		panic("cache.FakeCache: unexpected INCR " + key)
	}
	return f.IncrFn(ctx, key)
}

func (f *FakeCache) Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd {
	f.record("EVAL", keys...)
	if f.EvalFn == nil {
		panic("cache.FakeCache: unexpected EVAL " + strings.Join(keys, " "))
	}
	return f.EvalFn(ctx, script, keys, args...)
}

func (f *FakeCache) Ping(ctx context.Context) *redis.StatusCmd {
	f.record("PING")
	if f.PingFn == nil {
		panic("cache.FakeCache: unexpected PING")
	}
	return f.PingFn(ctx)
}

// Close 沒設定 CloseFn 時視為成功
func (f *FakeCache) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
