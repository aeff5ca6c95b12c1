package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeLockStore struct {
	mu     sync.Mutex
	values map[string]string
	ttl    time.Duration
}

func newFakeLockStore() *fakeLockStore {
	return &fakeLockStore{values: make(map[string]string)}
}

func (s *fakeLockStore) SetNX(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	s.values[key] = value.(string)
	s.ttl = expiration
	return redis.NewBoolResult(true, nil)
}

func (s *fakeLockStore) Eval(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values[keys[0]] == args[0].(string) {
		delete(s.values, keys[0])
		return redis.NewCmdResult(int64(1), nil)
	}
	return redis.NewCmdResult(int64(0), nil)
}

func TestRedisLockIsExclusiveUntilReleased(t *testing.T) {
	store := newFakeLockStore()
	first, err := NewRedisLock(store, "lock:catalog_sync", 0)
	require.NoError(t, err)
	second, err := NewRedisLock(store, "lock:catalog_sync", time.Minute)
	require.NoError(t, err)

	ok, err := first.Acquire(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, defaultLockTTL, store.ttl)

	ok, err = second.Acquire(context.Background())
	require.NoError(t, err)
	require.False(t, ok)

	// 非持有者释放不影响锁
	require.NoError(t, second.Release(context.Background()))
	require.Len(t, store.values, 1)

	require.NoError(t, first.Release(context.Background()))
	require.Empty(t, store.values)

	ok, err = second.Acquire(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestNewRedisLockValidatesInput(t *testing.T) {
	_, err := NewRedisLock(nil, "k", time.Second)
	require.Error(t, err)
	_, err = NewRedisLock(newFakeLockStore(), "", time.Second)
	require.Error(t, err)
}
