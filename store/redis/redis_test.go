package redis

import (
	"context"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	s := New(Config{
		Host:          mr.Host(),
		Port:          port,
		SocketTimeout: time.Second,
	})
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s, mr
}

func TestPing(t *testing.T) {
	s, mr := setupTestStore(t)
	ctx := context.Background()

	t.Run("reachable", func(t *testing.T) {
		assert.NoError(t, s.Ping(ctx))
	})

	t.Run("unreachable", func(t *testing.T) {
		mr.Close()
		assert.Error(t, s.Ping(ctx))
	})
}

func TestGetSet(t *testing.T) {
	s, mr := setupTestStore(t)
	ctx := context.Background()

	t.Run("miss is not an error", func(t *testing.T) {
		v, ok, err := s.Get(ctx, "absent")
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "k", `{"a":1}`, time.Minute))

		v, ok, err := s.Get(ctx, "k")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `{"a":1}`, v)
	})

	t.Run("entry expires", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "ttl", "v", time.Second))
		mr.FastForward(2 * time.Second)

		_, ok, err := s.Get(ctx, "ttl")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("non-positive ttl rejected by server", func(t *testing.T) {
		assert.Error(t, s.Set(ctx, "zero", "v", 0))
		assert.Error(t, s.Set(ctx, "neg", "v", -time.Second))
	})
}

func TestDel(t *testing.T) {
	s, mr := setupTestStore(t)
	ctx := context.Background()

	mr.Set("a", "1")
	mr.Set("b", "2")

	t.Run("counts only existing keys", func(t *testing.T) {
		n, err := s.Del(ctx, "a", "b", "missing")
		assert.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("no keys is a no-op", func(t *testing.T) {
		n, err := s.Del(ctx)
		assert.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestScan(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "app:user:1", "u1", time.Minute))
	require.NoError(t, s.Set(ctx, "app:user:2", "u2", time.Minute))
	require.NoError(t, s.Set(ctx, "app:order:1", "o1", time.Minute))

	var keys []string
	var cursor uint64
	for {
		batch, next, err := s.Scan(ctx, cursor, "app:user:*", 100)
		require.NoError(t, err)
		keys = append(keys, batch...)
		if next == 0 {
			break
		}
		cursor = next
	}

	sort.Strings(keys)
	assert.Equal(t, []string{"app:user:1", "app:user:2"}, keys)
}

func TestCloseIdempotent(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	assert.NoError(t, s.Close(ctx))
	assert.NoError(t, s.Close(ctx))
}
