package storage

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *GormStore {
	t.Helper()
	s, err := OpenDialector(context.Background(), sqlite.Open(":memory:"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStores_RoundTrip(t *testing.T) {
	t.Parallel()

	stores := map[string]func(t *testing.T) KV{
		"memory": func(t *testing.T) KV { return NewMemoryStore() },
		"sqlite": func(t *testing.T) KV { return newSQLiteStore(t) },
	}

	for name, mk := range stores {
		mk := mk
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			kv := mk(t)

			_, ok, err := kv.Get(ctx, "auth_token")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Set(ctx, "auth_token", "a1"))
			require.NoError(t, kv.Set(ctx, "auth_token", "a2"))
			require.NoError(t, kv.Set(ctx, "refresh_token", "r1"))

			v, ok, err := kv.Get(ctx, "auth_token")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "a2", v)

			require.NoError(t, kv.Delete(ctx, "auth_token", "refresh_token"))
			_, ok, err = kv.Get(ctx, "refresh_token")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestOpen_Memory(t *testing.T) {
	t.Parallel()

	kv, err := Open(context.Background(), "memory")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, kv)

	_, err = Open(context.Background(), "")
	require.Error(t, err)
}
