package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tevo-storefront/internal/infrastructure/postgres"
	"github.com/jhoicas/tevo-storefront/pkg/config"
)

// Requiere una base real: STOREFRONT_TEST_DATABASE_URL=postgres://...
func newTestStore(t *testing.T) *postgres.KVStore {
	t.Helper()
	dsn := os.Getenv("STOREFRONT_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("STOREFRONT_TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	store, err := postgres.NewKVStore(ctx, pool)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestKVStore_SetGetDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	key := "test_" + time.Now().Format("150405.000000")

	require.NoError(t, store.Set(ctx, key, []byte(`{"version":1,"lines":[]}`)))
	require.NoError(t, store.Set(ctx, key, []byte(`{"version":1,"lines":[{"id":3}]}`)))

	v, found, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"version":1,"lines":[{"id":3}]}`, string(v))

	require.NoError(t, store.Delete(ctx, key))
	_, found, err = store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestKVStore_WatchRecibeNotify(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	key := "watch_" + time.Now().Format("150405.000000")

	ch, err := store.Watch(ctx, key)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), key, []byte(`"x"`)))

	select {
	case c := <-ch:
		assert.Equal(t, key, c.Key)
		assert.JSONEq(t, `"x"`, string(c.Value))
	case <-time.After(3 * time.Second):
		t.Fatal("sin notificación")
	}
	require.NoError(t, store.Delete(context.Background(), key))
}

func TestNewPool_DSNInvalido(t *testing.T) {
	_, err := postgres.NewPool(context.Background(), config.DBConfig{DatabaseURL: "::no-es-un-dsn::"})
	assert.Error(t, err)
}
