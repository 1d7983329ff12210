package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tevo-storefront/internal/domain/repository"
	"github.com/jhoicas/tevo-storefront/internal/infrastructure/storage"
	"github.com/jhoicas/tevo-storefront/pkg/config"
	"github.com/jhoicas/tevo-storefront/pkg/logger"
)

// ── Contrato común ─────────────────────────────────────────────────────────────

func runStoreContract(t *testing.T, newStore func(t *testing.T) repository.KeyValueStore) {
	t.Run("Get de clave inexistente", func(t *testing.T) {
		s := newStore(t)
		v, found, err := s.Get(context.Background(), "token")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, v)
	})

	t.Run("Set, Get y Delete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "cart_alice", []byte(`[{"id":1}]`)))

		v, found, err := s.Get(ctx, "cart_alice")
		require.NoError(t, err)
		assert.True(t, found)
		assert.JSONEq(t, `[{"id":1}]`, string(v))

		require.NoError(t, s.Delete(ctx, "cart_alice"))
		_, found, err = s.Get(ctx, "cart_alice")
		require.NoError(t, err)
		assert.False(t, found)

		assert.NoError(t, s.Delete(ctx, "cart_alice"), "borrar dos veces no es error")
	})

	t.Run("Watch recibe escrituras y borrados", func(t *testing.T) {
		s := newStore(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ch, err := s.Watch(ctx, "cart_bob")
		require.NoError(t, err)

		require.NoError(t, s.Set(context.Background(), "otra", []byte(`1`)))
		require.NoError(t, s.Set(context.Background(), "cart_bob", []byte(`[]`)))
		change := receive(t, ch)
		assert.Equal(t, "cart_bob", change.Key)
		assert.False(t, change.Deleted)
		assert.JSONEq(t, `[]`, string(change.Value))

		require.NoError(t, s.Delete(context.Background(), "cart_bob"))
		change = receive(t, ch)
		assert.True(t, change.Deleted)

		cancel()
		assert.Eventually(t, func() bool {
			select {
			case _, ok := <-ch:
				return !ok
			default:
				return false
			}
		}, 2*time.Second, 10*time.Millisecond)
	})
}

func receive(t *testing.T, ch <-chan repository.Change) repository.Change {
	t.Helper()
	select {
	case c, ok := <-ch:
		require.True(t, ok, "canal cerrado antes de tiempo")
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("no llegó la notificación")
		return repository.Change{}
	}
}

// ── Implementaciones ───────────────────────────────────────────────────────────

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) repository.KeyValueStore {
		s := storage.NewMemoryStore()
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestFileStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) repository.KeyValueStore {
		s, err := storage.NewFileStore(afero.NewMemMapFs(), "/data")
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestFileStore_PersisteEntreInstancias(t *testing.T) {
	fsys := afero.NewMemMapFs()
	ctx := context.Background()

	first, err := storage.NewFileStore(fsys, "/data")
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "cart_a/b", []byte(`{"version":1}`)))
	require.NoError(t, first.Close())

	second, err := storage.NewFileStore(fsys, "/data")
	require.NoError(t, err)
	v, found, err := second.Get(ctx, "cart_a/b")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"version":1}`, string(v))

	files, err := afero.ReadDir(fsys, "/data")
	require.NoError(t, err)
	assert.Len(t, files, 1, "la clave con '/' no debe crear subdirectorios")
}

func TestRedisStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) repository.KeyValueStore {
		mr := miniredis.RunT(t)
		s, err := storage.NewRedisStore(context.Background(), config.RedisConfig{Addr: mr.Addr()})
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestNewRedisStore_SinServidor(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := storage.NewRedisStore(ctx, config.RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.StorageMemory}}
	s, err := storage.Open(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &storage.MemoryStore{}, s)
}

func TestOpen_File(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.StorageFile, Dir: t.TempDir()}}
	s, err := storage.Open(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &storage.FileStore{}, s)
}

func TestOpen_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{
		Storage: config.StorageConfig{Driver: config.StorageRedis},
		Redis:   config.RedisConfig{Addr: mr.Addr()},
	}
	s, err := storage.Open(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &storage.RedisStore{}, s)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "indexeddb"}}
	_, err := storage.Open(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
}
