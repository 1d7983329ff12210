package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/jhoicas/tevo-storefront/internal/domain/repository"
)

var _ repository.KeyValueStore = (*FileStore)(nil)

// FileStore guarda cada clave como un fichero JSON dentro de dir. Las notificaciones de
// Watch solo cubren escrituras hechas por este proceso.
type FileStore struct {
	fs  afero.Fs
	dir string
	mu  sync.Mutex
	hub *hub
}

// NewFileStore crea el directorio si no existe. Con afero.NewOsFs() escribe en disco;
// en tests se usa afero.NewMemMapFs().
func NewFileStore(fsys afero.Fs, dir string) (*FileStore, error) {
	if err := fsys.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("storage: crear directorio %s: %w", dir, err)
	}
	return &FileStore{fs: fsys, dir: dir, hub: newHub()}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+".json")
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := afero.ReadFile(s.fs, s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: leer %q: %w", key, err)
	}
	return b, true, nil
}

func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	target := s.path(key)
	tmp := target + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, value, 0o600); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("storage: escribir %q: %w", key, err)
	}
	if err := s.fs.Rename(tmp, target); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("storage: renombrar %q: %w", key, err)
	}
	s.mu.Unlock()
	s.hub.publish(repository.Change{Key: key, Value: cloneBytes(value)})
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	err := s.fs.Remove(s.path(key))
	s.mu.Unlock()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("storage: borrar %q: %w", key, err)
	}
	s.hub.publish(repository.Change{Key: key, Deleted: true})
	return nil
}

func (s *FileStore) Watch(ctx context.Context, key string) (<-chan repository.Change, error) {
	return s.hub.watch(ctx, key), nil
}

func (s *FileStore) Close() error {
	s.hub.close()
	return nil
}
