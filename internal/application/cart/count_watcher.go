package cart

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/jhoicas/tevo-storefront/internal/domain/repository"
	"github.com/jhoicas/tevo-storefront/pkg/logger"
)

// CountWatcher mantiene en caché el número de líneas del carrito del usuario actual y lo
// refresca con cada notificación de cambio del almacenamiento, venga de esta u otra instancia.
type CountWatcher struct {
	kv  repository.KeyValueStore
	log *logger.Logger

	count atomic.Int64

	// follow serializa Follow y Stop: cada llamada detiene e instala el observador entera.
	follow sync.Mutex

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewCountWatcher construye el observador sin usuario; Count devuelve 0 hasta Follow.
func NewCountWatcher(kv repository.KeyValueStore, log *logger.Logger) *CountWatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &CountWatcher{kv: kv, log: log.Component("cart-count")}
}

// Follow pasa a observar el carrito de subject (vacío = sin usuario). Detiene la observación
// anterior. Vive hasta que ctx termina o se llama de nuevo.
func (w *CountWatcher) Follow(ctx context.Context, subject string) error {
	w.follow.Lock()
	defer w.follow.Unlock()

	w.stop()
	w.count.Store(0)
	if subject == "" {
		return nil
	}

	key := Key(subject)
	watchCtx, cancel := context.WithCancel(ctx)
	changes, err := w.kv.Watch(watchCtx, key)
	if err != nil {
		cancel()
		return err
	}
	raw, found, err := w.kv.Get(ctx, key)
	if err != nil {
		cancel()
		return err
	}
	if found {
		w.count.Store(int64(countLines(raw)))
	}

	done := make(chan struct{})
	w.mu.Lock()
	w.cancel, w.done = cancel, done
	w.mu.Unlock()

	go func() {
		defer close(done)
		for c := range changes {
			if c.Deleted {
				w.count.Store(0)
				continue
			}
			w.count.Store(int64(countLines(c.Value)))
		}
	}()
	w.log.Debug().Str("key", key).Msg("observando carrito")
	return nil
}

// Stop deja de observar y espera a que termine la goroutine.
func (w *CountWatcher) Stop() {
	w.follow.Lock()
	defer w.follow.Unlock()
	w.stop()
}

func (w *CountWatcher) stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel, w.done = nil, nil
	w.mu.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}
}

// Count último número de líneas conocido.
func (w *CountWatcher) Count() int {
	return int(w.count.Load())
}
