package storage

import (
	"context"
	"sync"

	"github.com/jhoicas/tevo-storefront/internal/domain/repository"
)

// watchBuffer capacidad de cada canal de Watch. Si el consumidor no lee, las
// notificaciones sobrantes se descartan: el suscriptor debe releer la clave.
const watchBuffer = 16

// hub reparte notificaciones de cambio dentro del proceso.
type hub struct {
	mu       sync.Mutex
	watchers map[string]map[chan repository.Change]struct{}
	closed   bool
}

func newHub() *hub {
	return &hub{watchers: make(map[string]map[chan repository.Change]struct{})}
}

func (h *hub) watch(ctx context.Context, key string) <-chan repository.Change {
	ch := make(chan repository.Change, watchBuffer)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch
	}
	set, ok := h.watchers[key]
	if !ok {
		set = make(map[chan repository.Change]struct{})
		h.watchers[key] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.watchers[key][ch]; ok {
			delete(h.watchers[key], ch)
			close(ch)
		}
	}()
	return ch
}

func (h *hub) publish(c repository.Change) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.watchers[c.Key] {
		select {
		case ch <- c:
		default:
		}
	}
}

func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for key, set := range h.watchers {
		for ch := range set {
			close(ch)
		}
		delete(h.watchers, key)
	}
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
