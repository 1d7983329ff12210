package workflow

import (
	"sync"
	"time"
)

// DefaultBannerDelay tiempo que permanece visible un aviso.
const DefaultBannerDelay = 4 * time.Second

// Tipos de aviso.
const (
	BannerSuccess = "success"
	BannerError   = "error"
)

// BannerView aviso visible; Message vacío si no hay ninguno.
type BannerView struct {
	Kind    string
	Message string
}

// Banner aviso transitorio de una pantalla. Cada Show reemplaza el anterior y programa su
// propio cierre.
type Banner struct {
	delay time.Duration

	mu    sync.Mutex
	view  BannerView
	timer *time.Timer
	gen   uint64
}

// NewBanner crea un aviso que se oculta tras delay (DefaultBannerDelay si es <= 0).
func NewBanner(delay time.Duration) *Banner {
	if delay <= 0 {
		delay = DefaultBannerDelay
	}
	return &Banner{delay: delay}
}

// Success muestra un aviso de éxito.
func (b *Banner) Success(msg string) { b.show(BannerSuccess, msg) }

// Error muestra un aviso de error.
func (b *Banner) Error(msg string) { b.show(BannerError, msg) }

func (b *Banner) show(kind, msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
	}
	b.gen++
	gen := b.gen
	b.view = BannerView{Kind: kind, Message: msg}
	b.timer = time.AfterFunc(b.delay, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.gen == gen {
			b.view = BannerView{}
			b.timer = nil
		}
	})
}

// Dismiss oculta el aviso de inmediato.
func (b *Banner) Dismiss() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.gen++
	b.view = BannerView{}
}

// Current aviso visible.
func (b *Banner) Current() BannerView {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view
}
