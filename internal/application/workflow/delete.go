package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jhoicas/tevo-storefront/internal/domain"
	"github.com/jhoicas/tevo-storefront/pkg/logger"
)

// ErrNothingPending Confirm sin un Request previo.
var ErrNothingPending = errors.New("workflow: no hay borrado pendiente de confirmar")

// DeleteConfig comportamiento de un borrado con confirmación.
type DeleteConfig[T any] struct {
	Resource  string // "producto", "rol", "usuario"
	Name      func(T) string
	Protected func(T) bool
	Delete    func(ctx context.Context, target T) error
	OnSuccess func(ctx context.Context) error
	// SuccessMessage y FailureMessage textos de los avisos.
	SuccessMessage string
	FailureMessage string
	Banner         *Banner
	Log            *logger.Logger
}

// Confirmation datos del diálogo de confirmación.
type Confirmation struct {
	Resource string
	Name     string
	Prompt   string
}

// DeleteFlow Request → Confirm. Los registros protegidos no llegan a pedir confirmación.
type DeleteFlow[T any] struct {
	cfg DeleteConfig[T]

	mu      sync.Mutex
	pending *T
	busy    bool
	errMsg  string
}

// NewDeleteFlow construye el flujo.
func NewDeleteFlow[T any](cfg DeleteConfig[T]) *DeleteFlow[T] {
	if cfg.Resource == "" {
		cfg.Resource = "elemento"
	}
	if cfg.FailureMessage == "" {
		cfg.FailureMessage = fmt.Sprintf("Error al eliminar el %s", cfg.Resource)
	}
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}
	return &DeleteFlow[T]{cfg: cfg}
}

// CanDelete indica si el control de borrado debe estar habilitado.
func (d *DeleteFlow[T]) CanDelete(target T) bool {
	return d.cfg.Protected == nil || !d.cfg.Protected(target)
}

// Request prepara la confirmación repitiendo el nombre del registro.
func (d *DeleteFlow[T]) Request(target T) (Confirmation, error) {
	if !d.CanDelete(target) {
		return Confirmation{}, domain.ErrProtectedRecord
	}
	name := ""
	if d.cfg.Name != nil {
		name = d.cfg.Name(target)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	t := target
	d.pending = &t
	d.errMsg = ""
	return Confirmation{
		Resource: d.cfg.Resource,
		Name:     name,
		Prompt:   fmt.Sprintf("¿Estás seguro de que deseas eliminar el %s %s?", d.cfg.Resource, name),
	}, nil
}

// Cancel descarta la confirmación pendiente.
func (d *DeleteFlow[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = nil
	d.errMsg = ""
}

// Confirm ejecuta el borrado pendiente.
func (d *DeleteFlow[T]) Confirm(ctx context.Context) error {
	d.mu.Lock()
	if d.pending == nil {
		d.mu.Unlock()
		return ErrNothingPending
	}
	if d.busy {
		d.mu.Unlock()
		return domain.ErrBusy
	}
	target := *d.pending
	d.busy = true
	d.mu.Unlock()

	err := d.cfg.Delete(ctx, target)

	d.mu.Lock()
	d.busy = false
	if err != nil {
		d.errMsg = d.cfg.FailureMessage
		d.mu.Unlock()
		d.cfg.Log.Warn().Err(err).Str("resource", d.cfg.Resource).Msg("borrado fallido")
		if d.cfg.Banner != nil {
			d.cfg.Banner.Error(d.cfg.FailureMessage)
		}
		return err
	}
	d.pending = nil
	d.errMsg = ""
	d.mu.Unlock()

	if d.cfg.OnSuccess != nil {
		if err := d.cfg.OnSuccess(ctx); err != nil {
			d.cfg.Log.Warn().Err(err).Msg("recarga tras borrar")
		}
	}
	if d.cfg.Banner != nil && d.cfg.SuccessMessage != "" {
		d.cfg.Banner.Success(d.cfg.SuccessMessage)
	}
	return nil
}

// Pending registro a la espera de confirmación.
func (d *DeleteFlow[T]) Pending() (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending == nil {
		var zero T
		return zero, false
	}
	return *d.pending, true
}

// Error último mensaje de fallo.
func (d *DeleteFlow[T]) Error() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.errMsg
}
