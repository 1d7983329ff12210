package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jhoicas/tevo-storefront/internal/domain"
	"github.com/jhoicas/tevo-storefront/pkg/logger"
)

// DefaultFailureMessage texto cuando el backend no explica el fallo.
const DefaultFailureMessage = "Ha ocurrido un error. Inténtalo de nuevo."

// ErrClosed se devuelve al enviar un modal que no está abierto.
var ErrClosed = errors.New("workflow: el formulario no está abierto")

// Mode origen del formulario.
type Mode int

const (
	ModeCreate Mode = iota + 1
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "edit"
	}
	return "closed"
}

// userMessager errores que llevan un texto apto para el usuario (p. ej. gateway.APIError).
type userMessager interface {
	UserMessage() string
}

// UserMessage extrae el mensaje del backend de err o devuelve fallback.
func UserMessage(err error, fallback string) string {
	var m userMessager
	if errors.As(err, &m) && m.UserMessage() != "" {
		return m.UserMessage()
	}
	return fallback
}

// ModalConfig comportamiento de un formulario modal de alta/edición.
type ModalConfig[F any] struct {
	// Validate validación local; un resultado no vacío bloquea el envío.
	Validate func(F) FieldErrors
	// Submit llamada al backend.
	Submit func(ctx context.Context, mode Mode, form F) error
	// OnSuccess normalmente recarga el listado padre.
	OnSuccess func(ctx context.Context) error
	// SuccessMessage texto del aviso de éxito según el modo.
	SuccessMessage func(Mode) string
	// FailureMessage texto genérico si el backend no aporta mensaje.
	FailureMessage string
	// FailureMessageFunc permite componer el texto a partir del error (tiene prioridad).
	FailureMessageFunc func(err error) string
	Banner             *Banner
	Log                *logger.Logger
}

// ModalView estado del modal para la presentación.
type ModalView[F any] struct {
	Open   bool
	Mode   Mode
	Form   F
	Fields FieldErrors
	Error  string
	Busy   bool
}

// Modal flujo abrir → validar → enviar → cerrar+recargar | seguir abierto con el error.
type Modal[F any] struct {
	cfg ModalConfig[F]

	mu     sync.Mutex
	open   bool
	mode   Mode
	form   F
	fields FieldErrors
	errMsg string
	busy   bool
}

// NewModal construye un modal cerrado.
func NewModal[F any](cfg ModalConfig[F]) *Modal[F] {
	if cfg.FailureMessage == "" {
		cfg.FailureMessage = DefaultFailureMessage
	}
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}
	return &Modal[F]{cfg: cfg}
}

// OpenCreate abre con los valores por defecto y sin errores previos.
func (m *Modal[F]) OpenCreate(defaults F) {
	m.reset(ModeCreate, defaults)
}

// OpenEdit abre con los datos del registro seleccionado.
func (m *Modal[F]) OpenEdit(record F) {
	m.reset(ModeEdit, record)
}

func (m *Modal[F]) reset(mode Mode, form F) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = true
	m.mode = mode
	m.form = form
	m.fields = nil
	m.errMsg = ""
}

// Set reemplaza el contenido del formulario.
func (m *Modal[F]) Set(form F) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.form = form
}

// Close cierra sin enviar.
func (m *Modal[F]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = false
	m.mode = 0
	m.fields = nil
	m.errMsg = ""
}

// Submit valida y envía. Devuelve FieldErrors si la validación falla (sin llamada de red),
// ErrBusy si ya hay un envío en curso, o el error del backend (el modal sigue abierto).
func (m *Modal[F]) Submit(ctx context.Context) error {
	m.mu.Lock()
	if !m.open {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.busy {
		m.mu.Unlock()
		return domain.ErrBusy
	}
	form, mode := m.form, m.mode
	if m.cfg.Validate != nil {
		if fields := m.cfg.Validate(form); len(fields) > 0 {
			m.fields = fields
			m.errMsg = ""
			m.mu.Unlock()
			return fields
		}
	}
	m.fields = nil
	m.errMsg = ""
	m.busy = true
	m.mu.Unlock()

	err := m.cfg.Submit(ctx, mode, form)

	m.mu.Lock()
	m.busy = false
	if err != nil {
		m.errMsg = m.failureMessage(err)
		m.mu.Unlock()
		m.cfg.Log.Warn().Err(err).Str("mode", mode.String()).Msg("envío de formulario fallido")
		return err
	}
	m.open = false
	m.mode = 0
	m.mu.Unlock()

	if m.cfg.OnSuccess != nil {
		if err := m.cfg.OnSuccess(ctx); err != nil {
			m.cfg.Log.Warn().Err(err).Msg("recarga tras guardar")
		}
	}
	if m.cfg.Banner != nil && m.cfg.SuccessMessage != nil {
		m.cfg.Banner.Success(m.cfg.SuccessMessage(mode))
	}
	return nil
}

func (m *Modal[F]) failureMessage(err error) string {
	if m.cfg.FailureMessageFunc != nil {
		return m.cfg.FailureMessageFunc(err)
	}
	return UserMessage(err, m.cfg.FailureMessage)
}

// View copia del estado.
func (m *Modal[F]) View() ModalView[F] {
	m.mu.Lock()
	defer m.mu.Unlock()
	var fields FieldErrors
	if len(m.fields) > 0 {
		fields = make(FieldErrors, len(m.fields))
		for k, v := range m.fields {
			fields[k] = v
		}
	}
	return ModalView[F]{
		Open:   m.open,
		Mode:   m.mode,
		Form:   m.form,
		Fields: fields,
		Error:  m.errMsg,
		Busy:   m.busy,
	}
}

// String para logs.
func (v ModalView[F]) String() string {
	return fmt.Sprintf("modal{open=%t mode=%s busy=%t}", v.Open, v.Mode, v.Busy)
}
