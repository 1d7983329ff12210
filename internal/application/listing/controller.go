package listing

import (
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/jhoicas/tevo-storefront/internal/domain/entity"
	"github.com/jhoicas/tevo-storefront/pkg/logger"
)

// DefaultEmptyMessage texto mostrado cuando la página no trae elementos o la carga falla.
const DefaultEmptyMessage = "No se encontraron resultados."

// State estado de carga de un listado.
type State int

const (
	Idle State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Fetcher consulta una página al backend con los filtros vigentes.
type Fetcher[T any] func(ctx context.Context, filters map[string]string, page int) (entity.Page[T], error)

// View estado observable del listado para la capa de presentación.
type View[T any] struct {
	State        State
	Filters      map[string]string
	Page         int
	TotalPages   int
	Items        []T
	Err          error
	EmptyMessage string // solo si no hay elementos
	Pager        Pager
}

// Controller patrón listado+filtros+paginación común a catálogo, pedidos y administración.
// Cada carga cancela la anterior y solo se aplica la respuesta más reciente.
type Controller[T any] struct {
	fetch        Fetcher[T]
	emptyMessage string
	log          *logger.Logger

	mu         sync.Mutex
	filters    map[string]string
	page       int
	state      State
	items      []T
	totalPages int
	err        error
	seq        uint64
	cancel     context.CancelFunc
}

// Option configura un Controller.
type Option func(*options)

type options struct {
	emptyMessage string
	filters      map[string]string
	log          *logger.Logger
}

// WithEmptyMessage texto del estado vacío.
func WithEmptyMessage(msg string) Option {
	return func(o *options) { o.emptyMessage = msg }
}

// WithFilters filtros iniciales.
func WithFilters(filters map[string]string) Option {
	return func(o *options) { o.filters = maps.Clone(filters) }
}

// WithLogger logger del controlador.
func WithLogger(log *logger.Logger) Option {
	return func(o *options) { o.log = log }
}

// New construye el controlador en estado Idle; la primera carga la dispara Reload.
func New[T any](fetch Fetcher[T], opts ...Option) *Controller[T] {
	o := options{emptyMessage: DefaultEmptyMessage, log: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.filters == nil {
		o.filters = map[string]string{}
	}
	return &Controller[T]{
		fetch:        fetch,
		emptyMessage: o.emptyMessage,
		log:          o.log,
		filters:      o.filters,
	}
}

// SetFilter cambia un campo del filtro, vuelve a la página 0 y recarga.
func (c *Controller[T]) SetFilter(ctx context.Context, field, value string) error {
	c.mu.Lock()
	c.filters[field] = value
	c.page = 0
	c.mu.Unlock()
	return c.load(ctx)
}

// SetFilters reemplaza todos los filtros, vuelve a la página 0 y recarga.
func (c *Controller[T]) SetFilters(ctx context.Context, filters map[string]string) error {
	c.mu.Lock()
	c.filters = maps.Clone(filters)
	if c.filters == nil {
		c.filters = map[string]string{}
	}
	c.page = 0
	c.mu.Unlock()
	return c.load(ctx)
}

// SetPage carga la página indicada conservando los filtros.
func (c *Controller[T]) SetPage(ctx context.Context, page int) error {
	if page < 0 {
		page = 0
	}
	c.mu.Lock()
	c.page = page
	c.mu.Unlock()
	return c.load(ctx)
}

// Apply carga con los filtros y la página pedidos en una sola llamada. Si los filtros
// cambian respecto a los vigentes, la página pedida se ignora y se vuelve a la 0.
// Un campo vacío equivale a un campo ausente.
func (c *Controller[T]) Apply(ctx context.Context, filters map[string]string, page int) error {
	if page < 0 {
		page = 0
	}
	c.mu.Lock()
	next := maps.Clone(c.filters)
	for k, v := range filters {
		next[k] = v
	}
	if !maps.Equal(nonEmpty(next), nonEmpty(c.filters)) {
		page = 0
	}
	c.filters = next
	c.page = page
	c.mu.Unlock()
	return c.load(ctx)
}

// nonEmpty copia m sin los valores vacíos; el gateway no los envía.
func nonEmpty(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Reload vuelve a pedir la página actual (tras crear, editar o borrar).
func (c *Controller[T]) Reload(ctx context.Context) error {
	return c.load(ctx)
}

// ErrSuperseded la carga fue reemplazada por otra más reciente; la pantalla lo ignora.
var ErrSuperseded = errors.New("listing: carga reemplazada por otra más reciente")

func (c *Controller[T]) load(ctx context.Context) error {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	seq := c.seq
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = Loading
	filters := maps.Clone(c.filters)
	page := c.page
	c.mu.Unlock()

	result, err := c.fetch(fetchCtx, filters, page)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		cancel()
		return ErrSuperseded
	}
	cancel()
	c.cancel = nil

	if err != nil {
		c.state = Failed
		c.items = nil
		c.totalPages = 0
		c.err = err
		c.log.Warn().Err(err).Int("page", page).Msg("fallo al cargar el listado")
		return err
	}
	c.state = Loaded
	c.items = result.Content
	c.totalPages = result.TotalPages
	c.err = nil
	return nil
}

// View devuelve una copia del estado actual.
func (c *Controller[T]) View() View[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := View[T]{
		State:      c.state,
		Filters:    maps.Clone(c.filters),
		Page:       c.page,
		TotalPages: c.totalPages,
		Items:      append([]T(nil), c.items...),
		Err:        c.err,
		Pager:      NewPager(c.page, c.totalPages),
	}
	if v.Items == nil {
		v.Items = []T{}
	}
	if len(v.Items) == 0 && (c.state == Loaded || c.state == Failed) {
		v.EmptyMessage = c.emptyMessage
	}
	return v
}
