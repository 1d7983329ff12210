package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/tevo-storefront/internal/application/listing"
	"github.com/jhoicas/tevo-storefront/internal/domain"
	"github.com/jhoicas/tevo-storefront/internal/domain/entity"
	"github.com/jhoicas/tevo-storefront/internal/domain/repository"
	"github.com/jhoicas/tevo-storefront/pkg/logger"
)

// MsgNoOrders estado vacío del historial.
const MsgNoOrders = "No tienes pedidos realizados en este rango de fechas."

// maxScanPages tope de páginas recorridas al buscar un pedido por id.
const maxScanPages = 50

// History historial de pedidos del usuario autenticado (GET /orders).
type History struct {
	List *listing.Controller[entity.Order]

	repo repository.OrderRepository
	log  *logger.Logger
}

// NewHistory construye el historial.
func NewHistory(repo repository.OrderRepository, log *logger.Logger) *History {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("orders")
	return &History{
		List: listing.New(repo.MyOrders,
			listing.WithEmptyMessage(MsgNoOrders),
			listing.WithLogger(log)),
		repo: repo,
		log:  log,
	}
}

// DateRange convierte [from, to] (AAAA-MM-DD, vacío = sin límite) en los filtros
// startDate/endDate del backend.
func DateRange(from, to string) (map[string]string, error) {
	start, err := listing.DateFilter(from, false)
	if err != nil {
		return nil, fmt.Errorf("orders: %w: %v", domain.ErrInvalidInput, err)
	}
	end, err := listing.DateFilter(to, true)
	if err != nil {
		return nil, fmt.Errorf("orders: %w: %v", domain.ErrInvalidInput, err)
	}
	return map[string]string{"startDate": start, "endDate": end}, nil
}

// FilterDates aplica el rango [from, to] y vuelve a la página 0.
func (h *History) FilterDates(ctx context.Context, from, to string) error {
	filters, err := DateRange(from, to)
	if err != nil {
		return err
	}
	return h.List.SetFilters(ctx, filters)
}

// Load carga la página page del rango [from, to]; si el rango cambia se vuelve a la página 0.
func (h *History) Load(ctx context.Context, from, to string, page int) error {
	filters, err := DateRange(from, to)
	if err != nil {
		return err
	}
	return h.List.Apply(ctx, filters, page)
}

// Find localiza un pedido propio recorriendo las páginas del historial; el backend no
// expone GET /orders/:id.
func (h *History) Find(ctx context.Context, id int64) (*entity.Order, error) {
	for page := 0; page < maxScanPages; page++ {
		result, err := h.repo.MyOrders(ctx, nil, page)
		if err != nil {
			return nil, fmt.Errorf("orders: buscar pedido %d: %w", id, err)
		}
		for i := range result.Content {
			if result.Content[i].ID == id {
				o := result.Content[i]
				return &o, nil
			}
		}
		if page+1 >= result.TotalPages {
			break
		}
	}
	return nil, fmt.Errorf("orders: pedido %d: %w", id, domain.ErrNotFound)
}

// ShippingLine dirección de envío tal como se muestra en el detalle del pedido.
func ShippingLine(o entity.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, Nº %s", o.Address, o.Number)
	if o.Floor != "" {
		fmt.Fprintf(&b, ", Piso %s", o.Floor)
	}
	fmt.Fprintf(&b, ", CP %s", o.PostalCode)
	return b.String()
}

// ReceiptRenderer genera el justificante de un pedido.
type ReceiptRenderer interface {
	Render(ctx context.Context, order *entity.Order) ([]byte, error)
}

// Receipt busca el pedido propio id y genera su justificante.
func (h *History) Receipt(ctx context.Context, id int64, r ReceiptRenderer) ([]byte, error) {
	o, err := h.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	doc, err := r.Render(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("orders: justificante %d: %w", id, err)
	}
	h.log.Debug().Int64("order_id", id).Int("bytes", len(doc)).Msg("justificante generado")
	return doc, nil
}
