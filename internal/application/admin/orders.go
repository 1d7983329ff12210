package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/tevo-storefront/internal/application/listing"
	"github.com/jhoicas/tevo-storefront/internal/application/workflow"
	"github.com/jhoicas/tevo-storefront/internal/domain"
	"github.com/jhoicas/tevo-storefront/internal/domain/entity"
	"github.com/jhoicas/tevo-storefront/internal/domain/repository"
	"github.com/jhoicas/tevo-storefront/pkg/logger"
)

// StatusForm cambio de estado de un pedido.
type StatusForm struct {
	OrderID int64  `json:"orderId" validate:"gt=0"`
	Status  string `json:"status" validate:"oneof=PENDIENTE CONFIRMADO ENVIADO ENTREGADO CANCELADO"`
}

var statusMessages = workflow.Messages{"status": "Estado no válido"}

// OrdersScreen administración de pedidos.
type OrdersScreen struct {
	List   *listing.Controller[entity.Order]
	Modal  *workflow.Modal[StatusForm]
	Banner *workflow.Banner
}

// NewOrdersScreen filtros: username, status, startDate, endDate.
func NewOrdersScreen(repo repository.OrderRepository, v *workflow.Validator, bannerDelay time.Duration, log *logger.Logger) *OrdersScreen {
	log = componentLogger(log, "admin-orders")
	s := &OrdersScreen{Banner: workflow.NewBanner(bannerDelay)}
	s.List = listing.New(repo.AllOrders,
		listing.WithEmptyMessage("No hay pedidos."),
		listing.WithLogger(log))
	s.Modal = workflow.NewModal(workflow.ModalConfig[StatusForm]{
		Validate: func(f StatusForm) workflow.FieldErrors { return v.Struct(f, statusMessages) },
		Submit: func(ctx context.Context, _ workflow.Mode, f StatusForm) error {
			_, err := repo.UpdateOrderStatus(ctx, f.OrderID, f.Status)
			return err
		},
		OnSuccess:      s.List.Reload,
		SuccessMessage: func(workflow.Mode) string { return "¡Estado del pedido actualizado!" },
		FailureMessage: "Error al actualizar el estado del pedido",
		Banner:         s.Banner,
		Log:            log,
	})
	return s
}

// EditStatus abre el modal con el estado actual del pedido.
func (s *OrdersScreen) EditStatus(o entity.Order) {
	s.Modal.OpenEdit(StatusForm{OrderID: o.ID, Status: o.Status})
}

// Order busca id en la página cargada.
func (s *OrdersScreen) Order(id int64) (entity.Order, error) {
	if o, ok := findLoaded(s.List, id, func(o entity.Order) int64 { return o.ID }); ok {
		return o, nil
	}
	return entity.Order{}, fmt.Errorf("admin: pedido %d: %w", id, domain.ErrNotFound)
}
