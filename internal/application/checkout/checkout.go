package checkout

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jhoicas/tevo-storefront/internal/application/dto"
	"github.com/jhoicas/tevo-storefront/internal/application/workflow"
	"github.com/jhoicas/tevo-storefront/internal/domain"
	"github.com/jhoicas/tevo-storefront/internal/domain/entity"
	"github.com/jhoicas/tevo-storefront/pkg/logger"
)

// Textos del proceso de compra.
const (
	ConfirmPrompt  = "¿Estás seguro de que quieres finalizar la compra?"
	MsgOrderPlaced = "¡Pedido realizado correctamente!"
	MsgOrderFailed = "No se pudo realizar el pedido"
	MsgEmptyCart   = "Tu carrito está vacío."
)

// ShippingForm dirección de envío del pedido.
type ShippingForm struct {
	Address    string `json:"address" validate:"notblank"`
	Number     string `json:"number" validate:"notblank"`
	Floor      string `json:"floor"`
	PostalCode string `json:"postalCode" validate:"postcode"`
}

var shippingMessages = workflow.Messages{
	"address":    "La dirección es obligatoria",
	"number":     "El número es obligatorio",
	"postalCode": "Código postal no válido (5 dígitos)",
}

// Cart carrito del que sale el pedido.
type Cart interface {
	Lines(ctx context.Context) ([]entity.CartLine, error)
	Clear(ctx context.Context) error
}

// OrderPlacer envía el pedido al backend.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, in dto.OrderRequest) (*entity.Order, error)
}

// Checkout convierte el carrito en un pedido.
type Checkout struct {
	cart   Cart
	orders OrderPlacer
	v      *workflow.Validator
	log    *logger.Logger

	mu   sync.Mutex
	busy bool
}

// New construye el proceso de compra.
func New(cart Cart, orders OrderPlacer, v *workflow.Validator, log *logger.Logger) *Checkout {
	if log == nil {
		log = logger.Nop()
	}
	return &Checkout{cart: cart, orders: orders, v: v, log: log.Component("checkout")}
}

// PlaceOrder valida la dirección, envía las líneas del carrito y, solo si el backend acepta
// el pedido, vacía el carrito una vez. Un carrito vacío no llega a la red.
func (c *Checkout) PlaceOrder(ctx context.Context, f ShippingForm) (*entity.Order, error) {
	if fields := c.v.Struct(f, shippingMessages); fields != nil {
		return nil, fields
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return nil, domain.ErrBusy
	}
	c.busy = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	lines, err := c.cart.Lines(ctx)
	if err != nil {
		return nil, fmt.Errorf("checkout: leer carrito: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("checkout: %w", domain.ErrEmptyCart)
	}

	req := dto.OrderRequest{
		Address:    strings.TrimSpace(f.Address),
		Number:     strings.TrimSpace(f.Number),
		Floor:      strings.TrimSpace(f.Floor),
		PostalCode: strings.TrimSpace(f.PostalCode),
		Items:      make([]dto.OrderItemRequest, 0, len(lines)),
	}
	for _, l := range lines {
		req.Items = append(req.Items, dto.OrderItemRequest{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	order, err := c.orders.PlaceOrder(ctx, req)
	if err != nil {
		c.log.Warn().Err(err).Int("lines", len(lines)).Msg("pedido rechazado")
		return nil, fmt.Errorf("checkout: enviar pedido: %w", err)
	}
	if err := c.cart.Clear(ctx); err != nil {
		// El pedido ya existe; el carrito se podrá vaciar a mano.
		c.log.Error().Err(err).Int64("order_id", order.ID).Msg("no se pudo vaciar el carrito")
	}
	c.log.Info().Int64("order_id", order.ID).Int("lines", len(lines)).Msg("pedido realizado")
	return order, nil
}
