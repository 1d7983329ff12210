package http

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tevo-storefront/internal/application/orders"
	"github.com/jhoicas/tevo-storefront/internal/application/present"
	"github.com/jhoicas/tevo-storefront/internal/domain"
	"github.com/jhoicas/tevo-storefront/internal/domain/entity"
)

// OrderView pedido con etiquetas de presentación.
type OrderView struct {
	entity.Order
	Badge      present.StatusBadge `json:"badge"`
	TotalLabel string              `json:"totalLabel"`
	Shipping   string              `json:"shipping"`
}

// OrderHandler historial de pedidos del usuario y justificantes.
type OrderHandler struct {
	history  *orders.History
	receipts orders.ReceiptRenderer
	prices   *present.PriceFormatter

	mu sync.Mutex
}

// NewOrderHandler construye el handler.
func NewOrderHandler(history *orders.History, receipts orders.ReceiptRenderer, prices *present.PriceFormatter) *OrderHandler {
	return &OrderHandler{history: history, receipts: receipts, prices: prices}
}

func orderView(o entity.Order, prices *present.PriceFormatter) OrderView {
	return OrderView{
		Order:      o,
		Badge:      present.Badge(o.Status),
		TotalLabel: prices.Format(o.Total),
		Shipping:   orders.ShippingLine(o),
	}
}

// List godoc
// @Summary      Mis pedidos
// @Tags         orders
// @Produce      json
// @Param        from  query  string  false  "Desde (AAAA-MM-DD)"
// @Param        to    query  string  false  "Hasta (AAAA-MM-DD)"
// @Param        page  query  int     false  "Página (0-based)"
// @Success      200  {object}  ListResponse[OrderView]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	err := h.history.Load(c.UserContext(), c.Query("from"), c.Query("to"), c.QueryInt("page", 0))
	if err != nil && (errors.Is(err, domain.ErrInvalidInput) || !isListFailure(err)) {
		return fail(c, err, "Fecha no válida")
	}
	out := mapList(h.history.List.View(), func(o entity.Order) OrderView { return orderView(o, h.prices) })
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Justificante PDF de un pedido propio
// @Tags         orders
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del pedido"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /orders/{id}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "")
	}
	doc, err := h.history.Receipt(c.UserContext(), id, h.receipts)
	if err != nil {
		return fail(c, err, "Pedido no encontrado")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="pedido-%d.pdf"`, id))
	return c.Send(doc)
}
