package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tevo-storefront/internal/application/cart"
	"github.com/jhoicas/tevo-storefront/internal/application/catalog"
	"github.com/jhoicas/tevo-storefront/internal/application/checkout"
	"github.com/jhoicas/tevo-storefront/internal/application/dto"
	"github.com/jhoicas/tevo-storefront/internal/application/present"
	"github.com/jhoicas/tevo-storefront/internal/application/workflow"
	"github.com/jhoicas/tevo-storefront/internal/domain"
	"github.com/jhoicas/tevo-storefront/internal/domain/entity"
)

// CartLineView línea del carrito con importes formateados.
type CartLineView struct {
	entity.CartLine
	Image         string `json:"image"`
	PriceLabel    string `json:"priceLabel"`
	SubtotalLabel string `json:"subtotalLabel"`
}

// CartResponse carrito completo.
type CartResponse struct {
	Lines        []CartLineView `json:"lines"`
	Count        int            `json:"count"`
	TotalLabel   string         `json:"totalLabel"`
	EmptyMessage string         `json:"emptyMessage,omitempty"`
}

// AddToCartRequest cuerpo de POST /cart.
type AddToCartRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// QuantityRequest cuerpo de PUT /cart/:id.
type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutResponse pedido creado.
type CheckoutResponse struct {
	Order  *entity.Order       `json:"order"`
	Banner *dto.BannerResponse `json:"banner"`
}

// CartHandler maneja el carrito local y la compra.
type CartHandler struct {
	cart     *cart.Store
	count    *cart.CountWatcher
	cat      *catalog.Catalog
	checkout *checkout.Checkout
	prices   *present.PriceFormatter
}

// NewCartHandler construye el handler.
func NewCartHandler(store *cart.Store, count *cart.CountWatcher, cat *catalog.Catalog, co *checkout.Checkout, prices *present.PriceFormatter) *CartHandler {
	return &CartHandler{cart: store, count: count, cat: cat, checkout: co, prices: prices}
}

func (h *CartHandler) respond(c *fiber.Ctx, status int) error {
	lines, err := h.cart.Lines(c.UserContext())
	if err != nil {
		return fail(c, err, "")
	}
	resp := CartResponse{Lines: make([]CartLineView, len(lines)), Count: len(lines), TotalLabel: h.prices.Format(cart.Total(lines))}
	for i, l := range lines {
		resp.Lines[i] = CartLineView{
			CartLine:      l,
			Image:         catalog.ImageOf(l.ImagePath, catalog.ThumbnailImage),
			PriceLabel:    h.prices.Format(l.Price),
			SubtotalLabel: h.prices.Format(l.Subtotal()),
		}
	}
	if len(lines) == 0 {
		resp.EmptyMessage = checkout.MsgEmptyCart
	}
	return c.Status(status).JSON(resp)
}

// Get godoc
// @Summary      Carrito del usuario
// @Tags         cart
// @Produce      json
// @Success      200  {object}  CartResponse
// @Router       /cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	return h.respond(c, fiber.StatusOK)
}

// Count godoc
// @Summary      Número de líneas del carrito (icono de la cabecera)
// @Tags         cart
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /cart/count [get]
func (h *CartHandler) Count(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"count": h.count.Count()})
}

// Add godoc
// @Summary      Añadir producto al carrito
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body  AddToCartRequest  true  "Producto y unidades"
// @Success      201   {object}  CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /cart [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in AddToCartRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.cat.Product(c.UserContext(), in.ProductID)
	if err != nil {
		return fail(c, err, catalog.MsgProductNotFound)
	}
	if err := h.cart.Add(c.UserContext(), *p, in.Quantity); err != nil {
		return fail(c, err, "")
	}
	return h.respond(c, fiber.StatusCreated)
}

// SetQuantity godoc
// @Summary      Cambiar unidades de una línea (mínimo 1)
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        id    path  int              true  "ID del producto"
// @Param        body  body  QuantityRequest  true  "Unidades"
// @Success      200   {object}  CartResponse
// @Router       /cart/{id} [put]
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "")
	}
	var in QuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.cart.SetQuantity(c.UserContext(), id, in.Quantity); err != nil {
		return fail(c, err, "")
	}
	return h.respond(c, fiber.StatusOK)
}

// Remove godoc
// @Summary      Quitar una línea
// @Tags         cart
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  CartResponse
// @Router       /cart/{id} [delete]
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "")
	}
	if err := h.cart.Remove(c.UserContext(), id); err != nil {
		return fail(c, err, "")
	}
	return h.respond(c, fiber.StatusOK)
}

// Clear godoc
// @Summary      Vaciar el carrito
// @Tags         cart
// @Produce      json
// @Success      200  {object}  CartResponse
// @Router       /cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.cart.Clear(c.UserContext()); err != nil {
		return fail(c, err, "")
	}
	return h.respond(c, fiber.StatusOK)
}

// Checkout godoc
// @Summary      Finalizar compra
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body  checkout.ShippingForm  true  "Dirección de envío"
// @Success      201   {object}  CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /cart/checkout [post]
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	var in checkout.ShippingForm
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	order, err := h.checkout.PlaceOrder(c.UserContext(), in)
	if errors.Is(err, domain.ErrEmptyCart) {
		return fail(c, err, checkout.MsgEmptyCart)
	}
	if err != nil {
		return fail(c, err, checkout.MsgOrderFailed)
	}
	return c.Status(fiber.StatusCreated).JSON(CheckoutResponse{
		Order:  order,
		Banner: &dto.BannerResponse{Kind: workflow.BannerSuccess, Message: checkout.MsgOrderPlaced},
	})
}
