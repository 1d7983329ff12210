package http

import (
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tevo-storefront/internal/application/catalog"
	"github.com/jhoicas/tevo-storefront/internal/application/listing"
	"github.com/jhoicas/tevo-storefront/internal/application/present"
	"github.com/jhoicas/tevo-storefront/internal/application/session"
	"github.com/jhoicas/tevo-storefront/internal/domain/entity"
)

// ProductCard producto tal como se dibuja en portada, mercado y ficha.
type ProductCard struct {
	entity.Product
	Image      string `json:"image"`
	PriceLabel string `json:"priceLabel"`
}

// ProductDetailResponse ficha de producto con el estado del botón de compra.
type ProductDetailResponse struct {
	Product  ProductCard `json:"product"`
	CanBuy   bool        `json:"canBuy"`
	BuyLabel string      `json:"buyLabel"`
}

// ProductHandler maneja las pantallas públicas del catálogo.
type ProductHandler struct {
	cat    *catalog.Catalog
	sess   *session.Store
	prices *present.PriceFormatter

	mu     sync.Mutex
	market *listing.Controller[entity.Product]
}

// NewProductHandler construye el handler.
func NewProductHandler(cat *catalog.Catalog, sess *session.Store, prices *present.PriceFormatter) *ProductHandler {
	return &ProductHandler{cat: cat, sess: sess, prices: prices, market: cat.NewMarket()}
}

func (h *ProductHandler) card(p entity.Product, placeholder string) ProductCard {
	return ProductCard{Product: p, Image: catalog.ImageOf(p.ImagePath, placeholder), PriceLabel: h.prices.Format(p.Price)}
}

// Home godoc
// @Summary      Portada: productos aleatorios
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   ProductCard
// @Failure      502  {object}  dto.ErrorResponse
// @Router       / [get]
func (h *ProductHandler) Home(c *fiber.Ctx) error {
	products, err := h.cat.Featured(c.UserContext())
	if err != nil {
		return fail(c, err, "No se pudieron cargar los productos")
	}
	out := make([]ProductCard, len(products))
	for i, p := range products {
		out[i] = h.card(p, catalog.PlaceholderImage)
	}
	return c.JSON(out)
}

// Market godoc
// @Summary      Catálogo filtrable y paginado
// @Tags         catalog
// @Produce      json
// @Param        name      query  string  false  "Nombre"
// @Param        brand     query  string  false  "Marca"
// @Param        category  query  string  false  "Categoría"
// @Param        sort      query  string  false  "Orden"  default(id,asc)
// @Param        page      query  int     false  "Página (0-based)"
// @Success      200  {object}  ListResponse[ProductCard]
// @Router       /market [get]
func (h *ProductHandler) Market(c *fiber.Ctx) error {
	filters := queryFilters(c, catalog.MarketFilters...)
	if filters["sort"] == "" {
		filters["sort"] = catalog.DefaultSort
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return loadMapped(c, h.market, filters, nil, func(p entity.Product) ProductCard { return h.card(p, catalog.PlaceholderImage) })
}

// Detail godoc
// @Summary      Ficha de producto
// @Tags         catalog
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  ProductDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "")
	}
	p, err := h.cat.Product(c.UserContext(), id)
	if err != nil {
		return fail(c, err, catalog.MsgProductNotFound)
	}
	resp := ProductDetailResponse{Product: h.card(*p, catalog.PlaceholderImage), BuyLabel: catalog.MsgLoginToBuy}
	if h.sess.Identity() != nil {
		resp.CanBuy = true
		resp.BuyLabel = "Añadir al carrito"
	}
	return c.JSON(resp)
}
