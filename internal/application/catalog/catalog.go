package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/tevo-storefront/internal/application/listing"
	"github.com/jhoicas/tevo-storefront/internal/domain"
	"github.com/jhoicas/tevo-storefront/internal/domain/entity"
	"github.com/jhoicas/tevo-storefront/internal/domain/repository"
	"github.com/jhoicas/tevo-storefront/pkg/logger"
)

// Textos y valores por defecto del catálogo.
const (
	DefaultSort        = "id,asc"
	MsgNoProducts      = "No se encontraron productos."
	MsgProductNotFound = "Producto no encontrado"
	MsgLoginToBuy      = "Iniciar sesión para comprar"

	PlaceholderImage = "https://placehold.co/800?text=Placeholder+Image&font=playfair-display"
	ThumbnailImage   = "https://placehold.co/60x60?text=IMG"
)

// MarketFilters filtros admitidos por GET /products.
var MarketFilters = []string{"name", "brand", "category", "sort"}

// Catalog consultas públicas de productos.
type Catalog struct {
	repo repository.ProductRepository
	log  *logger.Logger
}

// New construye el catálogo.
func New(repo repository.ProductRepository, log *logger.Logger) *Catalog {
	if log == nil {
		log = logger.Nop()
	}
	return &Catalog{repo: repo, log: log.Component("catalog")}
}

// Featured productos aleatorios de la portada.
func (c *Catalog) Featured(ctx context.Context) ([]entity.Product, error) {
	products, err := c.repo.RandomProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: destacados: %w", err)
	}
	if products == nil {
		products = []entity.Product{}
	}
	return products, nil
}

// NewMarket listado filtrable de /market, ordenado por id ascendente salvo que se indique otra cosa.
func (c *Catalog) NewMarket() *listing.Controller[entity.Product] {
	return listing.New(c.repo.ListProducts,
		listing.WithFilters(map[string]string{"sort": DefaultSort}),
		listing.WithEmptyMessage(MsgNoProducts),
		listing.WithLogger(c.log))
}

// Product ficha de producto. Un id no positivo se trata como inexistente sin llamar a la red.
func (c *Catalog) Product(ctx context.Context, id int64) (*entity.Product, error) {
	if id <= 0 {
		return nil, fmt.Errorf("catalog: producto %d: %w", id, domain.ErrNotFound)
	}
	p, err := c.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catalog: producto %d: %w", id, err)
	}
	return p, nil
}

// ImageOf devuelve la imagen del producto o placeholder si no tiene.
func ImageOf(imagePath, placeholder string) string {
	if imagePath == "" {
		return placeholder
	}
	return imagePath
}
