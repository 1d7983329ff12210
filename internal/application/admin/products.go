package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tevo-storefront/internal/application/dto"
	"github.com/jhoicas/tevo-storefront/internal/application/listing"
	"github.com/jhoicas/tevo-storefront/internal/application/workflow"
	"github.com/jhoicas/tevo-storefront/internal/domain/entity"
	"github.com/jhoicas/tevo-storefront/internal/domain/repository"
	"github.com/jhoicas/tevo-storefront/pkg/logger"
)

// ProductForm formulario de alta/edición de producto. ID solo se usa en edición.
type ProductForm struct {
	ID          int64           `json:"id,omitempty"`
	Name        string          `json:"name" validate:"notblank"`
	Description string          `json:"description" validate:"notblank"`
	Price       decimal.Decimal `json:"price" validate:"gte=1"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Brand       string          `json:"brand" validate:"notblank"`
	Category    string          `json:"category" validate:"notblank"`
	ImagePath   string          `json:"imagePath" validate:"omitempty,httpurl,imageext"`
}

var productMessages = workflow.Messages{
	"name":        "El nombre es obligatorio",
	"description": "La descripción es obligatoria",
	"price":       "El precio debe ser mayor que 0",
	"stock":       "El stock no puede ser negativo",
	"brand":       "La marca es obligatoria",
	"category":    "La categoría es obligatoria",
}

// ProductFormFrom rellena el formulario de edición.
func ProductFormFrom(p entity.Product) ProductForm {
	return ProductForm{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Brand:       p.Brand,
		Category:    p.Category,
		ImagePath:   p.ImagePath,
	}
}

func (f ProductForm) request() dto.ProductRequest {
	return dto.ProductRequest{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Price:       f.Price,
		Stock:       f.Stock,
		Brand:       strings.TrimSpace(f.Brand),
		Category:    strings.TrimSpace(f.Category),
		ImagePath:   strings.TrimSpace(f.ImagePath),
	}
}

// ProductsScreen administración de productos: listado filtrable, modal y borrado.
type ProductsScreen struct {
	List   *listing.Controller[entity.Product]
	Modal  *workflow.Modal[ProductForm]
	Delete *workflow.DeleteFlow[entity.Product]
	Banner *workflow.Banner

	repo repository.ProductRepository
}

// NewProductsScreen filtros: name, brand, category, sort.
func NewProductsScreen(repo repository.ProductRepository, v *workflow.Validator, bannerDelay time.Duration, log *logger.Logger) *ProductsScreen {
	log = componentLogger(log, "admin-products")
	s := &ProductsScreen{Banner: workflow.NewBanner(bannerDelay), repo: repo}
	s.List = listing.New(repo.ListProducts,
		listing.WithEmptyMessage("No hay productos que coincidan con los filtros."),
		listing.WithLogger(log))

	s.Modal = workflow.NewModal(workflow.ModalConfig[ProductForm]{
		Validate: func(f ProductForm) workflow.FieldErrors { return v.Struct(f, productMessages) },
		Submit: func(ctx context.Context, mode workflow.Mode, f ProductForm) error {
			if mode == workflow.ModeEdit {
				_, err := repo.UpdateProduct(ctx, f.ID, f.request())
				return err
			}
			_, err := repo.CreateProduct(ctx, f.request())
			return err
		},
		OnSuccess: s.List.Reload,
		SuccessMessage: func(m workflow.Mode) string {
			if m == workflow.ModeEdit {
				return "¡Producto editado correctamente!"
			}
			return "¡Producto creado correctamente!"
		},
		FailureMessage: "Error al guardar el producto",
		Banner:         s.Banner,
		Log:            log,
	})

	s.Delete = workflow.NewDeleteFlow(workflow.DeleteConfig[entity.Product]{
		Resource:       "producto",
		Name:           func(p entity.Product) string { return p.Name },
		Delete:         func(ctx context.Context, p entity.Product) error { return repo.DeleteProduct(ctx, p.ID) },
		OnSuccess:      s.List.Reload,
		SuccessMessage: "¡Producto eliminado correctamente!",
		Banner:         s.Banner,
		Log:            log,
	})
	return s
}

func componentLogger(log *logger.Logger, name string) *logger.Logger {
	if log == nil {
		return logger.Nop()
	}
	return log.Component(name)
}

// Product busca id en la página cargada y, si no está, lo pide al backend.
func (s *ProductsScreen) Product(ctx context.Context, id int64) (entity.Product, error) {
	if p, ok := findLoaded(s.List, id, func(p entity.Product) int64 { return p.ID }); ok {
		return p, nil
	}
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return entity.Product{}, fmt.Errorf("admin: producto %d: %w", id, err)
	}
	return *p, nil
}

// findLoaded busca en los elementos de la página actual del listado.
func findLoaded[T any](ctl *listing.Controller[T], id int64, idOf func(T) int64) (T, bool) {
	for _, it := range ctl.View().Items {
		if idOf(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}
