package repository

import (
	"context"

	"github.com/jhoicas/tevo-storefront/internal/application/dto"
	"github.com/jhoicas/tevo-storefront/internal/domain/entity"
)

// ProductRepository define el puerto hacia el catálogo remoto (lo implementa el Gateway).
type ProductRepository interface {
	RandomProducts(ctx context.Context) ([]entity.Product, error)
	ListProducts(ctx context.Context, filters map[string]string, page int) (entity.Page[entity.Product], error)
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)
	CreateProduct(ctx context.Context, in dto.ProductRequest) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id int64, in dto.ProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	TopSellers(ctx context.Context) ([]entity.TopSeller, error)
}
