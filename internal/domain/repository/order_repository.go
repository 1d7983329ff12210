package repository

import (
	"context"

	"github.com/jhoicas/tevo-storefront/internal/application/dto"
	"github.com/jhoicas/tevo-storefront/internal/domain/entity"
)

// OrderRepository define el puerto de pedidos (cliente y administración).
type OrderRepository interface {
	PlaceOrder(ctx context.Context, in dto.OrderRequest) (*entity.Order, error)
	MyOrders(ctx context.Context, filters map[string]string, page int) (entity.Page[entity.Order], error)
	AllOrders(ctx context.Context, filters map[string]string, page int) (entity.Page[entity.Order], error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) (*entity.Order, error)
}
