package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jhoicas/tevo-storefront/internal/application/dto"
	"github.com/jhoicas/tevo-storefront/internal/domain/entity"
	"github.com/jhoicas/tevo-storefront/internal/domain/repository"
)

var (
	_ repository.AuthRepository    = (*Client)(nil)
	_ repository.ProductRepository = (*Client)(nil)
	_ repository.OrderRepository   = (*Client)(nil)
	_ repository.UserRepository    = (*Client)(nil)
	_ repository.RoleRepository    = (*Client)(nil)
)

// pageParams copia los filtros y añade el índice de página.
func pageParams(filters map[string]string, page int) map[string]string {
	params := make(map[string]string, len(filters)+1)
	for k, v := range filters {
		params[k] = v
	}
	if page < 0 {
		page = 0
	}
	params["page"] = strconv.Itoa(page)
	return params
}

func getPage[T any](ctx context.Context, c *Client, path string, filters map[string]string, page int) (entity.Page[T], error) {
	var out entity.Page[T]
	if err := c.Do(ctx, http.MethodGet, path, nil, pageParams(filters, page), &out); err != nil {
		return entity.Page[T]{}, err
	}
	if out.Content == nil {
		out.Content = []T{}
	}
	return out, nil
}

// ── Auth ──────────────────────────────────────────────────────────────────────

func (c *Client) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/login", in, nil, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, fmt.Errorf("gateway: login sin token en la respuesta")
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, in dto.RegisterRequest) error {
	return c.Do(ctx, http.MethodPost, "/users/register", in, nil, nil)
}

// ── Productos ─────────────────────────────────────────────────────────────────

func (c *Client) RandomProducts(ctx context.Context) ([]entity.Product, error) {
	var out []entity.Product
	if err := c.Do(ctx, http.MethodGet, "/products/random", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListProducts filtros admitidos: name, brand, category, sort.
func (c *Client) ListProducts(ctx context.Context, filters map[string]string, page int) (entity.Page[entity.Product], error) {
	return getPage[entity.Product](ctx, c, "/products", filters, page)
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	var out entity.Product
	if err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, in dto.ProductRequest) (*entity.Product, error) {
	var out entity.Product
	if err := c.Do(ctx, http.MethodPost, "/products", in, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, in dto.ProductRequest) (*entity.Product, error) {
	var out entity.Product
	if err := c.Do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), in, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil, nil)
}

func (c *Client) TopSellers(ctx context.Context) ([]entity.TopSeller, error) {
	var out []entity.TopSeller
	if err := c.Do(ctx, http.MethodGet, "/products/top-sellers", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ── Pedidos ───────────────────────────────────────────────────────────────────

func (c *Client) PlaceOrder(ctx context.Context, in dto.OrderRequest) (*entity.Order, error) {
	var out entity.Order
	if err := c.Do(ctx, http.MethodPost, "/orders", in, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyOrders filtros admitidos: startDate, endDate.
func (c *Client) MyOrders(ctx context.Context, filters map[string]string, page int) (entity.Page[entity.Order], error) {
	return getPage[entity.Order](ctx, c, "/orders", filters, page)
}

// AllOrders filtros admitidos: username, status, startDate, endDate.
func (c *Client) AllOrders(ctx context.Context, filters map[string]string, page int) (entity.Page[entity.Order], error) {
	return getPage[entity.Order](ctx, c, "/orders/all", filters, page)
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status string) (*entity.Order, error) {
	var out entity.Order
	body := dto.OrderStatusRequest{Status: status}
	if err := c.Do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d", id), body, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

// ListUsers filtros admitidos: username, email, nif, role.
func (c *Client) ListUsers(ctx context.Context, filters map[string]string, page int) (entity.Page[entity.User], error) {
	return getPage[entity.User](ctx, c, "/users", filters, page)
}

// UpdateUserRoles envía la lista completa de roles como array JSON.
func (c *Client) UpdateUserRoles(ctx context.Context, id int64, roles []string) error {
	if roles == nil {
		roles = []string{}
	}
	return c.Do(ctx, http.MethodPut, fmt.Sprintf("/users/roles/%d", id), roles, nil, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil, nil)
}

func (c *Client) TopUsers(ctx context.Context) ([]entity.TopUser, error) {
	var out []entity.TopUser
	if err := c.Do(ctx, http.MethodGet, "/users/top-users", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ── Roles ─────────────────────────────────────────────────────────────────────

func (c *Client) AllRoles(ctx context.Context) ([]entity.Role, error) {
	var out []entity.Role
	if err := c.Do(ctx, http.MethodGet, "/roles", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRoles filtros admitidos: name.
func (c *Client) ListRoles(ctx context.Context, filters map[string]string, page int) (entity.Page[entity.Role], error) {
	return getPage[entity.Role](ctx, c, "/roles/paged", filters, page)
}

func (c *Client) CreateRole(ctx context.Context, in dto.RoleRequest) (*entity.Role, error) {
	var out entity.Role
	if err := c.Do(ctx, http.MethodPost, "/roles", in, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateRole(ctx context.Context, id int64, in dto.RoleRequest) (*entity.Role, error) {
	var out entity.Role
	if err := c.Do(ctx, http.MethodPut, fmt.Sprintf("/roles/%d", id), in, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteRole(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/roles/%d", id), nil, nil, nil)
}
