package admin_test

import (
	"context"
	"sync"

	"github.com/jhoicas/tevo-storefront/internal/application/dto"
	"github.com/jhoicas/tevo-storefront/internal/domain/entity"
)

// backend falso en memoria que registra cada llamada.
type fakeBackend struct {
	mu      sync.Mutex
	calls   []string
	pages   []int
	filters []map[string]string
	fail    error

	products []entity.Product
	roles    []entity.Role
	users    []entity.User
	orders   []entity.Order

	savedRoles []string
	created    []dto.ProductRequest
}

func (f *fakeBackend) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeBackend) recordPage(name string, filters map[string]string, page int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	f.pages = append(f.pages, page)
	f.filters = append(f.filters, filters)
}

func (f *fakeBackend) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

// ── Productos ──

func (f *fakeBackend) RandomProducts(context.Context) ([]entity.Product, error) { return f.products, nil }
func (f *fakeBackend) ListProducts(_ context.Context, filters map[string]string, page int) (entity.Page[entity.Product], error) {
	f.recordPage("ListProducts", filters, page)
	return entity.Page[entity.Product]{Content: f.products, TotalPages: 1}, f.fail
}
func (f *fakeBackend) GetProduct(_ context.Context, id int64) (*entity.Product, error) {
	return &entity.Product{ID: id}, nil
}
func (f *fakeBackend) CreateProduct(_ context.Context, in dto.ProductRequest) (*entity.Product, error) {
	f.record("CreateProduct")
	if f.fail != nil {
		return nil, f.fail
	}
	f.created = append(f.created, in)
	return &entity.Product{ID: 1, Name: in.Name}, nil
}
func (f *fakeBackend) UpdateProduct(_ context.Context, id int64, in dto.ProductRequest) (*entity.Product, error) {
	f.record("UpdateProduct")
	return &entity.Product{ID: id, Name: in.Name}, f.fail
}
func (f *fakeBackend) DeleteProduct(context.Context, int64) error {
	f.record("DeleteProduct")
	return f.fail
}
func (f *fakeBackend) TopSellers(context.Context) ([]entity.TopSeller, error) {
	return []entity.TopSeller{{ProductID: 1, Name: "Taza", TotalSold: 40}}, f.fail
}

// ── Roles ──

func (f *fakeBackend) AllRoles(context.Context) ([]entity.Role, error) { return f.roles, f.fail }
func (f *fakeBackend) ListRoles(_ context.Context, filters map[string]string, page int) (entity.Page[entity.Role], error) {
	f.recordPage("ListRoles", filters, page)
	return entity.Page[entity.Role]{Content: f.roles, TotalPages: 1}, nil
}
func (f *fakeBackend) CreateRole(_ context.Context, in dto.RoleRequest) (*entity.Role, error) {
	f.record("CreateRole")
	return &entity.Role{ID: 10, Name: in.Name}, f.fail
}
func (f *fakeBackend) UpdateRole(_ context.Context, id int64, in dto.RoleRequest) (*entity.Role, error) {
	f.record("UpdateRole")
	return &entity.Role{ID: id, Name: in.Name}, f.fail
}
func (f *fakeBackend) DeleteRole(context.Context, int64) error {
	f.record("DeleteRole")
	return f.fail
}

// ── Usuarios ──

func (f *fakeBackend) ListUsers(_ context.Context, filters map[string]string, page int) (entity.Page[entity.User], error) {
	f.recordPage("ListUsers", filters, page)
	return entity.Page[entity.User]{Content: f.users, TotalPages: 5}, nil
}
func (f *fakeBackend) UpdateUserRoles(_ context.Context, _ int64, roles []string) error {
	f.record("UpdateUserRoles")
	f.savedRoles = roles
	return f.fail
}
func (f *fakeBackend) DeleteUser(context.Context, int64) error {
	f.record("DeleteUser")
	return f.fail
}
func (f *fakeBackend) TopUsers(context.Context) ([]entity.TopUser, error) {
	return []entity.TopUser{{Username: "alice", OrderCount: 3}}, f.fail
}

// ── Pedidos ──

func (f *fakeBackend) PlaceOrder(context.Context, dto.OrderRequest) (*entity.Order, error) {
	return &entity.Order{}, nil
}
func (f *fakeBackend) MyOrders(_ context.Context, filters map[string]string, page int) (entity.Page[entity.Order], error) {
	f.recordPage("MyOrders", filters, page)
	return entity.Page[entity.Order]{Content: f.orders, TotalPages: 1}, nil
}
func (f *fakeBackend) AllOrders(_ context.Context, filters map[string]string, page int) (entity.Page[entity.Order], error) {
	f.recordPage("AllOrders", filters, page)
	return entity.Page[entity.Order]{Content: f.orders, TotalPages: 1}, nil
}
func (f *fakeBackend) UpdateOrderStatus(_ context.Context, id int64, status string) (*entity.Order, error) {
	f.record("UpdateOrderStatus")
	return &entity.Order{ID: id, Status: status}, f.fail
}
