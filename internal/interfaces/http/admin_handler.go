package http

import (
	"slices"
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tevo-storefront/internal/application/admin"
	"github.com/jhoicas/tevo-storefront/internal/application/dto"
	"github.com/jhoicas/tevo-storefront/internal/application/orders"
	"github.com/jhoicas/tevo-storefront/internal/application/present"
	"github.com/jhoicas/tevo-storefront/internal/application/workflow"
	"github.com/jhoicas/tevo-storefront/internal/domain/entity"
	"github.com/jhoicas/tevo-storefront/internal/domain/repository"
)

// MutationResponse resultado de un alta, edición o borrado desde el panel.
type MutationResponse struct {
	Banner *dto.BannerResponse `json:"banner,omitempty"`
	Prompt string              `json:"prompt,omitempty"`
}

// RoleEditorResponse estado del editor de roles de un usuario.
type RoleEditorResponse struct {
	User      entity.User `json:"user"`
	Fixed     []string    `json:"fixed"`
	Available []string    `json:"available"`
	Assigned  []string    `json:"assigned"`
}

// UserRolesRequest roles a asignar (sin los fijos).
type UserRolesRequest struct {
	Roles []string `json:"roles"`
}

// StatusRequest nuevo estado de un pedido.
type StatusRequest struct {
	Status string `json:"status"`
}

// AdminOrderView pedido en el listado de administración.
type AdminOrderView struct {
	entity.Order
	Badge      present.StatusBadge `json:"badge"`
	TotalLabel string              `json:"totalLabel"`
}

// AdminHandler panel de administración. Cada pantalla es un único estado compartido:
// las peticiones se serializan con mu.
type AdminHandler struct {
	products *admin.ProductsScreen
	roles    *admin.RolesScreen
	users    *admin.UsersScreen
	orders   *admin.OrdersScreen

	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	prices      *present.PriceFormatter

	mu sync.Mutex
}

// AdminScreens pantallas del panel.
type AdminScreens struct {
	Products *admin.ProductsScreen
	Roles    *admin.RolesScreen
	Users    *admin.UsersScreen
	Orders   *admin.OrdersScreen
}

// NewAdminHandler constructor.
func NewAdminHandler(s AdminScreens, products repository.ProductRepository, users repository.UserRepository, prices *present.PriceFormatter) *AdminHandler {
	return &AdminHandler{
		products:    s.Products,
		roles:       s.Roles,
		users:       s.Users,
		orders:      s.Orders,
		productRepo: products,
		userRepo:    users,
		prices:      prices,
	}
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// submitModal envía el modal abierto y responde el banner resultante.
func submitModal[F any](c *fiber.Ctx, m *workflow.Modal[F], banner *workflow.Banner, status int) error {
	if err := m.Submit(c.UserContext()); err != nil {
		return fail(c, err, m.View().Error)
	}
	return c.Status(status).JSON(MutationResponse{Banner: bannerOf(banner)})
}

// confirmDelete pide y confirma el borrado en la misma petición; el cliente ya mostró el diálogo.
func confirmDelete[T any](c *fiber.Ctx, d *workflow.DeleteFlow[T], target T, banner *workflow.Banner) error {
	conf, err := d.Request(target)
	if err != nil {
		return fail(c, err, "Este registro no se puede eliminar")
	}
	if err := d.Confirm(c.UserContext()); err != nil {
		return fail(c, err, d.Error())
	}
	return c.JSON(MutationResponse{Banner: bannerOf(banner), Prompt: conf.Prompt})
}

// ── Productos ─────────────────────────────────────────────────────────────────

// ListProducts godoc
// @Summary Listado de productos (admin)
// @Tags admin
// @Produce json
// @Param name query string false "Nombre"
// @Param brand query string false "Marca"
// @Param category query string false "Categoría"
// @Param sort query string false "Orden"
// @Param page query int false "Página (0-based)"
// @Success 200 {object} ListResponse[entity.Product]
// @Router /admin/products [get]
func (h *AdminHandler) ListProducts(c *fiber.Ctx) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return loadList(c, h.products.List, queryFilters(c, "name", "brand", "category", "sort"), h.products.Banner)
}

// CreateProduct godoc
// @Summary Crear producto
// @Tags admin
// @Accept json
// @Produce json
// @Param body body admin.ProductForm true "Producto"
// @Success 201 {object} MutationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/products [post]
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	var form admin.ProductForm
	if err := c.BodyParser(&form); err != nil {
		return badBody(c)
	}
	form.ID = 0
	h.mu.Lock()
	defer h.mu.Unlock()
	h.products.Modal.OpenCreate(form)
	return submitModal(c, h.products.Modal, h.products.Banner, fiber.StatusCreated)
}

// UpdateProduct godoc
// @Summary Editar producto
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "ID"
// @Param body body admin.ProductForm true "Producto"
// @Success 200 {object} MutationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/products/{id} [put]
func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "")
	}
	var form admin.ProductForm
	if err := c.BodyParser(&form); err != nil {
		return badBody(c)
	}
	form.ID = id
	h.mu.Lock()
	defer h.mu.Unlock()
	h.products.Modal.OpenEdit(form)
	return submitModal(c, h.products.Modal, h.products.Banner, fiber.StatusOK)
}

// DeleteProduct godoc
// @Summary Eliminar producto
// @Tags admin
// @Produce json
// @Param id path int true "ID"
// @Success 200 {object} MutationResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/products/{id} [delete]
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	p, err := h.products.Product(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "Producto no encontrado")
	}
	return confirmDelete(c, h.products.Delete, p, h.products.Banner)
}

// ── Roles ─────────────────────────────────────────────────────────────────────

// ListRoles godoc
// @Summary Listado de roles
// @Tags admin
// @Produce json
// @Param name query string false "Nombre"
// @Param page query int false "Página (0-based)"
// @Success 200 {object} ListResponse[admin.RoleRow]
// @Router /admin/roles [get]
func (h *AdminHandler) ListRoles(c *fiber.Ctx) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return loadMapped(c, h.roles.List, queryFilters(c, "name"), h.roles.Banner, admin.RoleRowFrom)
}

// CreateRole godoc
// @Summary Crear rol
// @Tags admin
// @Accept json
// @Produce json
// @Param body body admin.RoleForm true "Rol"
// @Success 201 {object} MutationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/roles [post]
func (h *AdminHandler) CreateRole(c *fiber.Ctx) error {
	var form admin.RoleForm
	if err := c.BodyParser(&form); err != nil {
		return badBody(c)
	}
	form.ID = 0
	h.mu.Lock()
	defer h.mu.Unlock()
	h.roles.Modal.OpenCreate(form)
	return submitModal(c, h.roles.Modal, h.roles.Banner, fiber.StatusCreated)
}

// UpdateRole godoc
// @Summary Renombrar rol
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "ID"
// @Param body body admin.RoleForm true "Rol"
// @Success 200 {object} MutationResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /admin/roles/{id} [put]
func (h *AdminHandler) UpdateRole(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "")
	}
	var form admin.RoleForm
	if err := c.BodyParser(&form); err != nil {
		return badBody(c)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	r, err := h.roles.Role(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "Rol no encontrado")
	}
	if err := h.roles.EditRole(r); err != nil {
		return fail(c, err, "Los roles del sistema no se pueden editar")
	}
	h.roles.Modal.Set(admin.RoleForm{ID: id, Name: form.Name})
	return submitModal(c, h.roles.Modal, h.roles.Banner, fiber.StatusOK)
}

// DeleteRole godoc
// @Summary Eliminar rol
// @Tags admin
// @Produce json
// @Param id path int true "ID"
// @Success 200 {object} MutationResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /admin/roles/{id} [delete]
func (h *AdminHandler) DeleteRole(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	r, err := h.roles.Role(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "Rol no encontrado")
	}
	return confirmDelete(c, h.roles.Delete, r, h.roles.Banner)
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

// ListUsers godoc
// @Summary Listado de usuarios
// @Tags admin
// @Produce json
// @Param username query string false "Usuario"
// @Param email query string false "Email"
// @Param nif query string false "DNI/NIF"
// @Param role query string false "Rol"
// @Param page query int false "Página (0-based)"
// @Success 200 {object} ListResponse[entity.User]
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return loadList(c, h.users.List, queryFilters(c, "username", "email", "nif", "role"), h.users.Banner)
}

// DeleteUser godoc
// @Summary Eliminar usuario
// @Tags admin
// @Produce json
// @Param id path int true "ID"
// @Success 200 {object} MutationResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	u, err := h.users.User(id)
	if err != nil {
		return fail(c, err, "Usuario no encontrado")
	}
	return confirmDelete(c, h.users.Delete, u, h.users.Banner)
}

// UserRoles godoc
// @Summary Editor de roles de un usuario
// @Tags admin
// @Produce json
// @Param id path int true "ID"
// @Success 200 {object} RoleEditorResponse
// @Router /admin/users/{id}/roles [get]
func (h *AdminHandler) UserRoles(c *fiber.Ctx) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, err := h.roleEditor(c)
	if err != nil {
		return fail(c, err, "Error al cargar los roles")
	}
	return c.JSON(editorResponse(e))
}

// SetUserRoles godoc
// @Summary Guardar roles de un usuario
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "ID"
// @Param body body UserRolesRequest true "Roles asignados"
// @Success 200 {object} MutationResponse
// @Router /admin/users/{id}/roles [put]
func (h *AdminHandler) SetUserRoles(c *fiber.Ctx) error {
	var req UserRolesRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	e, err := h.roleEditor(c)
	if err != nil {
		return fail(c, err, "Error al cargar los roles")
	}
	// Se parte de todo disponible y se pasan a la derecha los pedidos que existan.
	e.Transfer.MoveAllLeft()
	for _, r := range req.Roles {
		if slices.Contains(e.Transfer.Left(), r) {
			e.Transfer.Toggle(r)
		}
	}
	e.Transfer.MoveCheckedRight()
	if err := h.users.SaveRoles(c.UserContext(), e); err != nil {
		return fail(c, err, "Error al actualizar los roles del usuario")
	}
	return c.JSON(MutationResponse{Banner: bannerOf(h.users.Banner)})
}

func (h *AdminHandler) roleEditor(c *fiber.Ctx) (*admin.RoleEditor, error) {
	id, err := paramID(c)
	if err != nil {
		return nil, err
	}
	u, err := h.users.User(id)
	if err != nil {
		return nil, err
	}
	return h.users.OpenRoleEditor(c.UserContext(), u)
}

func editorResponse(e *admin.RoleEditor) RoleEditorResponse {
	out := RoleEditorResponse{
		User:      e.User,
		Fixed:     e.Fixed,
		Available: e.Transfer.Left(),
		Assigned:  e.Transfer.Right(),
	}
	if out.Fixed == nil {
		out.Fixed = []string{}
	}
	if out.Available == nil {
		out.Available = []string{}
	}
	if out.Assigned == nil {
		out.Assigned = []string{}
	}
	return out
}

// ── Pedidos ───────────────────────────────────────────────────────────────────

// ListOrders godoc
// @Summary Listado de pedidos (admin)
// @Tags admin
// @Produce json
// @Param username query string false "Usuario"
// @Param status query string false "Estado"
// @Param from query string false "Desde (YYYY-MM-DD)"
// @Param to query string false "Hasta (YYYY-MM-DD)"
// @Param page query int false "Página (0-based)"
// @Success 200 {object} ListResponse[AdminOrderView]
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/orders [get]
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	filters, err := orders.DateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return fail(c, err, "Fecha no válida")
	}
	filters["username"] = c.Query("username")
	filters["status"] = c.Query("status")
	h.mu.Lock()
	defer h.mu.Unlock()
	return loadMapped(c, h.orders.List, filters, h.orders.Banner, func(o entity.Order) AdminOrderView {
		return AdminOrderView{Order: o, Badge: present.Badge(o.Status), TotalLabel: h.prices.Format(o.Total)}
	})
}

// UpdateOrderStatus godoc
// @Summary Cambiar estado de un pedido
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "ID"
// @Param body body StatusRequest true "Estado"
// @Success 200 {object} MutationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/orders/{id}/status [put]
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "")
	}
	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	o, err := h.orders.Order(id)
	if err != nil {
		o = entity.Order{ID: id}
	}
	h.orders.EditStatus(o)
	h.orders.Modal.Set(admin.StatusForm{OrderID: id, Status: req.Status})
	return submitModal(c, h.orders.Modal, h.orders.Banner, fiber.StatusOK)
}

// ── Estadísticas ──────────────────────────────────────────────────────────────

// Stats godoc
// @Summary Top ventas y top compradores
// @Tags admin
// @Produce json
// @Success 200 {object} admin.Stats
// @Failure 502 {object} dto.ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	st, err := admin.LoadStats(c.UserContext(), h.productRepo, h.userRepo)
	if err != nil {
		return fail(c, err, "Error al cargar las estadísticas")
	}
	return c.JSON(st)
}
