package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/tevo-storefront/internal/application/guard"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Session  guard.IdentitySource
	Auth     *AuthHandler
	Products *ProductHandler
	Cart     *CartHandler
	Orders   *OrderHandler
	Admin    *AdminHandler
}

// Router registra las rutas de la app shell.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	requireAuth := Guard(guard.RequireAuth, deps.Session)
	requireAdmin := Guard(guard.RequireAdmin, deps.Session)
	guestOnly := Guard(guard.RedirectIfAuthenticated, deps.Session)

	// Público
	app.Get("/", deps.Products.Home)
	app.Get("/market", deps.Products.Market)
	app.Get("/products/:id", deps.Products.Detail)
	app.Get("/session", deps.Auth.Session)
	app.Post("/logout", deps.Auth.Logout)

	// Solo invitados
	app.Post("/login", guestOnly, deps.Auth.Login)
	app.Post("/register", guestOnly, deps.Auth.Register)

	// Carrito (requiere sesión)
	cartGroup := app.Group("/cart", requireAuth)
	cartGroup.Get("/", deps.Cart.Get)
	cartGroup.Get("/count", deps.Cart.Count)
	cartGroup.Post("/", deps.Cart.Add)
	cartGroup.Delete("/", deps.Cart.Clear)
	cartGroup.Post("/checkout", deps.Cart.Checkout)
	cartGroup.Put("/:id", deps.Cart.SetQuantity)
	cartGroup.Delete("/:id", deps.Cart.Remove)

	// Pedidos del usuario
	ordersGroup := app.Group("/orders", requireAuth)
	ordersGroup.Get("/", deps.Orders.List)
	ordersGroup.Get("/:id/receipt", deps.Orders.Receipt)

	// Administración (requiere ROLE_ADMIN)
	adm := app.Group("/admin", requireAuth, requireAdmin)
	adm.Get("/products", deps.Admin.ListProducts)
	adm.Post("/products", deps.Admin.CreateProduct)
	adm.Put("/products/:id", deps.Admin.UpdateProduct)
	adm.Delete("/products/:id", deps.Admin.DeleteProduct)

	adm.Get("/roles", deps.Admin.ListRoles)
	adm.Post("/roles", deps.Admin.CreateRole)
	adm.Put("/roles/:id", deps.Admin.UpdateRole)
	adm.Delete("/roles/:id", deps.Admin.DeleteRole)

	adm.Get("/users", deps.Admin.ListUsers)
	adm.Delete("/users/:id", deps.Admin.DeleteUser)
	adm.Get("/users/:id/roles", deps.Admin.UserRoles)
	adm.Put("/users/:id/roles", deps.Admin.SetUserRoles)

	adm.Get("/orders", deps.Admin.ListOrders)
	adm.Put("/orders/:id/status", deps.Admin.UpdateOrderStatus)

	adm.Get("/stats", deps.Admin.Stats)
}
