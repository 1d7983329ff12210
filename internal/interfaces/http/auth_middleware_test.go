package http_test

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tevo-storefront/internal/application/guard"
	"github.com/jhoicas/tevo-storefront/internal/domain/entity"
	apphttp "github.com/jhoicas/tevo-storefront/internal/interfaces/http"
	"github.com/jhoicas/tevo-storefront/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixedIdentity struct{ id *entity.Identity }

func (f fixedIdentity) Identity() *entity.Identity { return f.id }

var (
	anonymous = fixedIdentity{}
	cliente   = fixedIdentity{&entity.Identity{Subject: "alice", Username: "alice", Roles: []string{entity.RoleCliente}}}
	adminUser = fixedIdentity{&entity.Identity{Subject: "admin", Username: "admin", Roles: []string{entity.RoleCliente, entity.RoleAdmin}}}
)

// buildGuardedApp aplica las reglas indicadas a una ruta que devuelve el usuario cargado.
func buildGuardedApp(src guard.IdentitySource, rules ...guard.Guard) *fiber.App {
	app := fiber.New()
	handlers := make([]fiber.Handler, 0, len(rules)+1)
	for _, r := range rules {
		handlers = append(handlers, apphttp.Guard(r, src))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user": apphttp.GetUsername(c)})
	})
	app.Get("/protected", handlers...)
	return app
}

func get(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode, resp.Header.Get(fiber.HeaderLocation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestGuard_SinSesionRedirigeAlLogin(t *testing.T) {
	status, loc := get(t, buildGuardedApp(anonymous, guard.RequireAuth), "/protected")
	assert.Equal(t, fiber.StatusFound, status)
	assert.Equal(t, guard.LoginPath, loc)
}

func TestGuard_ConSesionPasaYCargaUsuario(t *testing.T) {
	app := buildGuardedApp(cliente, guard.RequireAuth)
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/protected", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp.Body, &body)
	assert.Equal(t, "alice", body["user"])
}

func TestGuard_AdminSinRolVuelveAPortada(t *testing.T) {
	status, loc := get(t, buildGuardedApp(cliente, guard.RequireAuth, guard.RequireAdmin), "/protected")
	assert.Equal(t, fiber.StatusFound, status)
	assert.Equal(t, guard.HomePath, loc)
}

func TestGuard_AdminSinSesionVaAlLogin(t *testing.T) {
	// RequireAuth va primero: un invitado no debe acabar en la portada.
	status, loc := get(t, buildGuardedApp(anonymous, guard.RequireAuth, guard.RequireAdmin), "/protected")
	assert.Equal(t, fiber.StatusFound, status)
	assert.Equal(t, guard.LoginPath, loc)
}

func TestGuard_AdminConRolPasa(t *testing.T) {
	status, _ := get(t, buildGuardedApp(adminUser, guard.RequireAuth, guard.RequireAdmin), "/protected")
	assert.Equal(t, fiber.StatusOK, status)
}

func TestGuard_SoloInvitados(t *testing.T) {
	status, loc := get(t, buildGuardedApp(cliente, guard.RedirectIfAuthenticated), "/protected")
	assert.Equal(t, fiber.StatusFound, status)
	assert.Equal(t, guard.HomePath, loc)

	status, _ = get(t, buildGuardedApp(anonymous, guard.RedirectIfAuthenticated), "/protected")
	assert.Equal(t, fiber.StatusOK, status)
}

func TestRequestLogger_IncluyeUsuarioDeLaSesion(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})))
	app.Get("/protected", apphttp.Guard(guard.RequireAuth, cliente), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/public", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	status, _ := get(t, app, "/protected")
	require.Equal(t, fiber.StatusNoContent, status)
	assert.Contains(t, buf.String(), `"user":"alice"`)
	assert.Contains(t, buf.String(), `"path":"/protected"`)

	buf.Reset()
	status, _ = get(t, app, "/public")
	require.Equal(t, fiber.StatusNoContent, status)
	assert.NotContains(t, buf.String(), `"user"`)
}
