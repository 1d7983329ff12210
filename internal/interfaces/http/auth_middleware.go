package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tevo-storefront/internal/application/guard"
	"github.com/jhoicas/tevo-storefront/pkg/logger"
)

// LocalUsername clave en c.Locals con el usuario de la sesión (vacío sin sesión).
const LocalUsername = "username"

// Guard aplica una regla de acceso antes del handler: si la regla no permite el paso
// responde 302 hacia la ruta indicada.
func Guard(rule guard.Guard, src guard.IdentitySource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d := rule(src)
		if !d.Allow {
			return c.Redirect(d.RedirectTo, fiber.StatusFound)
		}
		if id := src.Identity(); id != nil {
			c.Locals(LocalUsername, id.Username)
		}
		return c.Next()
	}
}

// GetUsername devuelve el usuario cargado por Guard.
func GetUsername(c *fiber.Ctx) string {
	v := c.Locals(LocalUsername)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// RequestLogger registra cada petición con su duración, status y el usuario que cargó Guard.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		if user := GetUsername(c); user != "" {
			ev = ev.Str("user", user)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("elapsed", time.Since(start)).
			Msg("petición")
		return err
	}
}
