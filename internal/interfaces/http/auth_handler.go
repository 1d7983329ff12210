package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tevo-storefront/internal/application/account"
	"github.com/jhoicas/tevo-storefront/internal/application/guard"
	"github.com/jhoicas/tevo-storefront/internal/application/session"
)

// SessionResponse estado de la sesión para la cabecera de la tienda.
type SessionResponse struct {
	Authenticated bool     `json:"authenticated"`
	Username      string   `json:"username,omitempty"`
	Roles         []string `json:"roles,omitempty"`
	Admin         bool     `json:"admin"`
	Redirect      string   `json:"redirect,omitempty"`
	Message       string   `json:"message,omitempty"`
}

// AuthHandler maneja login, registro y cierre de sesión.
type AuthHandler struct {
	acc  *account.Service
	sess *session.Store
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(acc *account.Service, sess *session.Store) *AuthHandler {
	return &AuthHandler{acc: acc, sess: sess}
}

func (h *AuthHandler) sessionResponse() SessionResponse {
	id := h.sess.Identity()
	if id == nil {
		return SessionResponse{}
	}
	return SessionResponse{
		Authenticated: true,
		Username:      id.Username,
		Roles:         id.Roles,
		Admin:         id.IsAdmin(),
	}
}

// Session godoc
// @Summary      Sesión actual
// @Tags         auth
// @Produce      json
// @Success      200  {object}  SessionResponse
// @Router       /session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	return c.JSON(h.sessionResponse())
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  account.LoginForm  true  "username, password"
// @Success      200   {object}  SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in account.LoginForm
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.acc.Login(c.UserContext(), in); err != nil {
		if _, ok := err.(*account.Failure); ok {
			return c.Status(fiber.StatusUnauthorized).JSON(errorBody("UNAUTHORIZED", err))
		}
		return fail(c, err, account.MsgLoginFailed)
	}
	resp := h.sessionResponse()
	resp.Redirect = guard.HomePath
	return c.JSON(resp)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  SessionResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.sess.Logout(c.UserContext()); err != nil {
		return fail(c, err, "No se pudo cerrar la sesión")
	}
	return c.JSON(SessionResponse{Redirect: guard.HomePath})
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  account.RegisterForm  true  "Datos del usuario"
// @Success      201   {object}  SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in account.RegisterForm
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.acc.Register(c.UserContext(), in); err != nil {
		return fail(c, err, account.MsgRegisterPrefix)
	}
	return c.Status(fiber.StatusCreated).JSON(SessionResponse{
		Redirect: session.LoginPath,
		Message:  account.MsgRegistered,
	})
}
