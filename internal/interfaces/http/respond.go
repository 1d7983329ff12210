package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tevo-storefront/internal/application/dto"
	"github.com/jhoicas/tevo-storefront/internal/application/guard"
	"github.com/jhoicas/tevo-storefront/internal/application/listing"
	"github.com/jhoicas/tevo-storefront/internal/application/present"
	"github.com/jhoicas/tevo-storefront/internal/application/workflow"
	"github.com/jhoicas/tevo-storefront/internal/domain"
	"github.com/jhoicas/tevo-storefront/pkg/logger"
)

// Mensajes genéricos de la app shell.
const (
	msgInvalidBody  = "cuerpo inválido"
	msgInvalidID    = "id inválido"
	msgValidation   = "Revisa los campos marcados"
	msgBackendError = "Error de conexión con el servidor"
)

// statusOf traduce un error de aplicación a status HTTP y código.
func statusOf(err error) (int, string) {
	var fields workflow.FieldErrors
	var fe *fiber.Error
	switch {
	case errors.As(err, &fields):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.As(err, &fe):
		return fe.Code, "HTTP"
	case errors.Is(err, domain.ErrSessionExpired):
		return fiber.StatusUnauthorized, "SESSION_EXPIRED"
	case errors.Is(err, domain.ErrNoSession):
		return fiber.StatusUnauthorized, "UNAUTHENTICATED"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrProtectedRecord):
		return fiber.StatusConflict, "PROTECTED"
	case errors.Is(err, domain.ErrBusy), errors.Is(err, listing.ErrSuperseded):
		return fiber.StatusConflict, "BUSY"
	case errors.Is(err, domain.ErrEmptyCart):
		return fiber.StatusBadRequest, "EMPTY_CART"
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidSession):
		return fiber.StatusBadRequest, "INVALID_INPUT"
	}
	return fiber.StatusBadGateway, "BACKEND"
}

// fail responde err como dto.ErrorResponse. fallback es el texto si err no trae uno para el usuario.
func fail(c *fiber.Ctx, err error, fallback string) error {
	status, code := statusOf(err)
	body := dto.ErrorResponse{Code: code, Message: workflow.UserMessage(err, fallback)}
	var fields workflow.FieldErrors
	if errors.As(err, &fields) {
		body.Message = msgValidation
		body.Fields = fields
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		body.Message = fe.Message
	}
	if body.Message == "" {
		body.Message = msgBackendError
	}
	// La sesión ya se cerró: el cliente vuelve al login como con los guards.
	if errors.Is(err, domain.ErrSessionExpired) {
		c.Set(fiber.HeaderLocation, guard.LoginPath)
	}
	return c.Status(status).JSON(body)
}

// ErrorHandler último recurso para errores no respondidos por los handlers.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, _ := statusOf(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
		}
		return fail(c, err, msgBackendError)
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: msgInvalidBody})
}

func paramID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, msgInvalidID)
	}
	return int64(id), nil
}

// ── Vistas ────────────────────────────────────────────────────────────────────

// ListResponse página de un listado lista para dibujar.
type ListResponse[T any] struct {
	Items        []T                 `json:"items"`
	Page         int                 `json:"page"`
	TotalPages   int                 `json:"totalPages"`
	State        string              `json:"state"`
	Filters      map[string]string   `json:"filters"`
	EmptyMessage string              `json:"emptyMessage,omitempty"`
	Pager        present.PagerView   `json:"pager"`
	Banner       *dto.BannerResponse `json:"banner,omitempty"`
}

func bannerOf(b *workflow.Banner) *dto.BannerResponse {
	if b == nil {
		return nil
	}
	v := b.Current()
	if v.Message == "" {
		return nil
	}
	return &dto.BannerResponse{Kind: v.Kind, Message: v.Message}
}

// queryFilters lee de la query los filtros indicados; los ausentes quedan vacíos.
func queryFilters(c *fiber.Ctx, names ...string) map[string]string {
	out := make(map[string]string, len(names))
	for _, n := range names {
		out[n] = c.Query(n)
	}
	return out
}

// loadList aplica filtros y página de la query y responde la vista. Una carga fallida
// se responde como listado vacío con su mensaje, no como error.
func loadList[T any](c *fiber.Ctx, ctl *listing.Controller[T], filters map[string]string, banner *workflow.Banner) error {
	return loadMapped(c, ctl, filters, banner, func(it T) T { return it })
}

// loadMapped como loadList pero transformando cada elemento.
func loadMapped[T, V any](c *fiber.Ctx, ctl *listing.Controller[T], filters map[string]string, banner *workflow.Banner, fn func(T) V) error {
	if err := ctl.Apply(c.UserContext(), filters, c.QueryInt("page", 0)); err != nil && !isListFailure(err) {
		return fail(c, err, "")
	}
	resp := mapList(ctl.View(), fn)
	resp.Banner = bannerOf(banner)
	return c.JSON(resp)
}

func errorBody(code string, err error) dto.ErrorResponse {
	return dto.ErrorResponse{Code: code, Message: workflow.UserMessage(err, msgBackendError)}
}

// isListFailure errores de carga que el listado ya refleja como estado vacío.
func isListFailure(err error) bool {
	status, _ := statusOf(err)
	return status != fiber.StatusUnauthorized && !errors.Is(err, listing.ErrSuperseded)
}

// mapList convierte los elementos de la vista con fn.
func mapList[T, V any](v listing.View[T], fn func(T) V) ListResponse[V] {
	items := make([]V, len(v.Items))
	for i, it := range v.Items {
		items[i] = fn(it)
	}
	return ListResponse[V]{
		Items:        items,
		Page:         v.Page,
		TotalPages:   v.TotalPages,
		State:        v.State.String(),
		Filters:      v.Filters,
		EmptyMessage: v.EmptyMessage,
		Pager:        present.Pager(v.Pager),
	}
}
