package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jhoicas/tevo-storefront/internal/application/dto"
	"github.com/jhoicas/tevo-storefront/internal/domain"
)

// APIError respuesta no-2xx del backend que no es un fallo de sesión.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gateway: backend %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("gateway: backend %d", e.Status)
}

// UserMessage mensaje del backend apto para mostrar al usuario (puede ser vacío).
func (e *APIError) UserMessage() string { return e.Message }

// Unwrap permite errors.Is contra los errores de dominio según el status.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrConflict
	}
	return nil
}

// SessionError el backend rechazó el token (TOKEN_EXPIRED / TOKEN_INVALID).
type SessionError struct {
	Status int
	Code   string
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("gateway: sesión rechazada (%d %s)", e.Status, e.Code)
}

func (e *SessionError) Unwrap() error { return domain.ErrSessionExpired }

func newAPIError(status int, raw []byte) *APIError {
	e := &APIError{Status: status}
	var body dto.BackendError
	if err := json.Unmarshal(raw, &body); err != nil {
		// Algunos endpoints responden texto plano.
		e.Message = strings.TrimSpace(string(raw))
		if len(e.Message) > 200 || strings.HasPrefix(e.Message, "<") {
			e.Message = ""
		}
		return e
	}
	e.Code = body.Error
	e.Message = body.Message
	if e.Code == "" && isTokenFailure(body.Message) {
		e.Code = body.Message
	}
	if e.Message == "" && !isTokenFailure(body.Error) {
		e.Message = body.Error
	}
	return e
}

// Message devuelve el mensaje del backend contenido en err, o fallback si no lo hay.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
