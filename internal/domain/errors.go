package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrSessionExpired  = errors.New("sesión expirada o token inválido")
	ErrInvalidSession  = errors.New("sesión almacenada no válida")
	ErrNoSession       = errors.New("no hay usuario autenticado")
	ErrProtectedRecord = errors.New("registro protegido")
	ErrBusy            = errors.New("operación en curso")
	ErrEmptyCart       = errors.New("el carrito está vacío")
)
