package repository

import "context"

// Change notificación de cambio de una clave del almacenamiento local
// (equivalente al evento "storage" del navegador).
type Change struct {
	Key     string
	Value   []byte
	Deleted bool
}

// KeyValueStore almacenamiento local del cliente: token de sesión y carritos por usuario.
// Get devuelve found=false si la clave no existe.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Watch entrega los cambios de key hasta que ctx termina; el canal se cierra entonces.
	Watch(ctx context.Context, key string) (<-chan Change, error)
	Close() error
}
