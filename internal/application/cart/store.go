package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tevo-storefront/internal/domain"
	"github.com/jhoicas/tevo-storefront/internal/domain/entity"
	"github.com/jhoicas/tevo-storefront/internal/domain/repository"
	"github.com/jhoicas/tevo-storefront/pkg/logger"
)

// IdentitySource identidad del usuario actual.
type IdentitySource interface {
	Identity() *entity.Identity
}

// Store carrito local del usuario autenticado. Cada operación lee y escribe el almacenamiento
// al momento, de modo que el carrito de otro usuario nunca queda en memoria.
type Store struct {
	kv    repository.KeyValueStore
	ident IdentitySource
	log   *logger.Logger
	mu    sync.Mutex
}

// NewStore construye el carrito.
func NewStore(kv repository.KeyValueStore, ident IdentitySource, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{kv: kv, ident: ident, log: log.Component("cart")}
}

func (s *Store) key() (string, error) {
	id := s.ident.Identity()
	if id == nil || id.Subject == "" {
		return "", domain.ErrNoSession
	}
	return Key(id.Subject), nil
}

func (s *Store) read(ctx context.Context, key string) ([]entity.CartLine, error) {
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("cart: leer: %w", err)
	}
	if !found {
		return nil, nil
	}
	lines, err := decode(raw)
	if err != nil {
		// Un carrito corrupto se descarta en lugar de bloquear la tienda.
		s.log.Warn().Err(err).Str("key", key).Msg("carrito descartado")
		return nil, nil
	}
	return lines, nil
}

func (s *Store) write(ctx context.Context, key string, lines []entity.CartLine) error {
	raw, err := encode(lines)
	if err != nil {
		return fmt.Errorf("cart: serializar: %w", err)
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("cart: guardar: %w", err)
	}
	return nil
}

// mutate aplica fn sobre las líneas actuales y persiste el resultado.
func (s *Store) mutate(ctx context.Context, fn func([]entity.CartLine) ([]entity.CartLine, error)) error {
	key, err := s.key()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	lines, err := s.read(ctx, key)
	if err != nil {
		return err
	}
	lines, err = fn(lines)
	if err != nil {
		return err
	}
	return s.write(ctx, key, lines)
}

// Add suma qty unidades del producto; si no estaba en el carrito crea la línea.
func (s *Store) Add(ctx context.Context, p entity.Product, qty int) error {
	qty = clamp(qty)
	return s.mutate(ctx, func(lines []entity.CartLine) ([]entity.CartLine, error) {
		for i := range lines {
			if lines[i].ProductID == p.ID {
				lines[i].Quantity += qty
				return lines, nil
			}
		}
		return append(lines, entity.CartLine{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			ImagePath: p.ImagePath,
			Brand:     p.Brand,
			Quantity:  qty,
		}), nil
	})
}

// SetQuantity sobrescribe la cantidad; valores menores que 1 se fuerzan a 1. Para quitar una
// línea hay que usar Remove.
func (s *Store) SetQuantity(ctx context.Context, productID int64, qty int) error {
	qty = clamp(qty)
	return s.mutate(ctx, func(lines []entity.CartLine) ([]entity.CartLine, error) {
		for i := range lines {
			if lines[i].ProductID == productID {
				lines[i].Quantity = qty
				return lines, nil
			}
		}
		return nil, fmt.Errorf("cart: producto %d: %w", productID, domain.ErrNotFound)
	})
}

// Remove elimina la línea del producto; no es error si no existe.
func (s *Store) Remove(ctx context.Context, productID int64) error {
	return s.mutate(ctx, func(lines []entity.CartLine) ([]entity.CartLine, error) {
		out := lines[:0]
		for _, l := range lines {
			if l.ProductID != productID {
				out = append(out, l)
			}
		}
		return out, nil
	})
}

// Clear vacía el carrito del usuario actual.
func (s *Store) Clear(ctx context.Context) error {
	key, err := s.key()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Delete(ctx, key); err != nil {
		return fmt.Errorf("cart: vaciar: %w", err)
	}
	return nil
}

// Lines devuelve las líneas en orden de inserción.
func (s *Store) Lines(ctx context.Context) ([]entity.CartLine, error) {
	key, err := s.key()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	lines, err := s.read(ctx, key)
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []entity.CartLine{}
	}
	return lines, nil
}

// Count número de líneas (lo que muestra el icono del carrito).
func (s *Store) Count(ctx context.Context) (int, error) {
	lines, err := s.Lines(ctx)
	if err != nil {
		return 0, err
	}
	return len(lines), nil
}

// Total suma de precio por cantidad.
func (s *Store) Total(ctx context.Context) (decimal.Decimal, error) {
	lines, err := s.Lines(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return Total(lines), nil
}

// Total suma de los subtotales de lines.
func Total(lines []entity.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
