package cart

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/tevo-storefront/internal/domain/entity"
)

// formatVersion versión del sobre con el que se persiste el carrito.
const formatVersion = 1

// KeyPrefix prefijo de la clave de almacenamiento; se completa con el subject del usuario.
const KeyPrefix = "cart_"

// Key clave del carrito de un usuario.
func Key(subject string) string {
	return KeyPrefix + subject
}

type envelope struct {
	Version int               `json:"version"`
	Lines   []entity.CartLine `json:"lines"`
}

// decode admite el sobre versionado y el array plano de versiones anteriores.
func decode(raw []byte) ([]entity.CartLine, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	var lines []entity.CartLine
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &lines); err != nil {
			return nil, fmt.Errorf("cart: carrito ilegible: %w", err)
		}
		return normalize(lines), nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("cart: carrito ilegible: %w", err)
	}
	if env.Version != formatVersion {
		return nil, fmt.Errorf("cart: versión de carrito %d no soportada", env.Version)
	}
	return normalize(env.Lines), nil
}

func encode(lines []entity.CartLine) ([]byte, error) {
	if lines == nil {
		lines = []entity.CartLine{}
	}
	return json.Marshal(envelope{Version: formatVersion, Lines: lines})
}

// normalize aplica el mínimo de una unidad a datos escritos por versiones anteriores.
func normalize(lines []entity.CartLine) []entity.CartLine {
	for i := range lines {
		lines[i].Quantity = clamp(lines[i].Quantity)
	}
	return lines
}

func clamp(qty int) int {
	if qty < 1 {
		return 1
	}
	return qty
}

// countLines cuenta las líneas sin validar el resto del contenido.
func countLines(raw []byte) int {
	lines, err := decode(raw)
	if err != nil {
		return 0
	}
	return len(lines)
}
