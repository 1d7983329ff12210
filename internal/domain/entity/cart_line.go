package entity

import "github.com/shopspring/decimal"

// CartLine línea del carrito local; la cantidad siempre es >= 1.
type CartLine struct {
	ProductID int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImagePath string          `json:"imagePath"`
	Brand     string          `json:"brand"`
	Quantity  int             `json:"quantity"`
}

// Subtotal precio por cantidad.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
