package entity

import "github.com/shopspring/decimal"

// Estados de un pedido.
const (
	OrderPendiente  = "PENDIENTE"
	OrderConfirmado = "CONFIRMADO"
	OrderEnviado    = "ENVIADO"
	OrderEntregado  = "ENTREGADO"
	OrderCancelado  = "CANCELADO"
)

// OrderStatuses lista ordenada de estados admitidos por PUT /orders/:id.
var OrderStatuses = []string{OrderPendiente, OrderConfirmado, OrderEnviado, OrderEntregado, OrderCancelado}

// IsValidOrderStatus indica si s es uno de los estados admitidos.
func IsValidOrderStatus(s string) bool {
	for _, st := range OrderStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// Order representa la cabecera de un pedido con sus líneas.
type Order struct {
	ID         int64           `json:"id"`
	Username   string          `json:"username"`
	CreatedAt  Timestamp       `json:"createdAt"`
	Status     string          `json:"status"`
	Total      decimal.Decimal `json:"total"`
	Address    string          `json:"address"`
	Number     string          `json:"number"`
	Floor      string          `json:"floor"`
	PostalCode string          `json:"postalCode"`
	Items      []OrderItem     `json:"items"`
}

// OrderItem línea de pedido.
type OrderItem struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Subtotal precio por cantidad.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
