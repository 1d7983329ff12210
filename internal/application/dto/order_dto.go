package dto

// OrderRequest cuerpo para POST /orders.
type OrderRequest struct {
	Address    string             `json:"address"`
	Number     string             `json:"number"`
	Floor      string             `json:"floor"`
	PostalCode string             `json:"postalCode"`
	Items      []OrderItemRequest `json:"items"`
}

// OrderItemRequest línea del pedido enviada al backend.
type OrderItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// OrderStatusRequest cuerpo para PUT /orders/:id.
type OrderStatusRequest struct {
	Status string `json:"status"`
}
