package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo tal como lo devuelve el backend.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
	ImagePath   string          `json:"imagePath"`
}

// TopSeller producto del ranking de más vendidos (GET /products/top-sellers).
type TopSeller struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	TotalSold int64  `json:"totalSold"`
}
