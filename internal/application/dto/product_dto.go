package dto

import "github.com/shopspring/decimal"

// ProductRequest cuerpo para POST /products y PUT /products/:id.
type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
	ImagePath   string          `json:"imagePath"`
}
