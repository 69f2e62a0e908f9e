package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents an item in the catalogue.
type Product struct {
	ID        int64           `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

// MaxPrice is the largest unit price the products.price column can hold.
var MaxPrice = decimal.RequireFromString("9999999999.99")

// CreateProductRequest represents the request payload for adding a product.
type CreateProductRequest struct {
	Name  string          `json:"name" validate:"required,max=255"`
	Price decimal.Decimal `json:"price" validate:"gte=0,lte=9999999999.99"`
}
