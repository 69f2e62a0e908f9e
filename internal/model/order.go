package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a placed order. Total is fixed at creation time.
type Order struct {
	ID        int64           `json:"id" db:"id"`
	UserID    int64           `json:"userId" db:"user_id"`
	Total     decimal.Decimal `json:"total" db:"total"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

// OrderItem represents a line item in an order with its price snapshot.
type OrderItem struct {
	ID        int64           `json:"id" db:"id"`
	OrderID   int64           `json:"orderId" db:"order_id"`
	ProductID int64           `json:"productId" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice" db:"price"`
	LineTotal decimal.Decimal `json:"lineTotal" db:"total"`
}

// MaxQuantity caps the quantity of a single order line.
const MaxQuantity = 1_000_000

// MaxOrderTotal is the largest amount the orders.total and order_items.total
// columns can hold.
var MaxOrderTotal = decimal.RequireFromString("999999999999.99")

// OrderRequest represents the request payload for creating an order.
type OrderRequest struct {
	UserID   int64              `json:"userId" validate:"required,gt=0"`
	Products []OrderItemRequest `json:"products" validate:"required,min=1,dive"`
}

// OrderItemRequest represents a single item in an order request.
type OrderItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0,lte=1000000"`
}

// OrderResponse represents the response payload for an order.
type OrderResponse struct {
	ID     int64           `json:"id"`
	UserID int64           `json:"userId"`
	Total  decimal.Decimal `json:"total"`
	Items  []OrderItem     `json:"items"`
}
