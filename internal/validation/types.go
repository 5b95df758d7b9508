package validation

import "github.com/shopspring/decimal"

// CartItemRequest is a single submitted line item. Clients never send
// prices; the server resolves them from the catalog.
type CartItemRequest struct {
	ProductID int64 `json:"productId" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,min=1"` // must be >= 1
}

// CreateOrderRequest is the payload for POST /api/orders and
// POST /api/checkout/create-session. An empty item list is not a validation
// failure here: the order workflow rejects it with a 400, mirroring the
// distinction between a malformed request and an empty cart.
type CreateOrderRequest struct {
	CustomerEmail string            `json:"customerEmail" validate:"required,email"`
	Items         []CartItemRequest `json:"items" validate:"dive"`
}

// ProductRequest is the payload for POST /products and PUT /products/{id}.
// Price positivity and the sale-price rule are enforced by struct-level
// validation (see validator.go).
type ProductRequest struct {
	Name         string              `json:"name" validate:"required,max=100"`
	Description  string              `json:"description"`
	Price        decimal.Decimal     `json:"price" validate:"required"`
	IsOnSale     bool                `json:"isOnSale"`
	SalePrice    decimal.NullDecimal `json:"salePrice"`
	CurrentStock int                 `json:"currentStock" validate:"gte=0"`
	ImageURL     string              `json:"imageUrl"`
}
