package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a purchasable catalog record. It is owned by catalog
// administration; the order workflow only ever reads it.
type Product struct {
	ID           int64               `db:"id" json:"id"`
	Name         string              `db:"name" json:"name"`
	Description  string              `db:"description" json:"description"`
	Price        decimal.Decimal     `db:"price" json:"price"`
	IsOnSale     bool                `db:"is_on_sale" json:"isOnSale"`
	SalePrice    decimal.NullDecimal `db:"sale_price" json:"salePrice"`
	CurrentStock int                 `db:"current_stock" json:"currentStock"`
	ImageURL     string              `db:"image_url" json:"imageUrl"`
	CreatedAt    time.Time           `db:"created_at" json:"createdDate"`
	UpdatedAt    time.Time           `db:"updated_at" json:"lastUpdatedDate"`
}

// Sort directions accepted by ListQuery.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListQuery narrows and orders a catalog listing. Zero values mean
// "no filter"; unknown sort columns fall back to the default (name asc).
type ListQuery struct {
	Name     string // substring match on product name
	MinPrice decimal.NullDecimal
	MaxPrice decimal.NullDecimal
	OnSale   *bool // only products on sale (or not)
	InStock  bool  // only products with current_stock > 0
	SortBy   string
	SortDir  string
}
