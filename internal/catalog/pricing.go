package catalog

import "github.com/shopspring/decimal"

// ResolvePrice returns the authoritative unit price for a product: the sale
// price when the product is on sale, the list price otherwise. Client-supplied
// price data never participates; callers must re-resolve at the moment an
// order is assembled.
func ResolvePrice(p Product) decimal.Decimal {
	if p.IsOnSale && p.SalePrice.Valid {
		return p.SalePrice.Decimal
	}
	return p.Price
}
