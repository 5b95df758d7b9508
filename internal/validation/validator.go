package validation

import (
	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator with custom struct-level validation registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// validator tags cannot compare decimal struct fields, so the price rules
	// for products live in a struct-level validation.
	v.RegisterStructValidation(productStructValidation, ProductRequest{})

	return v
}

// productStructValidation enforces that the list price is positive and that a
// product marked on sale carries a sale price strictly below the list price.
func productStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(ProductRequest)

	if !req.Price.IsPositive() {
		sl.ReportError(req.Price, "price", "Price", "price_positive", "price must be greater than 0")
	}

	if req.IsOnSale {
		if !req.SalePrice.Valid {
			sl.ReportError(req.SalePrice, "salePrice", "SalePrice", "sale_price_required", "sale price is required when product is on sale")
			return
		}
		if req.SalePrice.Decimal.GreaterThanOrEqual(req.Price) {
			sl.ReportError(req.SalePrice, "salePrice", "SalePrice", "sale_price_lt_price", "sale price must be less than regular price")
		}
	}
}
