package orders

import (
	"errors"
	"fmt"
)

// ErrEmptyOrder rejects order requests with no line items.
var ErrEmptyOrder = errors.New("order has no line items")

// InvalidReferenceError names a submitted product id that does not exist in
// the catalog. The whole order is aborted; nothing is persisted.
type InvalidReferenceError struct {
	ProductID int64
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("product with ID %d not found", e.ProductID)
}
