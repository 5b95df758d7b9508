package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/acmeshop/storefront/internal/catalog"
	"github.com/acmeshop/storefront/internal/payments"
	"github.com/acmeshop/storefront/internal/storage"
)

// maxSnapshotNameLen caps the product-name snapshot on a receipt line.
const maxSnapshotNameLen = 100

// ProductGetter is the catalog lookup the assembler depends on.
type ProductGetter interface {
	Get(ctx context.Context, id int64) (*catalog.Product, error)
}

// CheckoutResult is the outcome of a successful order creation. RedirectURL
// is empty when no payment step is required (order already completed).
type CheckoutResult struct {
	Order       *Order
	RedirectURL string
}

// Assembler validates a submitted cart against the catalog, snapshots prices
// and names, computes the total and persists the order atomically.
type Assembler struct {
	products ProductGetter
	orders   *Store
	provider payments.Provider
	nowFunc  func() time.Time
}

// NewAssembler creates a new order Assembler.
func NewAssembler(products ProductGetter, ordersStore *Store, provider payments.Provider) *Assembler {
	return &Assembler{
		products: products,
		orders:   ordersStore,
		provider: provider,
		nowFunc:  time.Now,
	}
}

// CreateOrder builds and persists one order for the submitted line items.
//
// Every line is validated against the catalog before anything is written: an
// unknown product id aborts the whole order with *InvalidReferenceError. Unit
// prices are resolved from the catalog record at this moment, never taken
// from the client. With a configured payment provider the order is persisted
// PENDING carrying the checkout session token and the result holds the
// redirect URL; with payments disabled the order is persisted COMPLETED
// immediately.
func (a *Assembler) CreateOrder(ctx context.Context, customerEmail string, items []LineItem) (*CheckoutResult, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	now := a.nowFunc().UTC()
	total := decimal.Zero
	orderItems := make([]OrderItem, 0, len(items))
	checkoutLines := make([]payments.LineItem, 0, len(items))

	for _, li := range items {
		product, err := a.products.Get(ctx, li.ProductID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &InvalidReferenceError{ProductID: li.ProductID}
		}
		if err != nil {
			return nil, fmt.Errorf("look up product %d: %w", li.ProductID, err)
		}

		price := catalog.ResolvePrice(*product)
		name := truncateRunes(product.Name, maxSnapshotNameLen)

		orderItems = append(orderItems, OrderItem{
			ProductID:       product.ID,
			ProductName:     name,
			Quantity:        li.Quantity,
			PriceAtPurchase: price,
		})
		checkoutLines = append(checkoutLines, payments.LineItem{
			Name:       name,
			UnitAmount: price,
			Quantity:   li.Quantity,
		})
		total = total.Add(price.Mul(decimal.NewFromInt(int64(li.Quantity))))
	}

	order := &Order{
		CustomerEmail: customerEmail,
		TotalAmount:   total,
		Status:        StatusPending,
		CreatedAt:     now,
		Items:         orderItems,
	}

	// The session is created before the write so a processor failure persists
	// nothing; an orphaned session at the processor simply expires.
	sess, err := a.provider.CreateCheckoutSession(ctx, payments.CheckoutRequest{
		CustomerEmail: customerEmail,
		Lines:         checkoutLines,
	})
	if err != nil {
		return nil, err
	}

	if sess.ID == "" {
		// No payment step: complete immediately.
		order.Status = StatusCompleted
		completed := now
		order.CompletedAt = &completed
	} else {
		sessionID := sess.ID
		order.CheckoutSessionID = &sessionID
	}

	if err := a.orders.CreateWithItems(ctx, order); err != nil {
		return nil, err
	}

	return &CheckoutResult{Order: order, RedirectURL: sess.URL}, nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
