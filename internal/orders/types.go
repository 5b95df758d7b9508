package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses
const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// Order is a placed order. Total and line items are immutable once written;
// only status, completed_at and the payment-confirmation token change after
// creation, and only through payment reconciliation.
type Order struct {
	ID                int64           `db:"id" json:"id"`
	CustomerEmail     string          `db:"customer_email" json:"customerEmail"`
	TotalAmount       decimal.Decimal `db:"total_amount" json:"totalAmount"` // derived server-side, never client-supplied
	Status            string          `db:"status" json:"status"`
	CreatedAt         time.Time       `db:"created_at" json:"createdDate"`
	CompletedAt       *time.Time      `db:"completed_at" json:"completedDate,omitempty"`
	CheckoutSessionID *string         `db:"checkout_session_id" json:"checkoutSessionId,omitempty"`
	PaymentIntentID   *string         `db:"payment_intent_id" json:"paymentIntentId,omitempty"`

	Items []OrderItem `db:"-" json:"orderItems"`
}

// OrderItem is a point-in-time receipt line. Product name and unit price are
// snapshotted at order time so historical orders stay accurate when the
// catalog changes or the product is deleted.
type OrderItem struct {
	ID              int64           `db:"id" json:"id"`
	OrderID         int64           `db:"order_id" json:"orderId"`
	ProductID       int64           `db:"product_id" json:"productId"`
	ProductName     string          `db:"product_name" json:"productName"`
	Quantity        int             `db:"quantity" json:"quantity"`
	PriceAtPurchase decimal.Decimal `db:"price_at_purchase" json:"priceAtPurchase"`
}

// LineItem is a client-submitted (product, quantity) pair. Prices are never
// accepted from clients.
type LineItem struct {
	ProductID int64
	Quantity  int
}
