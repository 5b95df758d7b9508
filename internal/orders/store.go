package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/acmeshop/storefront/internal/storage"
)

const orderColumns = `id, customer_email, total_amount, status, created_at,
	completed_at, checkout_session_id, payment_intent_id`

// Store encapsulates operations on the orders and order_items tables.
type Store struct {
	db *sqlx.DB
}

// NewStore creates a new orders Store.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// CreateWithItems persists an order and all of its items in one transaction.
// Either the order row and every item row commit together, or none do.
// Fills in the generated order and item ids.
func (s *Store) CreateWithItems(ctx context.Context, order *Order) error {
	if len(order.Items) == 0 {
		return ErrEmptyOrder
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (customer_email, total_amount, status, created_at,
		                     completed_at, checkout_session_id, payment_intent_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		order.CustomerEmail, order.TotalAmount, order.Status, order.CreatedAt,
		order.CompletedAt, order.CheckoutSessionID, order.PaymentIntentID)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("order last insert id: %w", err)
	}
	order.ID = orderID

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = orderID
		res, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, product_name, quantity, price_at_purchase)
			 VALUES (?, ?, ?, ?, ?)`,
			item.OrderID, item.ProductID, item.ProductName, item.Quantity, item.PriceAtPurchase)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
		itemID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("order item last insert id: %w", err)
		}
		item.ID = itemID
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}
	return nil
}

// GetWithItems fetches an order and its items by order id.
// Returns storage.ErrNotFound if absent.
func (s *Store) GetWithItems(ctx context.Context, id int64) (*Order, error) {
	return s.getBy(ctx, "id = ?", id)
}

// GetBySessionToken fetches the order whose stored checkout session token
// equals token. Returns storage.ErrNotFound if no order carries it.
func (s *Store) GetBySessionToken(ctx context.Context, token string) (*Order, error) {
	return s.getBy(ctx, "checkout_session_id = ?", token)
}

func (s *Store) getBy(ctx context.Context, cond string, arg interface{}) (*Order, error) {
	var o Order
	err := s.db.GetContext(ctx, &o,
		"SELECT "+orderColumns+" FROM orders WHERE "+cond, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	items := []OrderItem{}
	err = s.db.SelectContext(ctx, &items,
		`SELECT id, order_id, product_id, product_name, quantity, price_at_purchase
		 FROM order_items WHERE order_id = ? ORDER BY id`, o.ID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	o.Items = items
	return &o, nil
}

// MarkCompleted moves an order PENDING -> COMPLETED, stamping the completion
// time and the payment-confirmation token. Returns storage.ErrStatusMismatch
// if the order is no longer PENDING.
func (s *Store) MarkCompleted(ctx context.Context, id int64, completedAt time.Time, paymentIntentID *string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE orders SET status = ?, completed_at = ?, payment_intent_id = ?
		 WHERE id = ? AND status = ?`,
		StatusCompleted, completedAt, paymentIntentID, id, StatusPending)
	if err != nil {
		return fmt.Errorf("mark order %d completed: %w", id, err)
	}
	return checkConditional(res)
}

// MarkFailed moves an order PENDING -> FAILED. Returns
// storage.ErrStatusMismatch if the order is no longer PENDING.
func (s *Store) MarkFailed(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE orders SET status = ? WHERE id = ? AND status = ?`,
		StatusFailed, id, StatusPending)
	if err != nil {
		return fmt.Errorf("mark order %d failed: %w", id, err)
	}
	return checkConditional(res)
}

// Delete removes an order; its items go with it via cascade delete.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete order %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete order rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Count returns the number of persisted orders.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM orders`); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

func checkConditional(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrStatusMismatch
	}
	return nil
}
