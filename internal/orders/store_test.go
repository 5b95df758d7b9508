package orders

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acmeshop/storefront/internal/storage"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func pendingOrder(sessionID string) *Order {
	o := &Order{
		CustomerEmail: "buyer@example.com",
		TotalAmount:   dec("20.00"),
		Status:        StatusPending,
		CreatedAt:     time.Now().UTC(),
		Items: []OrderItem{
			{ProductID: 1, ProductName: "Mug", Quantity: 2, PriceAtPurchase: dec("10.00")},
		},
	}
	if sessionID != "" {
		o.CheckoutSessionID = &sessionID
	}
	return o
}

func TestStore_CreateWithItems(t *testing.T) {
	db := setupTestDB(t)
	s := NewStore(db)
	ctx := context.Background()

	o := pendingOrder("cs_test_1")
	o.Items = append(o.Items, OrderItem{ProductID: 2, ProductName: "Lamp", Quantity: 1, PriceAtPurchase: dec("40.00")})
	o.TotalAmount = dec("60.00")

	require.NoError(t, s.CreateWithItems(ctx, o))
	assert.Greater(t, o.ID, int64(0))

	got, err := s.GetWithItems(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", got.CustomerEmail)
	assert.True(t, got.TotalAmount.Equal(dec("60.00")))
	assert.Equal(t, StatusPending, got.Status)
	require.NotNil(t, got.CheckoutSessionID)
	assert.Equal(t, "cs_test_1", *got.CheckoutSessionID)
	require.Len(t, got.Items, 2)
	assert.Equal(t, o.ID, got.Items[0].OrderID)
	assert.True(t, got.Items[0].PriceAtPurchase.Equal(dec("10.00")))
	assert.Equal(t, 2, got.Items[0].Quantity)
}

func TestStore_CreateWithItems_RejectsEmpty(t *testing.T) {
	s := NewStore(setupTestDB(t))

	o := pendingOrder("")
	o.Items = nil

	assert.ErrorIs(t, s.CreateWithItems(context.Background(), o), ErrEmptyOrder)

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestStore_GetBySessionToken(t *testing.T) {
	s := NewStore(setupTestDB(t))
	ctx := context.Background()

	o := pendingOrder("cs_test_find_me")
	require.NoError(t, s.CreateWithItems(ctx, o))

	got, err := s.GetBySessionToken(ctx, "cs_test_find_me")
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)
	require.Len(t, got.Items, 1)

	_, err = s.GetBySessionToken(ctx, "cs_test_unknown")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_MarkCompleted(t *testing.T) {
	s := NewStore(setupTestDB(t))
	ctx := context.Background()

	o := pendingOrder("cs_test_2")
	require.NoError(t, s.CreateWithItems(ctx, o))

	completedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	pi := "pi_42"
	require.NoError(t, s.MarkCompleted(ctx, o.ID, completedAt, &pi))

	got, err := s.GetWithItems(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(completedAt))
	require.NotNil(t, got.PaymentIntentID)
	assert.Equal(t, "pi_42", *got.PaymentIntentID)

	// Conditional update: the order is no longer PENDING.
	err = s.MarkCompleted(ctx, o.ID, completedAt.Add(time.Hour), &pi)
	assert.ErrorIs(t, err, storage.ErrStatusMismatch)

	again, err := s.GetWithItems(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, again.CompletedAt.Equal(completedAt))
}

func TestStore_MarkFailed(t *testing.T) {
	s := NewStore(setupTestDB(t))
	ctx := context.Background()

	o := pendingOrder("cs_test_3")
	require.NoError(t, s.CreateWithItems(ctx, o))

	require.NoError(t, s.MarkFailed(ctx, o.ID))

	got, err := s.GetWithItems(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, got.Status)
	assert.Nil(t, got.CompletedAt)

	assert.ErrorIs(t, s.MarkFailed(ctx, o.ID), storage.ErrStatusMismatch)

	// A failed order cannot be completed later.
	now := time.Now().UTC()
	assert.ErrorIs(t, s.MarkCompleted(ctx, o.ID, now, nil), storage.ErrStatusMismatch)
}

func TestStore_Delete_CascadesItems(t *testing.T) {
	db := setupTestDB(t)
	s := NewStore(db)
	ctx := context.Background()

	o := pendingOrder("cs_test_4")
	require.NoError(t, s.CreateWithItems(ctx, o))

	require.NoError(t, s.Delete(ctx, o.ID))

	_, err := s.GetWithItems(ctx, o.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	var itemCount int
	require.NoError(t, db.Get(&itemCount, `SELECT COUNT(*) FROM order_items WHERE order_id = ?`, o.ID))
	assert.Equal(t, 0, itemCount)
}
