package orders

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/acmeshop/storefront/internal/payments"
	"github.com/acmeshop/storefront/internal/storage"
)

// Reconciler queries the payment processor for a checkout session and applies
// the resulting status transition to the local order.
type Reconciler struct {
	orders   *Store
	provider payments.Provider
	nowFunc  func() time.Time
}

// NewReconciler creates a new Reconciler.
func NewReconciler(ordersStore *Store, provider payments.Provider) *Reconciler {
	return &Reconciler{
		orders:   ordersStore,
		provider: provider,
		nowFunc:  time.Now,
	}
}

// Reconcile resolves the order identified by sessionToken against the
// processor's reported payment status and returns the (possibly updated)
// order.
//
// Processor failures surface as *payments.UpstreamError and leave local state
// untouched. The call is idempotent: once the order reaches a terminal
// status, repeated polls with the same token return it unchanged.
func (r *Reconciler) Reconcile(ctx context.Context, sessionToken string) (*Order, error) {
	status, err := r.provider.GetSession(ctx, sessionToken)
	if err != nil {
		return nil, err
	}

	order, err := r.orders.GetBySessionToken(ctx, sessionToken)
	if err != nil {
		return nil, err
	}

	if !Transition(order, status.PaymentStatus, status.PaymentIntentID, r.nowFunc().UTC()) {
		return order, nil
	}

	switch order.Status {
	case StatusCompleted:
		err = r.orders.MarkCompleted(ctx, order.ID, *order.CompletedAt, order.PaymentIntentID)
	case StatusFailed:
		err = r.orders.MarkFailed(ctx, order.ID)
	}
	if errors.Is(err, storage.ErrStatusMismatch) {
		// A concurrent poll won the transition; the stored row is authoritative.
		return r.orders.GetWithItems(ctx, order.ID)
	}
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("orderId", order.ID).
		Str("status", order.Status).
		Str("paymentStatus", string(status.PaymentStatus)).
		Msg("Order reconciled from payment session")
	return order, nil
}
