package orders

import (
	"time"

	"github.com/acmeshop/storefront/internal/payments"
)

// IsTerminal reports whether s is a final order status. No transition is
// defined out of a terminal status.
func IsTerminal(s string) bool {
	return s == StatusCompleted || s == StatusFailed
}

// Transition applies the payment-driven lifecycle to o in place and reports
// whether anything changed:
//
//	PENDING + paid   -> COMPLETED (stamps completed_at, records confirmation)
//	PENDING + unpaid -> FAILED
//
// Re-observing a terminal status, or any other processor status, is a no-op.
func Transition(o *Order, status payments.PaymentStatus, confirmationID string, now time.Time) bool {
	if o.Status != StatusPending {
		return false
	}
	switch status {
	case payments.StatusPaid:
		o.Status = StatusCompleted
		t := now
		o.CompletedAt = &t
		if confirmationID != "" {
			o.PaymentIntentID = &confirmationID
		}
		return true
	case payments.StatusUnpaid:
		o.Status = StatusFailed
		return true
	default:
		return false
	}
}
