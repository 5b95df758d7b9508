package payments

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the closed set of processor-reported payment states the
// order workflow reacts to. Anything the processor says that isn't paid or
// unpaid maps to StatusOther, which transitions nothing.
type PaymentStatus string

const (
	StatusPaid   PaymentStatus = "paid"
	StatusUnpaid PaymentStatus = "unpaid"
	StatusOther  PaymentStatus = "other"
)

// LineItem describes one checkout line as shown to the payment processor.
type LineItem struct {
	Name       string
	UnitAmount decimal.Decimal // per-unit price in major currency units
	Quantity   int
}

// CheckoutRequest is the input for creating a hosted checkout session.
type CheckoutRequest struct {
	CustomerEmail string
	Lines         []LineItem
}

// CheckoutSession identifies a hosted checkout attempt at the processor.
// A zero session (empty ID) means no payment step is required.
type CheckoutSession struct {
	ID  string
	URL string
}

// SessionStatus is the processor's view of a checkout session.
type SessionStatus struct {
	PaymentStatus   PaymentStatus
	PaymentIntentID string // confirmation token, set once the session is paid
}

// Provider abstracts the external payment processor. Implementations must
// bound their own network calls; callers treat any returned error of type
// *UpstreamError as "processor unreachable or rejected the session".
type Provider interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (CheckoutSession, error)
	GetSession(ctx context.Context, sessionID string) (SessionStatus, error)
}

// UpstreamError carries the processor's message for a failed call. Local
// order state is never mutated when one of these is returned.
type UpstreamError struct {
	Msg string
	Err error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment provider: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("payment provider: %s", e.Msg)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
