package payments

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

var centsPerUnit = decimal.NewFromInt(100)

// StripeProvider implements Provider against Stripe hosted checkout.
type StripeProvider struct {
	api        *client.API
	successURL string
	cancelURL  string
	timeout    time.Duration
}

// NewStripeProvider builds a provider bound to the given secret key. The
// success URL may contain Stripe's {CHECKOUT_SESSION_ID} placeholder so the
// confirmation page can reconcile the returned session.
func NewStripeProvider(secretKey, successURL, cancelURL string, timeout time.Duration) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{
		api:        api,
		successURL: successURL,
		cancelURL:  cancelURL,
		timeout:    timeout,
	}
}

// CreateCheckoutSession opens a hosted checkout session for the given lines.
func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (CheckoutSession, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	lines := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(l.Quantity)),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(toCents(l.UnitAmount)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(l.Name),
				},
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(req.CustomerEmail),
		SuccessURL:    stripe.String(p.successURL),
		CancelURL:     stripe.String(p.cancelURL),
		LineItems:     lines,
	}
	params.Context = ctx

	sess, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return CheckoutSession{}, wrapStripeErr("create checkout session", err)
	}
	return CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// GetSession fetches the processor's current view of a checkout session.
func (p *StripeProvider) GetSession(ctx context.Context, sessionID string) (SessionStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := p.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return SessionStatus{}, wrapStripeErr("get checkout session", err)
	}

	status := SessionStatus{PaymentStatus: mapPaymentStatus(sess.PaymentStatus)}
	if sess.PaymentIntent != nil {
		status.PaymentIntentID = sess.PaymentIntent.ID
	}
	return status, nil
}

func mapPaymentStatus(s stripe.CheckoutSessionPaymentStatus) PaymentStatus {
	switch s {
	case stripe.CheckoutSessionPaymentStatusPaid:
		return StatusPaid
	case stripe.CheckoutSessionPaymentStatusUnpaid:
		return StatusUnpaid
	default:
		return StatusOther
	}
}

func wrapStripeErr(op string, err error) error {
	var sErr *stripe.Error
	if errors.As(err, &sErr) && sErr.Msg != "" {
		return &UpstreamError{Msg: sErr.Msg, Err: err}
	}
	return &UpstreamError{Msg: op + " failed", Err: err}
}

// toCents converts a major-unit decimal amount to the processor's smallest
// currency unit.
func toCents(amount decimal.Decimal) int64 {
	return amount.Mul(centsPerUnit).Round(0).IntPart()
}
