package payments

import "context"

// Disabled is the fallback provider used when no processor is configured.
// It reports no payment step (zero session), which makes the order workflow
// complete orders immediately at creation.
type Disabled struct{}

// NewDisabled returns the no-payment provider.
func NewDisabled() Disabled { return Disabled{} }

// CreateCheckoutSession returns a zero session: no redirect, no token.
func (Disabled) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (CheckoutSession, error) {
	return CheckoutSession{}, nil
}

// GetSession always fails: with no processor there are no sessions to poll.
func (Disabled) GetSession(ctx context.Context, sessionID string) (SessionStatus, error) {
	return SessionStatus{}, &UpstreamError{Msg: "payments are not configured"}
}
