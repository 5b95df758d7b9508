package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acmeshop/storefront/internal/payments"
)

func TestTransition_PendingPaid(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	o := &Order{Status: StatusPending}

	changed := Transition(o, payments.StatusPaid, "pi_123", now)

	assert.True(t, changed)
	assert.Equal(t, StatusCompleted, o.Status)
	require.NotNil(t, o.CompletedAt)
	assert.Equal(t, now, *o.CompletedAt)
	require.NotNil(t, o.PaymentIntentID)
	assert.Equal(t, "pi_123", *o.PaymentIntentID)
}

func TestTransition_PendingUnpaid(t *testing.T) {
	o := &Order{Status: StatusPending}

	changed := Transition(o, payments.StatusUnpaid, "", time.Now())

	assert.True(t, changed)
	assert.Equal(t, StatusFailed, o.Status)
	assert.Nil(t, o.CompletedAt)
}

func TestTransition_PendingOtherIsNoOp(t *testing.T) {
	o := &Order{Status: StatusPending}

	assert.False(t, Transition(o, payments.StatusOther, "", time.Now()))
	assert.Equal(t, StatusPending, o.Status)
}

func TestTransition_TerminalStatesAreFinal(t *testing.T) {
	completedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	completed := &Order{Status: StatusCompleted, CompletedAt: &completedAt}
	assert.False(t, Transition(completed, payments.StatusPaid, "pi_again", time.Now()))
	assert.Equal(t, completedAt, *completed.CompletedAt)
	assert.Nil(t, completed.PaymentIntentID)

	// A failed order never re-opens, even if the processor later says paid.
	failed := &Order{Status: StatusFailed}
	assert.False(t, Transition(failed, payments.StatusPaid, "pi_late", time.Now()))
	assert.Equal(t, StatusFailed, failed.Status)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(StatusPending))
	assert.True(t, IsTerminal(StatusCompleted))
	assert.True(t, IsTerminal(StatusFailed))
}
