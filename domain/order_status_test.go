package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderStatus(t *testing.T) {
	status, ok := ParseOrderStatus(" shipped ")
	assert.True(t, ok)
	assert.Equal(t, OrderStatusShipped, status)

	_, ok = ParseOrderStatus("lost")
	assert.False(t, ok)
}

func TestOrderTransitions(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusProcessing, false},
		{OrderStatusDelivered, OrderStatusDelivered, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}

	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusShipped.IsTerminal())
}

func TestParsePaymentStatus(t *testing.T) {
	status, ok := ParsePaymentStatus("not paid")
	assert.True(t, ok)
	assert.Equal(t, PaymentStatusNotPaid, status)

	_, ok = ParsePaymentStatus("maybe")
	assert.False(t, ok)
}

func TestPublicMessage(t *testing.T) {
	err := NotFoundError("Order not found")
	assert.ErrorIs(t, err, ErrNotFound)

	msg, ok := PublicMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Order not found", msg)

	_, ok = PublicMessage(assert.AnError)
	assert.False(t, ok)
}
