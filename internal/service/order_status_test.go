package service

import (
	"testing"

	"github.com/handmade-next/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionFollowsLifecycle(t *testing.T) {
	path := []models.OrderStatus{
		models.OrderStatusAwaitingPayment,
		models.OrderStatusPending,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCompleted,
	}
	for i := 0; i+1 < len(path); i++ {
		assert.True(t, CanTransition(path[i], path[i+1]), "%s -> %s", path[i], path[i+1])
		assert.False(t, CanTransition(path[i+1], path[i]), "%s -> %s", path[i+1], path[i])
	}
	assert.False(t, CanTransition(models.OrderStatusAwaitingPayment, models.OrderStatusShipped))
	assert.False(t, CanTransition(models.OrderStatusPending, models.OrderStatusPending))
}

func TestCanTransitionCancelOnlyBeforeShipping(t *testing.T) {
	assert.True(t, CanTransition(models.OrderStatusAwaitingPayment, models.OrderStatusCanceled))
	assert.True(t, CanTransition(models.OrderStatusPending, models.OrderStatusCanceled))
	assert.True(t, CanTransition(models.OrderStatusProcessing, models.OrderStatusCanceled))
	assert.False(t, CanTransition(models.OrderStatusShipped, models.OrderStatusCanceled))
	assert.False(t, CanTransition(models.OrderStatusCanceled, models.OrderStatusPending))

	assert.ElementsMatch(t, []models.OrderStatus{
		models.OrderStatusAwaitingPayment,
		models.OrderStatusPending,
		models.OrderStatusProcessing,
	}, previousStatuses(models.OrderStatusCanceled))
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, IsTerminal(models.OrderStatusCompleted))
	assert.True(t, IsTerminal(models.OrderStatusCanceled))
	assert.False(t, IsTerminal(models.OrderStatusShipped))
	assert.Equal(t, []models.OrderStatus{models.OrderStatusCompleted}, NextStatuses(models.OrderStatusDelivered))
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus(" Shipped ")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, status)

	_, err = ParseOrderStatus("refunded")
	require.ErrorIs(t, err, ErrOrderStatusInvalid)
}
