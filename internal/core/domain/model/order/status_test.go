package order_test

import (
	"testing"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_StringAndParse(t *testing.T) {
	for _, s := range order.AllStatuses() {
		parsed, err := order.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
		require.NoError(t, s.Validate())
	}

	_, err := order.ParseStatus("picked_up")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, "unknown", order.Status(42).String())
	require.Error(t, order.Unknown.Validate())
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	for _, s := range []order.Status{order.Pending, order.Preparing, order.ReadyForPickup, order.OutForDelivery} {
		assert.False(t, s.IsTerminal(), s.String())
	}
}

func TestStatus_Reachability(t *testing.T) {
	reached := map[order.Status]bool{order.Pending: true}
	queue := []order.Status{order.Pending}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, next := range order.NextStatuses(s) {
			if !reached[next] {
				reached[next] = true
				queue = append(queue, next)
			}
		}
	}

	for _, s := range order.AllStatuses() {
		assert.True(t, reached[s], "%s must be reachable from pending", s)
	}
	assert.Empty(t, order.NextStatuses(order.Delivered))
	assert.Empty(t, order.NextStatuses(order.Cancelled))
	assert.ElementsMatch(t, []order.Status{order.Preparing, order.Cancelled}, order.NextStatuses(order.Pending))
	assert.ElementsMatch(t, []order.Status{order.OutForDelivery}, order.NextStatuses(order.ReadyForPickup))
}

func TestParseEventAndRole(t *testing.T) {
	e, err := order.ParseEvent("mark_ready")
	require.NoError(t, err)
	assert.Equal(t, order.EventMarkReady, e)
	assert.True(t, e.IsStatusEvent())
	assert.False(t, order.EventAssign.IsStatusEvent())

	_, err = order.ParseEvent("teleport")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	r, err := order.ParseRole("rider")
	require.NoError(t, err)
	assert.Equal(t, order.RoleRider, r)
	_, err = order.ParseRole("admin")
	require.Error(t, err)

	_, err = order.NewActor("", order.RoleCustomer)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
