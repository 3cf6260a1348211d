package commands

import (
	"strings"
	"testing"
	"time"

	"engler-house/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestEvent(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	ev, err := testEvent("order", "me@example.com", now, false)
	require.NoError(t, err)
	order, ok := ev.(notify.OrderCreated)
	require.True(t, ok)
	assert.Equal(t, "me@example.com", order.Owner.Email)
	assert.True(t, strings.HasPrefix(order.Order.OrderNumber, "TEST-"))

	ev, err = testEvent("task", "me@example.com", now, false)
	require.NoError(t, err)
	assert.Equal(t, notify.KindTaskStatusChanged, ev.Kind())

	ev, err = testEvent("user", "me@example.com", now, false)
	require.NoError(t, err)
	assert.Equal(t, notify.KindUserCreated, ev.Kind())

	_, err = testEvent("invoice", "me@example.com", now, false)
	assert.Error(t, err)
}

func TestTestEmailComposes(t *testing.T) {
	d := notify.NewDispatcher(notify.LogMailer{}, "http://localhost:8000")
	for _, kind := range testEmailTypes {
		ev, err := testEvent(kind, "me@example.com", time.Now(), false)
		require.NoError(t, err)
		msg, err := d.Compose(ev)
		require.NoError(t, err, kind)
		assert.Equal(t, "me@example.com", msg.To)
	}
}

func TestTestEventUserPasswordFollowsConfig(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	ev, err := testEvent("user", "me@example.com", now, false)
	require.NoError(t, err)
	assert.Empty(t, ev.(notify.UserCreated).Password)

	ev, err = testEvent("user", "me@example.com", now, true)
	require.NoError(t, err)
	assert.Equal(t, "test-password", ev.(notify.UserCreated).Password)
}
