package bus

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
	"github.com/N0Xl0US/HMP-issue-fix/internal/realtime"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	require.NoError(t, err)
	return log
}

func TestLocalBusFanOut(t *testing.T) {
	b := NewLocalBus(testLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var first, second []realtime.SSEMessage
	require.NoError(t, b.Subscribe(ctx, func(m realtime.SSEMessage) { first = append(first, m) }))
	require.NoError(t, b.Subscribe(ctx, func(m realtime.SSEMessage) { second = append(second, m) }))

	msg := realtime.SSEMessage{Channel: realtime.UserChannel(uuid.New()), Event: realtime.SSEEventMealTracked}
	require.NoError(t, b.Publish(ctx, msg))

	assert.Equal(t, []realtime.SSEMessage{msg}, first)
	assert.Equal(t, []realtime.SSEMessage{msg}, second)
}

func TestLocalBusUnsubscribesOnCancel(t *testing.T) {
	b := NewLocalBus(testLogger(t)).(*localBus)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, b.Subscribe(ctx, func(realtime.SSEMessage) {}))
	cancel()

	require.Eventually(t, func() bool {
		b.mu.RLock()
		defer b.mu.RUnlock()
		return len(b.subs) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestLocalBusClosed(t *testing.T) {
	b := NewLocalBus(testLogger(t))
	require.NoError(t, b.Close())

	assert.ErrorIs(t, b.Publish(context.Background(), realtime.SSEMessage{Channel: "user:x"}), ErrClosed)
	assert.ErrorIs(t, b.Subscribe(context.Background(), func(realtime.SSEMessage) {}), ErrClosed)
	assert.Error(t, NewLocalBus(testLogger(t)).Subscribe(context.Background(), nil))
}

func TestEnvelopeCodec(t *testing.T) {
	msg := realtime.SSEMessage{Channel: "user:abc", Event: realtime.SSEEventNotificationCreated, Data: map[string]any{"nutrient": "sugar"}}
	raw, err := encode("instance-a", msg)
	require.NoError(t, err)

	env, err := decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "instance-a", env.Origin)
	assert.Equal(t, msg.Channel, env.Message.Channel)
	assert.Equal(t, msg.Event, env.Message.Event)
	assert.Equal(t, map[string]any{"nutrient": "sugar"}, env.Message.Data)

	_, err = encode("instance-a", realtime.SSEMessage{Event: realtime.SSEEventMealTracked})
	assert.Error(t, err)
	_, err = decode([]byte(`{"origin":"x","message":{"event":"MealTracked"}}`))
	assert.Error(t, err)
	_, err = decode([]byte(`not json`))
	assert.Error(t, err)
}
