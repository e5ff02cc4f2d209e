package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testPayload struct {
	ID        string
	Directive string
}

func TestQueue(t *testing.T) {
	config := DefaultConfig()
	config.RetryDelay = 10 * time.Millisecond // speed up for testing
	queue := NewQueue[testPayload](config)

	ctx := context.Background()
	payload := testPayload{ID: "run-1", Directive: "set-setting"}

	err := queue.Publish(ctx, &payload)
	assert.NoError(t, err)

	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, message)
	assert.Equal(t, payload, *message.T())

	err = message.Ack()
	assert.NoError(t, err)

	// double ack should error
	err = message.Ack()
	assert.Error(t, err)
}

func TestQueueRetries(t *testing.T) {
	config := DefaultConfig()
	config.MaxRetries = 2
	config.RetryDelay = 10 * time.Millisecond
	queue := NewQueue[testPayload](config)

	ctx := context.Background()
	payload := testPayload{ID: "retry-1", Directive: "load-source"}
	assert.NoError(t, queue.Publish(ctx, &payload))

	// fail the initial delivery and both retries
	for i := 0; i < config.MaxRetries+1; i++ {
		message, err := queue.Consume(ctx)
		if !assert.NoError(t, err, i) {
			return
		}
		assert.NoError(t, message.Nack(fmt.Errorf("attempt %d failed", i)))
	}

	// exhausted retries land in the dead letter queue
	assert.Eventually(t, func() bool {
		return queue.DeadLetters() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestQueue_ConsumeHonoursContext(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := queue.Consume(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
