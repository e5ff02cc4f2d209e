package event

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/osmkit/mapscript/service/messaging"
	"github.com/stretchr/testify/assert"
)

type directiveOutcome struct {
	Name   string
	Status string
}

func TestService_PublishAndListen(t *testing.T) {
	service, err := New(messaging.VendorMemory)
	assert.Nil(t, err)

	assert.False(t, HasListenerOf[*directiveOutcome](service))

	var mux sync.Mutex
	var received []*Event[*directiveOutcome]
	err = SetListenerOf[*directiveOutcome](service, func(event *Event[*directiveOutcome]) {
		mux.Lock()
		received = append(received, event)
		mux.Unlock()
	})
	assert.Nil(t, err)
	assert.True(t, HasListenerOf[*directiveOutcome](service))

	publisher, err := PublisherOf[*directiveOutcome](service)
	assert.Nil(t, err)

	eCtx := &Context{RunID: "run-1", Directive: "load-source", EventType: "executed"}
	err = publisher.Publish(context.Background(), NewEvent(eCtx, &directiveOutcome{Name: "load-source", Status: "ok"}))
	assert.Nil(t, err)

	assert.Eventually(t, func() bool {
		mux.Lock()
		defer mux.Unlock()
		return len(received) == 1
	}, time.Second, 10*time.Millisecond)

	mux.Lock()
	defer mux.Unlock()
	assert.Equal(t, "load-source", received[0].Context.Directive)
	assert.Equal(t, "ok", received[0].Data.Status)
}

func TestNew_vendorValidation(t *testing.T) {
	_, err := New(messaging.VendorFS)
	assert.NotNil(t, err)

	_, err = New(messaging.Vendor("kafka"))
	assert.NotNil(t, err)
}
