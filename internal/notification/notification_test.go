package notification_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spacerent/space-rental-backend/internal/notification"
	"github.com/stretchr/testify/assert"
)

type capturePublisher struct {
	mu     sync.Mutex
	events []notification.Event
	err    error
}

func (p *capturePublisher) Publish(_ context.Context, event notification.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *capturePublisher) captured() []notification.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]notification.Event(nil), p.events...)
}

func TestDispatcher_DeliversQueuedEvents(t *testing.T) {
	pub := &capturePublisher{}
	d := notification.NewDispatcher(pub, 8)

	ctx, cancel := context.WithCancel(context.Background())
	go d.Run(ctx)

	d.NotifySignUp("renter@example.com", "Renter One")
	d.NotifySignIn("owner@example.com", "Owner Two")

	time.Sleep(50 * time.Millisecond)
	cancel()
	d.Wait()

	events := pub.captured()
	assert.Len(t, events, 2)
	assert.Equal(t, notification.EventUserSignedUp, events[0].Type)
	assert.Equal(t, "renter@example.com", events[0].Email)
	assert.Equal(t, notification.EventUserSignedIn, events[1].Type)
}

func TestDispatcher_PublishFailureIsSwallowed(t *testing.T) {
	pub := &capturePublisher{err: errors.New("broker down")}
	d := notification.NewDispatcher(pub, 8)

	ctx, cancel := context.WithCancel(context.Background())
	go d.Run(ctx)

	// Must not panic or block the caller.
	d.NotifySignUp("renter@example.com", "Renter One")

	time.Sleep(50 * time.Millisecond)
	cancel()
	d.Wait()

	assert.Len(t, pub.captured(), 1)
}

func TestDispatcher_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	pub := &capturePublisher{}
	d := notification.NewDispatcher(pub, 1)

	// No Run goroutine: the buffer fills after one event.
	done := make(chan struct{})
	go func() {
		defer close(done)
		d.NotifySignUp("a@example.com", "")
		d.NotifySignUp("b@example.com", "")
		d.NotifySignUp("c@example.com", "")
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("enqueue blocked on a full buffer")
	}
}
