// Package notification delivers sign-up/sign-in events to an outbound
// queue without ever blocking or failing the request path.
package notification

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventUserSignedUp = "user.signed_up"
	EventUserSignedIn = "user.signed_in"
)

// Event is the payload published for each notification.
type Event struct {
	Type       string    `json:"type"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher pushes a single event to the outbound channel. Implementations
// may fail; the dispatcher only logs those failures.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// AMQPPublisher publishes events as persistent JSON messages onto a queue
// named after the event type. A fresh connection per publish keeps the
// implementation robust against broker restarts; notification volume is a
// handful of messages per sign-in, not a throughput concern.
type AMQPPublisher struct {
	url string
}

func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{url: url}
}

func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(event.Type, true, false, false, false, nil); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(ctx, "", event.Type, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
}

// Dispatcher accepts events on a buffered channel and publishes them from
// a background goroutine. Dispatch never blocks: when the buffer is full
// the event is dropped and logged.
type Dispatcher struct {
	publisher Publisher
	events    chan Event
	done      chan struct{}
}

func NewDispatcher(publisher Publisher, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	return &Dispatcher{
		publisher: publisher,
		events:    make(chan Event, buffer),
		done:      make(chan struct{}),
	}
}

// Run consumes queued events until ctx is cancelled and the channel is
// drained. Publish failures are logged, never surfaced.
func (d *Dispatcher) Run(ctx context.Context) {
	defer close(d.done)
	for {
		select {
		case event := <-d.events:
			d.publish(event)
		case <-ctx.Done():
			for {
				select {
				case event := <-d.events:
					d.publish(event)
				default:
					return
				}
			}
		}
	}
}

// Wait blocks until Run has returned.
func (d *Dispatcher) Wait() { <-d.done }

func (d *Dispatcher) publish(event Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := d.publisher.Publish(ctx, event); err != nil {
		log.Printf("ERROR [notification.Dispatcher] publish %s failed: %v", event.Type, err)
	}
}

// NotifySignUp queues a welcome notification.
func (d *Dispatcher) NotifySignUp(email, fullName string) {
	d.enqueue(Event{Type: EventUserSignedUp, Email: email, FullName: fullName, OccurredAt: time.Now()})
}

// NotifySignIn queues a sign-in notification.
func (d *Dispatcher) NotifySignIn(email, fullName string) {
	d.enqueue(Event{Type: EventUserSignedIn, Email: email, FullName: fullName, OccurredAt: time.Now()})
}

func (d *Dispatcher) enqueue(event Event) {
	select {
	case d.events <- event:
	default:
		log.Printf("ERROR [notification.Dispatcher] buffer full, dropping %s for %s", event.Type, event.Email)
	}
}
