package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultChannel = "storefront:payment-events"

	subscriberBuffer = 16
)

type subscriber struct {
	events chan models.PaymentEvent
	accept func(models.PaymentEvent) bool
}

// Broker publishes payment events on a Redis channel and fans the channel out to the
// subscribers of this replica. Slow subscribers drop events instead of blocking the others.
type Broker struct {
	client  redis.UniversalClient
	channel string

	mu     sync.Mutex
	subs   map[*subscriber]struct{}
	closed bool

	cancel context.CancelFunc
	done   chan struct{}
}

func NewBroker(client redis.UniversalClient, channel string) *Broker {
	if channel == "" {
		channel = DefaultChannel
	}

	return &Broker{
		client:  client,
		channel: channel,
		subs:    make(map[*subscriber]struct{}),
	}
}

func (b *Broker) Publish(ctx context.Context, event models.PaymentEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal payment event: %w", err)
	}

	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish payment event: %w", err)
	}

	return nil
}

// Start subscribes to the channel and delivers messages until Close.
func (b *Broker) Start(ctx context.Context) error {
	pubsub := b.client.Subscribe(ctx, b.channel)

	// wait for the subscription confirmation so Start fails fast when redis is down
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()

		return fmt.Errorf("failed to subscribe to %s: %w", b.channel, err)
	}

	ctx, cancel := context.WithCancel(ctx)

	b.mu.Lock()
	b.cancel = cancel
	b.done = make(chan struct{})
	b.mu.Unlock()

	go func() {
		defer close(b.done)
		defer pubsub.Close()

		messages := pubsub.Channel()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}

				b.deliver(msg.Payload)
			}
		}
	}()

	return nil
}

func (b *Broker) deliver(payload string) {
	var event models.PaymentEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		slog.Warn("Dropping malformed payment event", slog.String("error", err.Error()))
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for sub := range b.subs {
		if sub.accept != nil && !sub.accept(event) {
			continue
		}

		select {
		case sub.events <- event:
		default:
			slog.Warn("Subscriber is slow, dropping payment event", slog.String("orderId", event.OrderID.String()))
		}
	}
}

// Subscribe registers a local listener. The returned func unsubscribes and closes the channel.
func (b *Broker) Subscribe(accept func(models.PaymentEvent) bool) (<-chan models.PaymentEvent, func()) {
	sub := &subscriber{
		events: make(chan models.PaymentEvent, subscriberBuffer),
		accept: accept,
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(sub.events)

		return sub.events, func() {}
	}
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	var once sync.Once

	return sub.events, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			if _, ok := b.subs[sub]; ok {
				delete(b.subs, sub)
				close(sub.events)
			}
		})
	}
}

func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.subs)
}

// Close stops the subscription and closes every subscriber channel.
func (b *Broker) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}

	b.closed = true
	cancel, done := b.cancel, b.done

	for sub := range b.subs {
		delete(b.subs, sub)
		close(sub.events)
	}
	b.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}

	return nil
}
