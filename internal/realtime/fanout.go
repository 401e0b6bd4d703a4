package realtime

import (
	"context"
	"errors"
	"sync"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
)

type Publisher interface {
	Publish(ctx context.Context, event models.PaymentEvent) error
}

// Fanout hands every event to each registered publisher in order. Publishers can be added after
// Fanout is given to its producers, which lets consumers that depend on the producer register late.
type Fanout struct {
	mu         sync.RWMutex
	publishers []Publisher
}

func NewFanout(publishers ...Publisher) *Fanout {
	return &Fanout{publishers: publishers}
}

func (f *Fanout) Add(publishers ...Publisher) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.publishers = append(f.publishers, publishers...)
}

func (f *Fanout) Publish(ctx context.Context, event models.PaymentEvent) error {
	f.mu.RLock()
	publishers := append([]Publisher(nil), f.publishers...)
	f.mu.RUnlock()

	var errs []error

	for _, p := range publishers {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
