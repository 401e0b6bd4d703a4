package payments

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
)

// StatusCheck asks the gateway for the current status of one payment.
type StatusCheck func(ctx context.Context) (models.PaymentStatus, error)

type StopReason string

const (
	StopNone        StopReason = ""
	StopTerminal    StopReason = "terminal"
	StopExpired     StopReason = "expired"
	StopCancelled   StopReason = "cancelled"
	StopMaxAttempts StopReason = "max_attempts"
)

// Update is emitted on every status check and countdown tick. Final is set exactly once.
type Update struct {
	Key              string
	Status           models.PaymentStatus
	SecondsRemaining int
	Attempts         int
	Final            bool
	Reason           StopReason
}

type PollerConfig struct {
	Interval    time.Duration
	Tick        time.Duration
	Window      time.Duration
	MaxAttempts int
}

// DefaultPollerConfig checks every 5s with a 1s countdown over a 30 minute window.
func DefaultPollerConfig() PollerConfig {
	return PollerConfig{
		Interval:    5 * time.Second,
		Tick:        time.Second,
		Window:      30 * time.Minute,
		MaxAttempts: 360,
	}
}

// PixPoller watches one PIX charge until it settles, expires, is cancelled or runs out of attempts.
type PixPoller struct {
	key      string
	check    StatusCheck
	cfg      PollerConfig
	onUpdate func(Update)
	deadline time.Time

	cancel   context.CancelFunc
	checkNow chan struct{}
	done     chan struct{}

	mu       sync.Mutex
	status   models.PaymentStatus
	attempts int
	reason   StopReason
}

func newPixPoller(key string, cfg PollerConfig, check StatusCheck, onUpdate func(Update)) *PixPoller {
	if cfg.Interval <= 0 || cfg.Tick <= 0 || cfg.Window <= 0 {
		defaults := DefaultPollerConfig()
		if cfg.Interval <= 0 {
			cfg.Interval = defaults.Interval
		}
		if cfg.Tick <= 0 {
			cfg.Tick = defaults.Tick
		}
		if cfg.Window <= 0 {
			cfg.Window = defaults.Window
		}
	}

	if onUpdate == nil {
		onUpdate = func(Update) {}
	}

	return &PixPoller{
		key:      key,
		check:    check,
		cfg:      cfg,
		onUpdate: onUpdate,
		deadline: time.Now().Add(cfg.Window),
		checkNow: make(chan struct{}, 1),
		done:     make(chan struct{}),
		status:   models.PaymentStatusPending,
	}
}

func (p *PixPoller) start(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	p.cancel = cancel

	go p.run(ctx)
}

func (p *PixPoller) run(ctx context.Context) {
	defer close(p.done)
	defer p.cancel()

	poll := time.NewTicker(p.cfg.Interval)
	defer poll.Stop()

	countdown := time.NewTicker(p.cfg.Tick)
	defer countdown.Stop()

	for {
		select {
		case <-ctx.Done():
			p.finish(StopCancelled)
			return
		case <-countdown.C:
			if p.remaining() <= 0 {
				p.finish(StopExpired)
				return
			}

			p.emit(false)
		case <-poll.C:
			if p.checkOnce(ctx) {
				return
			}
		case <-p.checkNow:
			if p.checkOnce(ctx) {
				return
			}
		}
	}
}

// checkOnce reports whether the poller has stopped.
func (p *PixPoller) checkOnce(ctx context.Context) bool {
	status, err := p.check(ctx)

	p.mu.Lock()
	p.attempts++
	attempts := p.attempts
	if err == nil {
		p.status = status
	}
	p.mu.Unlock()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			p.finish(StopCancelled)
			return true
		}

		slog.Warn("PIX status check failed",
			slog.String("payment", p.key),
			slog.Int("attempt", attempts),
			slog.String("error", err.Error()))
	}

	if err == nil && status.IsTerminal() {
		p.finish(StopTerminal)
		return true
	}

	if p.cfg.MaxAttempts > 0 && attempts >= p.cfg.MaxAttempts {
		p.finish(StopMaxAttempts)
		return true
	}

	p.emit(false)

	return false
}

func (p *PixPoller) finish(reason StopReason) {
	p.mu.Lock()
	p.reason = reason
	p.mu.Unlock()

	p.emit(true)
}

func (p *PixPoller) emit(final bool) {
	p.mu.Lock()
	update := Update{
		Key:              p.key,
		Status:           p.status,
		SecondsRemaining: p.secondsRemaining(),
		Attempts:         p.attempts,
		Final:            final,
		Reason:           p.reason,
	}
	p.mu.Unlock()

	p.onUpdate(update)
}

func (p *PixPoller) remaining() time.Duration {
	return time.Until(p.deadline)
}

func (p *PixPoller) secondsRemaining() int {
	remaining := p.remaining()
	if remaining <= 0 {
		return 0
	}

	return int(remaining.Round(time.Second) / time.Second)
}

// CheckNow requests an immediate status check. Calls while one is queued are dropped.
func (p *PixPoller) CheckNow() {
	select {
	case p.checkNow <- struct{}{}:
	default:
	}
}

func (p *PixPoller) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
}

func (p *PixPoller) Done() <-chan struct{} {
	return p.done
}

func (p *PixPoller) Snapshot() Update {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Update{
		Key:              p.key,
		Status:           p.status,
		SecondsRemaining: p.secondsRemaining(),
		Attempts:         p.attempts,
		Final:            p.reason != StopNone,
		Reason:           p.reason,
	}
}

// Registry owns every running poller so they can all be stopped at shutdown.
type Registry struct {
	cfg    PollerConfig
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	pollers map[string]*PixPoller
	closed  bool
	wg      sync.WaitGroup
}

var ErrRegistryClosed = errors.New("poller registry is closed")

func NewRegistry(cfg PollerConfig) *Registry {
	ctx, cancel := context.WithCancel(context.Background())

	return &Registry{
		cfg:     cfg,
		ctx:     ctx,
		cancel:  cancel,
		pollers: make(map[string]*PixPoller),
	}
}

// Start begins watching key. A poller already running for key is returned as is.
func (r *Registry) Start(key string, check StatusCheck, onUpdate func(Update)) (*PixPoller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRegistryClosed
	}

	if existing, ok := r.pollers[key]; ok {
		return existing, nil
	}

	poller := newPixPoller(key, r.cfg, check, onUpdate)
	r.pollers[key] = poller
	poller.start(r.ctx)

	r.wg.Add(1)

	go func() {
		defer r.wg.Done()
		<-poller.Done()

		r.mu.Lock()
		if r.pollers[key] == poller {
			delete(r.pollers, key)
		}
		r.mu.Unlock()
	}()

	return poller, nil
}

func (r *Registry) Get(key string) (*PixPoller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	poller, ok := r.pollers[key]

	return poller, ok
}

func (r *Registry) Stop(key string) {
	if poller, ok := r.Get(key); ok {
		poller.Stop()
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.pollers)
}

// Close stops every poller and waits for them to exit.
func (r *Registry) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	r.cancel()
	r.wg.Wait()

	return nil
}
