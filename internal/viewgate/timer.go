// Package viewgate measures how long a video has been open so completion
// can be gated on a minimum watch time.
package viewgate

import (
	"context"
	"sync"
	"time"
)

// DefaultMinimum is the watch time required before a video can be
// marked complete.
const DefaultMinimum = 25 * time.Second

// Timer is a restartable wall-clock accumulator. At most one tick loop
// runs per Timer; Start while running stops the previous loop first.
type Timer struct {
	mu       sync.Mutex
	minimum  time.Duration
	interval time.Duration
	now      func() time.Time
	onTick   func(elapsed int)

	origin  time.Time
	elapsed int
	running bool
	cancel  context.CancelFunc
}

// Option configures a Timer.
type Option func(*Timer)

// WithMinimum sets the required watch time.
func WithMinimum(d time.Duration) Option {
	return func(t *Timer) {
		if d >= 0 {
			t.minimum = d
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(t *Timer) { t.now = now }
}

// WithInterval overrides the one second tick interval.
func WithInterval(d time.Duration) Option {
	return func(t *Timer) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithOnTick registers a callback invoked with the elapsed seconds after
// every tick. It runs on the tick goroutine.
func WithOnTick(fn func(elapsed int)) Option {
	return func(t *Timer) { t.onTick = fn }
}

// New creates a stopped Timer.
func New(opts ...Option) *Timer {
	t := &Timer{
		minimum:  DefaultMinimum,
		interval: time.Second,
		now:      time.Now,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Start resets elapsed time to zero and begins ticking.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.origin = t.now()
	t.elapsed = 0
	t.running = true

	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	go t.loop(ctx)
}

func (t *Timer) loop(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.mu.Lock()
			if ctx.Err() != nil {
				t.mu.Unlock()
				return
			}
			t.elapsed = t.sinceOrigin()
			elapsed, cb := t.elapsed, t.onTick
			t.mu.Unlock()

			if cb != nil {
				cb(elapsed)
			}
		}
	}
}

// Stop halts ticking and returns the final elapsed seconds. Stopping a
// stopped timer returns the last value.
func (t *Timer) Stop() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	return t.elapsed
}

func (t *Timer) stopLocked() {
	if !t.running {
		return
	}
	t.elapsed = t.sinceOrigin()
	t.running = false
	t.cancel()
	t.cancel = nil
}

func (t *Timer) sinceOrigin() int {
	d := t.now().Sub(t.origin)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

// Elapsed returns whole seconds since Start, or the stopped value.
func (t *Timer) Elapsed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return t.sinceOrigin()
	}
	return t.elapsed
}

// Running reports whether the timer is ticking.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Minimum returns the required watch time in seconds.
func (t *Timer) Minimum() int {
	return int(t.minimum / time.Second)
}

// HasMetMinimum reports whether the required watch time has passed.
func (t *Timer) HasMetMinimum() bool {
	return t.Elapsed() >= t.Minimum()
}

// Remaining returns the seconds left before the minimum is met.
func (t *Timer) Remaining() int {
	return max(t.Minimum()-t.Elapsed(), 0)
}
