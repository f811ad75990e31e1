package viewgate

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func TestTimer_Gate(t *testing.T) {
	clk := newClock()
	tm := New(WithClock(clk.now))
	assert.False(t, tm.Running())
	assert.Equal(t, 0, tm.Stop(), "stop when never started")

	tm.Start()
	defer tm.Stop()
	assert.True(t, tm.Running())
	assert.False(t, tm.HasMetMinimum())
	assert.Equal(t, 25, tm.Remaining())

	clk.advance(24 * time.Second)
	assert.Equal(t, 24, tm.Elapsed())
	assert.False(t, tm.HasMetMinimum())
	assert.Equal(t, 1, tm.Remaining())

	clk.advance(time.Second)
	assert.True(t, tm.HasMetMinimum())
	assert.Equal(t, 0, tm.Remaining())
}

func TestTimer_StopIsIdempotent(t *testing.T) {
	clk := newClock()
	tm := New(WithClock(clk.now), WithMinimum(10*time.Second))
	tm.Start()
	clk.advance(12 * time.Second)

	assert.Equal(t, 12, tm.Stop())
	clk.advance(time.Minute)
	assert.Equal(t, 12, tm.Stop())
	assert.Equal(t, 12, tm.Elapsed())
	assert.True(t, tm.HasMetMinimum())
	assert.False(t, tm.Running())
}

func TestTimer_RestartResets(t *testing.T) {
	clk := newClock()
	tm := New(WithClock(clk.now))
	tm.Start()
	clk.advance(30 * time.Second)
	require.True(t, tm.HasMetMinimum())

	tm.Start()
	defer tm.Stop()
	assert.Equal(t, 0, tm.Elapsed())
	assert.False(t, tm.HasMetMinimum())
	assert.True(t, tm.Running())
}

func TestTimer_OnTick(t *testing.T) {
	clk := newClock()
	ticks := make(chan int, 16)
	tm := New(
		WithClock(clk.now),
		WithInterval(5*time.Millisecond),
		WithOnTick(func(elapsed int) {
			select {
			case ticks <- elapsed:
			default:
			}
		}),
	)

	tm.Start()
	clk.advance(3 * time.Second)

	deadline := time.After(2 * time.Second)
	for seen := false; !seen; {
		select {
		case got := <-ticks:
			seen = got == 3
		case <-deadline:
			t.Fatal("no tick with elapsed 3 received")
		}
	}

	tm.Stop()
	time.Sleep(20 * time.Millisecond)
	for len(ticks) > 0 {
		<-ticks
	}
	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, ticks, "no ticks after stop")
}
