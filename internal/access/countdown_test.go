package access

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

// stepClock advances by step every time it is read.
type stepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func TestCountdownRollover(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := &stepClock{
		now:  time.Date(2026, 6, 1, 23, 59, 58, 0, time.UTC),
		step: time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var ticks []int
	rolled := make(chan struct{}, 1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		Countdown(ctx, clock, time.Millisecond,
			func(s int) {
				mu.Lock()
				ticks = append(ticks, s)
				mu.Unlock()
			},
			func() {
				select {
				case rolled <- struct{}{}:
				default:
				}
			},
		)
	}()

	select {
	case <-rolled:
	case <-time.After(5 * time.Second):
		t.Fatal("rollover never fired")
	}
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	if len(ticks) < 3 {
		t.Fatalf("ticks = %v, want at least 3", ticks)
	}
	want := []int{2, 1, 0}
	for i, w := range want {
		if ticks[i] != w {
			t.Errorf("tick %d = %d, want %d (all ticks %v)", i, ticks[i], w, ticks)
		}
	}
}

func TestCountdownStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := &stepClock{now: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		Countdown(ctx, clock, 10*time.Millisecond, nil, nil)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Countdown did not return after cancel")
	}
}
