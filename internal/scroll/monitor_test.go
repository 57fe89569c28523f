package scroll

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/unscroll/unscroll/internal/config"
	"github.com/unscroll/unscroll/internal/constants"
	"github.com/unscroll/unscroll/internal/utils"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func testConfig() config.ScrollConfig {
	return config.DefaultConfig().Scroll
}

func TestMonitorRecord(t *testing.T) {
	clock := &manualClock{now: base}
	m := NewMonitor(testConfig(), clock)

	var fired []Intervention
	m.OnIntervention(func(iv Intervention) { fired = append(fired, iv) })

	var outcomes []Outcome
	for i := 0; i < 5; i++ {
		outcomes = append(outcomes, m.Record(Event{At: at(i * 100), Position: float64(i * 30)}))
	}

	if !outcomes[2].Fired || !outcomes[3].Suppressed || !outcomes[4].Suppressed {
		t.Fatalf("outcomes = %+v", outcomes)
	}
	if len(fired) != 1 {
		t.Fatalf("interventions = %d, want 1", len(fired))
	}

	clock.Set(at(500))
	if r := m.Reading(); r.Events != 3 {
		t.Errorf("suppressed events reached the classifier: %+v", r)
	}

	m.Reset()
	if r := m.Latest(); r.Events != 0 || r.Label != constants.ScrollMindful {
		t.Errorf("after Reset = %+v", r)
	}
}

func TestMonitorFillsMissingFields(t *testing.T) {
	m := NewMonitor(testConfig(), utils.FixedClock(base))
	m.Record(Event{Position: 10})
	if r := m.Reading(); r.Events != 1 || !r.At.Equal(base) {
		t.Errorf("Reading = %+v", r)
	}
}

func TestMonitorPublishesTicks(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := testConfig()
	cfg.Tick = 5 * time.Millisecond
	m := NewMonitor(cfg, utils.FixedClock(base))

	got := make(chan Reading, 1)
	unsubscribe := m.Subscribe(func(r Reading) {
		select {
		case got <- r:
		default:
		}
	})
	defer unsubscribe()

	if err := m.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := m.Start(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Start() error = %v", err)
	}

	select {
	case r := <-got:
		if r.Label != constants.ScrollMindful {
			t.Errorf("Label = %s", r.Label)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reading published")
	}

	m.Stop()
	m.Stop()
}

func TestMonitorStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := testConfig()
	cfg.Tick = time.Millisecond
	m := NewMonitor(cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	if err := m.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()
	// Stop still waits for the loop and clears state so a restart works.
	m.Stop()
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("restart: %v", err)
	}
	m.Stop()
}

func TestOnLabelChange(t *testing.T) {
	var got [][2]constants.ScrollLabel
	l := OnLabelChange(func(prev, next Reading) {
		got = append(got, [2]constants.ScrollLabel{prev.Label, next.Label})
	})

	for _, label := range []constants.ScrollLabel{
		constants.ScrollMindful,
		constants.ScrollCompulsive,
		constants.ScrollCompulsive,
		constants.ScrollExcessive,
		constants.ScrollMindful,
	} {
		l(Reading{Label: label})
	}

	want := [][2]constants.ScrollLabel{
		{constants.ScrollMindful, constants.ScrollCompulsive},
		{constants.ScrollCompulsive, constants.ScrollExcessive},
		{constants.ScrollExcessive, constants.ScrollMindful},
	}
	if len(got) != len(want) {
		t.Fatalf("transitions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("transition %d = %v, want %v", i, got[i], want[i])
		}
	}
}
