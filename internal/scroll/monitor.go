package scroll

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/unscroll/unscroll/internal/config"
	"github.com/unscroll/unscroll/internal/constants"
	"github.com/unscroll/unscroll/internal/logger"
	"github.com/unscroll/unscroll/internal/utils"
)

var ErrAlreadyRunning = errors.New("scroll monitor already running")

// Listener receives a reading on every tick.
type Listener func(Reading)

// OnLabelChange adapts fn to a Listener that only fires when the label
// differs from the previous tick's. The first tick is compared against
// mindful. Ticks arrive on one goroutine, so the returned Listener keeps
// its state unguarded.
func OnLabelChange(fn func(prev, next Reading)) Listener {
	prev := Reading{Label: constants.ScrollMindful}
	return func(r Reading) {
		if r.Label == prev.Label {
			return
		}
		old := prev
		prev = r
		fn(old, r)
	}
}

// InterventionFunc is called when a burst is intercepted.
type InterventionFunc func(Intervention)

// Monitor owns a Classifier and an Interceptor, publishes a Reading every
// tick while started, and is safe for concurrent use.
type Monitor struct {
	clock utils.Clock
	tick  time.Duration

	mu          sync.Mutex
	classifier  *Classifier
	interceptor *Interceptor
	latest      Reading
	nextID      int
	listeners   map[int]Listener
	onIntervene InterventionFunc

	cancel context.CancelFunc
	done   chan struct{}
}

// NewMonitor builds a stopped monitor from the scroll settings. A nil clock
// uses the system clock.
func NewMonitor(cfg config.ScrollConfig, clock utils.Clock) *Monitor {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	tick := cfg.Tick
	if tick <= 0 {
		tick = constants.DefaultScrollTick
	}
	m := &Monitor{
		clock:       clock,
		tick:        tick,
		classifier:  NewClassifier(cfg.Window),
		interceptor: NewInterceptor(cfg.Sensitivity, cfg.Debounce, cfg.Cooldown),
		listeners:   make(map[int]Listener),
	}
	m.latest = m.classifier.Snapshot(clock.Now())
	return m
}

// OnIntervention sets the burst callback. It runs on the goroutine that
// called Record.
func (m *Monitor) OnIntervention(fn InterventionFunc) {
	m.mu.Lock()
	m.onIntervene = fn
	m.mu.Unlock()
}

// Record feeds one event to both the interceptor and, unless suppressed,
// the classifier. A zero event time is replaced with the clock's.
func (m *Monitor) Record(e Event) Outcome {
	if e.At.IsZero() {
		e.At = m.clock.Now()
	}
	if e.Source == "" {
		e.Source = SourceScroll
	}

	m.mu.Lock()
	out, iv := m.interceptor.Observe(e.At)
	if !out.Suppressed {
		m.classifier.Add(e)
	}
	fn := m.onIntervene
	m.mu.Unlock()

	if out.Fired {
		logger.Debug("Scroll burst intercepted", "events", iv.Events, "cooldown_until", iv.CooldownUntil)
		if fn != nil {
			fn(iv)
		}
	}
	return out
}

// Reading classifies the window as of now.
func (m *Monitor) Reading() Reading {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latest = m.classifier.Snapshot(m.clock.Now())
	return m.latest
}

// Latest returns the reading published on the most recent tick.
func (m *Monitor) Latest() Reading {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latest
}

// Subscribe registers fn for tick readings and returns its cancel function.
func (m *Monitor) Subscribe(fn Listener) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.listeners, id)
			m.mu.Unlock()
		})
	}
}

// Reset clears the window, the burst count and any cooldown.
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.classifier.Reset()
	m.interceptor.Reset()
	m.latest = m.classifier.Snapshot(m.clock.Now())
}

// Start begins ticking until ctx is done or Stop is called.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.cancel != nil {
		m.mu.Unlock()
		return ErrAlreadyRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	m.cancel = cancel
	m.done = done
	m.mu.Unlock()

	go m.run(ctx, done)
	return nil
}

// Stop cancels the tick loop and waits for it to exit. It is safe to call
// on a stopped monitor.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (m *Monitor) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.publish(m.Reading())
		}
	}
}

func (m *Monitor) publish(r Reading) {
	m.mu.Lock()
	fns := make([]Listener, 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(r)
	}
}
