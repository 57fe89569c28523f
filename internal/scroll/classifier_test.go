package scroll

import (
	"math"
	"testing"
	"time"

	"github.com/unscroll/unscroll/internal/constants"
)

var base = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func at(ms int) time.Time { return base.Add(time.Duration(ms) * time.Millisecond) }

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		freq  float64
		speed float64
		want  constants.ScrollLabel
	}{
		{"idle", 0, 0, constants.ScrollMindful},
		{"slow reading", 1, 40, constants.ScrollMindful},
		{"boundary frequency is not compulsive", 2, 80, constants.ScrollMindful},
		{"frequent but slow", 2.5, 10, constants.ScrollCompulsive},
		{"fast but rare", 0.4, 90, constants.ScrollCompulsive},
		{"frequent and fast", 3.2, 150, constants.ScrollExcessive},
		{"boundary frequency stays compulsive", 3, 150, constants.ScrollCompulsive},
		{"very frequent but slow", 10, 100, constants.ScrollCompulsive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.freq, tt.speed); got != tt.want {
				t.Errorf("Classify(%v, %v) = %s, want %s", tt.freq, tt.speed, got, tt.want)
			}
		})
	}
}

func TestClassifierSpeed(t *testing.T) {
	c := NewClassifier(5 * time.Second)

	if s := c.Add(Event{At: at(0), Position: 100}); s != 0 {
		t.Errorf("first event speed = %v, want 0", s)
	}
	if s := c.Add(Event{At: at(500), Position: 0}); s != 200 {
		t.Errorf("speed = %v, want 200", s)
	}
	if s := c.Add(Event{At: at(500), Position: 50}); s != 0 {
		t.Errorf("zero time delta speed = %v, want 0", s)
	}
	if s := c.Add(Event{At: at(400), Position: 0}); s != 0 {
		t.Errorf("negative time delta speed = %v, want 0", s)
	}
}

func TestClassifierSnapshot(t *testing.T) {
	c := NewClassifier(5 * time.Second)
	// 20 events, 250ms apart, 50px each: 200 px/s after the first.
	for i := 0; i < 20; i++ {
		c.Add(Event{At: at(i * 250), Position: float64(i * 50)})
	}

	r := c.Snapshot(at(4750))
	if r.Events != 20 {
		t.Fatalf("Events = %d, want 20", r.Events)
	}
	if r.Frequency != 4 {
		t.Errorf("Frequency = %v, want 4", r.Frequency)
	}
	if want := 200.0 * 19 / 20; math.Abs(r.AvgSpeed-want) > 1e-9 {
		t.Errorf("AvgSpeed = %v, want %v", r.AvgSpeed, want)
	}
	if r.Label != constants.ScrollExcessive {
		t.Errorf("Label = %s, want excessive", r.Label)
	}

	// Ten seconds later everything has aged out.
	r = c.Snapshot(at(15000))
	if r.Events != 0 || r.Frequency != 0 || r.AvgSpeed != 0 || r.Label != constants.ScrollMindful {
		t.Errorf("aged-out snapshot = %+v", r)
	}
}

func TestClassifierPrunesAtWindowEdge(t *testing.T) {
	c := NewClassifier(time.Second)
	c.Add(Event{At: at(0)})
	c.Add(Event{At: at(600)})

	if r := c.Snapshot(at(1000)); r.Events != 1 {
		t.Errorf("event exactly one window old was kept: %+v", r)
	}
}

func TestClassifierLateEventAgesOutOnTime(t *testing.T) {
	c := NewClassifier(5 * time.Second)
	c.Add(Event{At: at(10000), Position: 0})
	c.Add(Event{At: at(12000), Position: 100})
	// Delivered after newer events but already outside the window.
	c.Add(Event{At: at(1000), Position: 50})
	// Late but still inside the window.
	c.Add(Event{At: at(9000), Position: 20})

	if r := c.Snapshot(at(12000)); r.Events != 3 {
		t.Errorf("Events = %d, want 3 (stale late event dropped)", r.Events)
	}
	if r := c.Snapshot(at(14500)); r.Events != 2 {
		t.Errorf("Events = %d, want 2 after the late in-window event expired", r.Events)
	}

	if s := c.Add(Event{At: at(13000), Position: 150}); s != 50 {
		t.Errorf("speed after late events = %v, want 50 against the latest event", s)
	}
}

func TestParseSource(t *testing.T) {
	for _, s := range []string{"wheel", "scroll", "touch", "key"} {
		if got, err := ParseSource(s); err != nil || string(got) != s {
			t.Errorf("ParseSource(%q) = %q, %v", s, got, err)
		}
	}
	if got, _ := ParseSource(""); got != SourceScroll {
		t.Errorf("ParseSource(\"\") = %q", got)
	}
	if _, err := ParseSource("mouse"); err == nil {
		t.Error("ParseSource(mouse) succeeded")
	}
}
