// Package scroll classifies raw scroll activity and interrupts bursts of it.
package scroll

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/unscroll/unscroll/internal/constants"
)

// Source identifies what produced an event.
type Source string

const (
	SourceWheel  Source = "wheel"
	SourceScroll Source = "scroll"
	SourceTouch  Source = "touch"
	SourceKey    Source = "key"
)

// ParseSource validates a source name. Empty means scroll.
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case "":
		return SourceScroll, nil
	case SourceWheel, SourceScroll, SourceTouch, SourceKey:
		return Source(s), nil
	}
	return "", fmt.Errorf("unknown scroll source %q", s)
}

// Event is one raw scroll observation. Position is in pixels.
type Event struct {
	At       time.Time `json:"at"`
	Position float64   `json:"position"`
	Source   Source    `json:"source"`
}

// Classification thresholds, in events per second and pixels per second.
const (
	ExcessiveFrequency  = 3.0
	ExcessiveSpeed      = 100.0
	CompulsiveFrequency = 2.0
	CompulsiveSpeed     = 80.0
)

// Classify labels a frequency and average speed.
func Classify(freq, avgSpeed float64) constants.ScrollLabel {
	switch {
	case freq > ExcessiveFrequency && avgSpeed > ExcessiveSpeed:
		return constants.ScrollExcessive
	case freq > CompulsiveFrequency || avgSpeed > CompulsiveSpeed:
		return constants.ScrollCompulsive
	default:
		return constants.ScrollMindful
	}
}

// Reading is the classifier state at one instant.
type Reading struct {
	At        time.Time             `json:"at"`
	Events    int                   `json:"events"`
	Frequency float64               `json:"frequency"`
	AvgSpeed  float64               `json:"avg_speed"`
	Label     constants.ScrollLabel `json:"label"`
}

type sample struct {
	at    time.Time
	speed float64
}

// Classifier keeps a rolling window of events. It is not safe for
// concurrent use; Monitor serialises access.
type Classifier struct {
	window  time.Duration
	samples []sample
	last    *Event
}

func NewClassifier(window time.Duration) *Classifier {
	if window <= 0 {
		window = constants.DefaultScrollWindow
	}
	return &Classifier{window: window}
}

// Add records e and returns its speed relative to the latest earlier event.
// Events older than the latest one are kept in time order with speed 0.
func (c *Classifier) Add(e Event) float64 {
	speed := 0.0
	if c.last != nil && e.At.Before(c.last.At) {
		i := sort.Search(len(c.samples), func(i int) bool { return c.samples[i].at.After(e.At) })
		c.samples = append(c.samples, sample{})
		copy(c.samples[i+1:], c.samples[i:])
		c.samples[i] = sample{at: e.At}
		return 0
	}
	if c.last != nil {
		if dt := e.At.Sub(c.last.At).Seconds(); dt > 0 {
			speed = math.Abs(e.Position-c.last.Position) / dt
		}
	}
	prev := e
	c.last = &prev
	c.samples = append(c.samples, sample{at: e.At, speed: speed})
	return speed
}

// Snapshot drops events older than the window and reports the rest.
func (c *Classifier) Snapshot(now time.Time) Reading {
	c.prune(now)

	r := Reading{At: now, Events: len(c.samples)}
	if r.Events > 0 {
		total := 0.0
		for _, s := range c.samples {
			total += s.speed
		}
		r.AvgSpeed = total / float64(r.Events)
	}
	r.Frequency = float64(r.Events) / c.window.Seconds()
	r.Label = Classify(r.Frequency, r.AvgSpeed)
	return r
}

// Reset forgets every event.
func (c *Classifier) Reset() {
	c.samples = nil
	c.last = nil
}

func (c *Classifier) prune(now time.Time) {
	cutoff := now.Add(-c.window)
	i := 0
	for i < len(c.samples) && !c.samples[i].at.After(cutoff) {
		i++
	}
	if i > 0 {
		c.samples = append(c.samples[:0], c.samples[i:]...)
	}
}
