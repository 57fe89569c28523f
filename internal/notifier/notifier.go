// Package notifier delivers toasts: short user-facing messages about
// progress, unlocks and interventions.
package notifier

import (
	"sync"

	"github.com/unscroll/unscroll/internal/constants"
	"github.com/unscroll/unscroll/internal/logger"
)

// Toast is one notification.
type Toast struct {
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Severity    constants.Severity `json:"severity"`
}

// Text is the single-line form used by sinks that only show text.
func (t Toast) Text() string {
	if t.Description == "" {
		return t.Title
	}
	return t.Title + ": " + t.Description
}

// Sink receives toasts. Notify is fire and forget and must not block for
// long.
type Sink interface {
	Notify(Toast)
}

// Func adapts a function to Sink.
type Func func(Toast)

func (f Func) Notify(t Toast) { f(t) }

// Discard drops every toast.
var Discard Sink = Func(func(Toast) {})

// LogSink writes toasts to the application log.
type LogSink struct{}

func (LogSink) Notify(t Toast) {
	switch t.Severity {
	case constants.SeverityWarning:
		logger.Warn(t.Title, "description", t.Description)
	default:
		logger.Info(t.Title, "description", t.Description, "severity", t.Severity)
	}
}

// Multi fans a toast out to every sink in order. Nil sinks are skipped.
type Multi []Sink

func (m Multi) Notify(t Toast) {
	for _, s := range m {
		if s != nil {
			s.Notify(t)
		}
	}
}

// Recorder keeps toasts in memory until drained. The TUI and the HTTP API
// use it to surface toasts produced by the progress service.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) Notify(t Toast) {
	r.mu.Lock()
	r.toasts = append(r.toasts, t)
	r.mu.Unlock()
}

// Drain returns every recorded toast and forgets them.
func (r *Recorder) Drain() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.toasts
	r.toasts = nil
	return out
}

// Len is the number of undrained toasts.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.toasts)
}
