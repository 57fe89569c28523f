package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unscroll/unscroll/internal/config"
	"github.com/unscroll/unscroll/internal/constants"
	"github.com/unscroll/unscroll/internal/notifier"
	"github.com/unscroll/unscroll/internal/progress"
	"github.com/unscroll/unscroll/internal/scroll"
	"github.com/unscroll/unscroll/internal/storage"
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

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestModel(t *testing.T, opts ...progress.Option) (Model, *manualClock) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "unscroll.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	clock := &manualClock{now: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)}
	toasts := &notifier.Recorder{}
	base := []progress.Option{progress.WithClock(clock), progress.WithSink(toasts)}
	svc := progress.New(storage.NewRecords(store), append(base, opts...)...)

	cfg := config.DefaultConfig().Scroll
	monitor := scroll.NewMonitor(cfg, clock)

	m := NewModel(svc, monitor, toasts, clock)
	m.applyLoaded(m.load())
	return m, clock
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func wheelDown() tea.MouseMsg {
	return tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress}
}

func TestFirstLoadShowsDayOne(t *testing.T) {
	m, _ := newTestModel(t)

	if got := m.today.Decision.Record.CurrentDay; got != 1 {
		t.Fatalf("current day = %d, want 1", got)
	}
	if m.today.Decision.Locked {
		t.Error("day 1 should not start locked")
	}
	view := m.View()
	if !strings.Contains(view, "Day 1 of 30") {
		t.Errorf("view missing day header:\n%s", view)
	}
	// 10:00 UTC leaves 14 hours in the day
	if !strings.Contains(view, "14:00:00") {
		t.Errorf("view missing countdown:\n%s", view)
	}
}

func TestTabsCycle(t *testing.T) {
	m, _ := newTestModel(t)

	want := []constants.SessionState{constants.StateStats, constants.StateFocus, constants.StateToday}
	for _, w := range want {
		m = update(t, m, keyMsg("tab"))
		if m.state != w {
			t.Fatalf("after tab state = %d, want %d", m.state, w)
		}
	}

	m = update(t, m, keyMsg("shift+tab"))
	if m.state != constants.StateFocus {
		t.Errorf("after shift+tab state = %d, want focus", m.state)
	}
}

func TestSubmitCompletionLocksDay(t *testing.T) {
	m, _ := newTestModel(t)

	next, _ := m.openCompleteForm(false)
	m = next.(Model)
	if m.state != constants.StateComplete {
		t.Fatalf("state = %d, want complete form", m.state)
	}

	m.completeForm.Status = "yes"
	m.completeForm.Reflection = "Left my phone in the hall."
	if err := m.submitCompletion(); err != nil {
		t.Fatalf("submitCompletion: %v", err)
	}
	m.applyLoaded(m.load())

	if !m.today.Decision.Locked {
		t.Fatal("day should be locked after completion")
	}
	if m.today.Stats.DaysCompleted != 1 {
		t.Errorf("days completed = %d, want 1", m.today.Stats.DaysCompleted)
	}
	if !strings.Contains(m.toast, "Day 1 complete") {
		t.Errorf("toast = %q, want day complete", m.toast)
	}

	// A second attempt is refused without opening the form
	m.state = constants.StateToday
	m = update(t, m, keyMsg("c"))
	if m.state != constants.StateToday {
		t.Errorf("locked day opened the form")
	}
	if !strings.Contains(m.notice, "unlocks in") {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestSubmitCompletionRejectsBadMinutes(t *testing.T) {
	m, _ := newTestModel(t)
	next, _ := m.openCompleteForm(false)
	m = next.(Model)

	m.completeForm.Minutes = "-5"
	if err := m.submitCompletion(); err == nil {
		t.Fatal("expected negative minutes to be rejected")
	}
	m.applyLoaded(m.load())
	if m.today.Decision.Locked {
		t.Error("rejected submission must not lock the day")
	}
}

func TestValidateMinutes(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"", false},
		{"  ", false},
		{"0", false},
		{"45", false},
		{"-1", true},
		{"ten", true},
	}
	for _, tt := range tests {
		if err := validateMinutes(tt.in); (err != nil) != tt.wantErr {
			t.Errorf("validateMinutes(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestFocusBurstShowsIntervention(t *testing.T) {
	m, clock := newTestModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m.state = constants.StateFocus

	m = update(t, m, wheelDown())
	clock.Advance(200 * time.Millisecond)
	m = update(t, m, wheelDown())
	if m.intervention != nil {
		t.Fatal("intervention fired early")
	}
	offset := m.feed.YOffset

	clock.Advance(200 * time.Millisecond)
	m = update(t, m, wheelDown())
	if m.intervention == nil {
		t.Fatal("third wheel event should intervene")
	}
	if m.feed.YOffset != offset {
		t.Errorf("feed moved on the intervening event: %d -> %d", offset, m.feed.YOffset)
	}
	if !strings.Contains(m.View(), "Pause.") {
		t.Error("view missing intervention overlay")
	}

	// Scrolling is held during the cooldown
	clock.Advance(500 * time.Millisecond)
	m = update(t, m, wheelDown())
	if m.feed.YOffset != offset {
		t.Errorf("feed moved during cooldown")
	}

	// The overlay clears once the cooldown has passed
	clock.Advance(constants.DefaultScrollCooldown)
	m = update(t, m, tickMsg(clock.Now()))
	if m.intervention != nil {
		t.Error("intervention should clear after the cooldown")
	}
}

func TestFocusDismiss(t *testing.T) {
	m, _ := newTestModel(t)
	m.state = constants.StateFocus
	m.intervention = &scroll.Intervention{Events: 3}

	m = update(t, m, keyMsg("esc"))
	if m.intervention != nil {
		t.Error("esc should dismiss the intervention")
	}
}

func TestConfirmReset(t *testing.T) {
	var labels []string
	backup := func(label string) (string, error) {
		labels = append(labels, label)
		return "/tmp/unscroll-backup.json", nil
	}
	m, _ := newTestModel(t, progress.WithBackup(backup))
	m.completeForm = &CompleteFormModel{Status: "yes"}
	if err := m.submitCompletion(); err != nil {
		t.Fatal(err)
	}

	m = update(t, m, keyMsg("R"))
	if m.state != constants.StateConfirmReset {
		t.Fatalf("state = %d, want confirm reset", m.state)
	}
	m = update(t, m, keyMsg("n"))
	if m.state != constants.StateToday || len(labels) != 0 {
		t.Fatalf("cancel should return without resetting (state %d, backups %v)", m.state, labels)
	}

	m = update(t, m, keyMsg("R"))
	m = update(t, m, keyMsg("y"))
	if len(labels) != 1 || labels[0] != "pre-reset" {
		t.Fatalf("backups = %v, want one pre-reset", labels)
	}
	if !strings.Contains(m.notice, "/tmp/unscroll-backup.json") {
		t.Errorf("notice = %q", m.notice)
	}

	m.applyLoaded(m.load())
	if m.today.Stats.DaysCompleted != 0 {
		t.Errorf("days completed after reset = %d", m.today.Stats.DaysCompleted)
	}
}

func TestResetFailureKeepsProgress(t *testing.T) {
	backup := func(string) (string, error) { return "", errors.New("disk full") }
	m, _ := newTestModel(t, progress.WithBackup(backup))
	m.completeForm = &CompleteFormModel{Status: "yes"}
	if err := m.submitCompletion(); err != nil {
		t.Fatal(err)
	}

	m = update(t, m, keyMsg("R"))
	m = update(t, m, keyMsg("y"))
	if m.err == nil {
		t.Fatal("expected reset error")
	}
	m.applyLoaded(m.load())
	if m.today.Stats.DaysCompleted != 1 {
		t.Errorf("progress lost after failed reset")
	}
}

func TestStatsView(t *testing.T) {
	m, _ := newTestModel(t)
	m.completeForm = &CompleteFormModel{Status: "yes", Reflection: "Quiet morning."}
	if err := m.submitCompletion(); err != nil {
		t.Fatal(err)
	}
	m.applyLoaded(m.load())
	m.state = constants.StateStats

	view := m.View()
	for _, want := range []string{"Level", "Days completed   1 / 30", "Achievements"} {
		if !strings.Contains(view, want) {
			t.Errorf("stats view missing %q", want)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := map[int]string{0: "0m", 45: "45m", 60: "1h 00m", 135: "2h 15m"}
	for in, want := range tests {
		if got := formatMinutes(in); got != want {
			t.Errorf("formatMinutes(%d) = %q, want %q", in, got, want)
		}
	}
}
