package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	levelbar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"

	"github.com/unscroll/unscroll/internal/catalog"
	"github.com/unscroll/unscroll/internal/constants"
	"github.com/unscroll/unscroll/internal/models"
	"github.com/unscroll/unscroll/internal/notifier"
	"github.com/unscroll/unscroll/internal/progress"
	"github.com/unscroll/unscroll/internal/scroll"
	"github.com/unscroll/unscroll/internal/utils"
)

// toastTTL is how long a toast stays on the status line.
const toastTTL = 4 * time.Second

// wheelLines is how far one wheel notch moves the focus feed.
const wheelLines = 3

type CompleteFormModel struct {
	Status     string
	Reflection string
	Minutes    string
}

type Model struct {
	svc     *progress.Service
	monitor *scroll.Monitor
	toasts  *notifier.Recorder
	clock   utils.Clock

	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	bar           levelbar.Model
	feed          viewport.Model
	renderer      *glamour.TermRenderer

	form         *huh.Form
	completeForm *CompleteFormModel
	revise       bool
	formError    string

	today        progress.Today
	entries      []models.DayProgressEntry
	activityView string
	countdown    int

	reading       scroll.Reading
	intervention  *scroll.Intervention
	interventions chan scroll.Intervention

	toast      string
	toastUntil time.Time
	notice     string
	err        error

	width    int
	height   int
	quitting bool
}

// NewModel wires the TUI to a progress service and a scroll monitor. Toasts
// raised by the service must be delivered to toasts for them to appear on
// the status line.
func NewModel(svc *progress.Service, monitor *scroll.Monitor, toasts *notifier.Recorder, clock utils.Clock) Model {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	if toasts == nil {
		toasts = &notifier.Recorder{}
	}

	ch := make(chan scroll.Intervention, 1)
	monitor.OnIntervention(func(iv scroll.Intervention) {
		select {
		case ch <- iv:
		default:
		}
	})

	feed := viewport.New(80, 20)
	feed.SetContent(feedContent())

	m := Model{
		svc:           svc,
		monitor:       monitor,
		toasts:        toasts,
		clock:         clock,
		state:         constants.StateToday,
		keys:          DefaultKeyMap,
		help:          help.New(),
		bar:           levelbar.New(levelbar.WithDefaultGradient()),
		feed:          feed,
		interventions: ch,
		countdown:     utils.SecondsUntilMidnight(clock.Now()),
	}
	m.renderer = newRenderer(80)
	return m
}

func newRenderer(width int) *glamour.TermRenderer {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

// feedContent is the scrollable material shown in the focus view: every
// activity of the program back to back.
func feedContent() string {
	var sb strings.Builder
	for _, a := range catalog.All() {
		fmt.Fprintf(&sb, "Day %d  %s\n\n", a.Day, a.Title)
		sb.WriteString(a.Description)
		sb.WriteString("\n\n")
		if a.ReflectionPrompt != "" {
			fmt.Fprintf(&sb, "  > %s\n\n", a.ReflectionPrompt)
		}
		sb.WriteString(strings.Repeat("─", 40))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

type tickMsg time.Time

type loadedMsg struct {
	today   progress.Today
	entries []models.DayProgressEntry
	err     error
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), tick())
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg { return m.load() }
}

// load visits the gate, which advances the day when the date rolled over.
func (m Model) load() loadedMsg {
	today, err := m.svc.Visit()
	if err != nil {
		return loadedMsg{err: err}
	}
	entries, err := m.svc.Ledger()
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{today: today, entries: entries}
}

func (m *Model) applyLoaded(msg loadedMsg) {
	if msg.err != nil {
		m.err = msg.err
		return
	}
	m.err = nil
	m.today = msg.today
	m.entries = msg.entries
	m.countdown = msg.today.Decision.SecondsUntilUnlock
	m.renderActivity()
}

func (m *Model) renderActivity() {
	desc := m.today.Activity.Description
	if m.renderer == nil {
		m.activityView = desc
		return
	}
	out, err := m.renderer.Render(desc)
	if err != nil {
		m.activityView = desc
		return
	}
	m.activityView = strings.TrimRight(out, "\n")
}

// pullToasts moves pending toasts onto the status line, newest last.
func (m *Model) pullToasts(now time.Time) {
	pending := m.toasts.Drain()
	if len(pending) == 0 {
		return
	}
	texts := make([]string, 0, len(pending))
	for _, t := range pending {
		texts = append(texts, t.Text())
	}
	m.toast = strings.Join(texts, "  •  ")
	m.toastUntil = now.Add(toastTTL)
}
