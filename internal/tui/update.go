package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/unscroll/unscroll/internal/constants"
	apperrors "github.com/unscroll/unscroll/internal/errors"
	"github.com/unscroll/unscroll/internal/ledger"
	"github.com/unscroll/unscroll/internal/logger"
	"github.com/unscroll/unscroll/internal/progress"
	"github.com/unscroll/unscroll/internal/scroll"
	"github.com/unscroll/unscroll/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle Complete State
	if m.state == constants.StateComplete {
		return m.updateCompleteForm(msg)
	}

	// Handle Confirm Reset State
	if m.state == constants.StateConfirmReset {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, m.keys.Confirm):
				m.resetProgram()
				m.state = constants.StateToday
				return m, m.loadCmd()
			case key.Matches(msg, m.keys.Cancel):
				m.state = m.previousState
				return m, nil
			}
			return m, nil
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := docStyle.GetFrameSize()
		m.help.Width = msg.Width - h
		m.bar.Width = min(msg.Width-h-4, 60)
		m.feed.Width = msg.Width - h
		// tabs, title, reading line, help and status line
		m.feed.Height = max(msg.Height-v-8, 3)
		m.renderer = newRenderer(msg.Width - h - 4)
		m.renderActivity()
		return m, nil

	case tickMsg:
		now := m.clock.Now()
		m.countdown = utils.SecondsUntilMidnight(now)
		m.reading = m.monitor.Reading()
		if m.intervention != nil && !now.Before(m.intervention.CooldownUntil) {
			m.intervention = nil
		}
		m.pullToasts(now)
		if m.toast != "" && !now.Before(m.toastUntil) {
			m.toast = ""
		}
		cmds := []tea.Cmd{tick()}
		if last := m.today.Decision.Record.LastAccessDate; last != "" && last != utils.LocalDate(now) {
			cmds = append(cmds, m.loadCmd())
		}
		return m, tea.Batch(cmds...)

	case loadedMsg:
		m.applyLoaded(msg)
		m.pullToasts(m.clock.Now())
		return m, nil

	case tea.MouseMsg:
		if m.state == constants.StateFocus && msg.Action == tea.MouseActionPress {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				m.scrollFeed(-wheelLines, scroll.SourceWheel)
			case tea.MouseButtonWheelDown:
				m.scrollFeed(wheelLines, scroll.SourceWheel)
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % constants.NumMainTabs
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + constants.NumMainTabs) % constants.NumMainTabs
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadCmd()
		case key.Matches(msg, m.keys.Reset):
			m.previousState = m.state
			m.state = constants.StateConfirmReset
			return m, nil
		}

		switch m.state {
		case constants.StateToday:
			switch {
			case key.Matches(msg, m.keys.Complete):
				return m.openCompleteForm(false)
			case key.Matches(msg, m.keys.Revise):
				return m.openCompleteForm(true)
			}
		case constants.StateFocus:
			switch {
			case key.Matches(msg, m.keys.Dismiss):
				m.intervention = nil
				return m, nil
			case key.Matches(msg, m.keys.Up):
				m.scrollFeed(-1, scroll.SourceKey)
			case key.Matches(msg, m.keys.Down):
				m.scrollFeed(1, scroll.SourceKey)
			}
		}
	}

	return m, nil
}

// scrollFeed moves the focus feed and reports the movement to the monitor.
// While a cooldown is running the movement is undone.
func (m *Model) scrollFeed(lines int, source scroll.Source) {
	prev := m.feed.YOffset
	if lines < 0 {
		m.feed.LineUp(-lines)
	} else {
		m.feed.LineDown(lines)
	}

	out := m.monitor.Record(scroll.Event{Position: float64(m.feed.YOffset), Source: source})
	if out.Suppressed {
		m.feed.SetYOffset(prev)
		return
	}
	if out.Fired {
		select {
		case iv := <-m.interventions:
			m.intervention = &iv
		default:
		}
		m.feed.SetYOffset(prev)
	}
}

func (m Model) openCompleteForm(revise bool) (tea.Model, tea.Cmd) {
	if m.today.Decision.Record.CurrentDay == 0 {
		return m, nil
	}
	if m.today.Decision.Locked && !revise {
		m.notice = fmt.Sprintf("Today's activity is done. Day %d unlocks in %s.",
			min(m.today.Decision.Record.CurrentDay+1, constants.ChallengeDays), utils.FormatCountdown(m.countdown))
		return m, nil
	}

	fm := &CompleteFormModel{Status: string(constants.StatusYes)}
	if revise && m.today.Entry != nil {
		fm.Status = string(m.today.Entry.CompletionStatus)
		fm.Reflection = m.today.Entry.ReflectionText
		fm.Minutes = strconv.Itoa(m.today.Entry.TimeSpentMinutes)
	}
	m.completeForm = fm
	m.revise = revise
	m.formError = ""
	m.notice = ""
	m.form = NewCompleteForm(fm, m.today.Activity.ReflectionPrompt)
	m.previousState = m.state
	m.state = constants.StateComplete
	return m, m.form.Init()
}

// NewCompleteForm builds the completion form bound to fm.
func NewCompleteForm(fm *CompleteFormModel, prompt string) *huh.Form {
	if prompt == "" {
		prompt = "What did you notice?"
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Did you do it?").
				Options(
					huh.NewOption("Yes", string(constants.StatusYes)),
					huh.NewOption("Partially", string(constants.StatusPartial)),
					huh.NewOption("Not today", string(constants.StatusNo)),
				).
				Value(&fm.Status),
			huh.NewText().
				Title("Reflection").
				Placeholder(prompt).
				CharLimit(ledger.MaxReflectionLength).
				Value(&fm.Reflection),
			huh.NewInput().
				Title("Minutes spent (blank for the activity's time)").
				Value(&fm.Minutes).
				Validate(validateMinutes),
		),
	)
}

func validateMinutes(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("enter a whole number of minutes")
	}
	if n < 0 {
		return fmt.Errorf("minutes cannot be negative")
	}
	return nil
}

func (m Model) updateCompleteForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.formError = ""
		m.state = m.previousState
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.submitCompletion(); err != nil {
			if v, ok := apperrors.AsValidation(err); ok && !errors.Is(err, progress.ErrDayLocked) {
				// Stay in the form so the value can be corrected
				m.formError = v.Error()
				m.form.State = huh.StateNormal
				return m, tea.Batch(cmds...)
			}
			m.err = err
		}
		m.state = constants.StateToday
		cmds = append(cmds, m.loadCmd())
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, tea.Batch(cmds...)
}

// submitCompletion records the values held in the completion form.
func (m *Model) submitCompletion() error {
	fm := m.completeForm
	if fm == nil {
		return nil
	}
	c := ledger.Completion{
		Status:         fm.Status,
		ReflectionText: fm.Reflection,
	}
	if s := strings.TrimSpace(fm.Minutes); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return apperrors.Validation("time_spent_minutes", ledger.ErrNegativeMinutes, "enter a whole number of minutes")
		}
		c.TimeSpentMinutes = &n
	}

	res, err := m.svc.Complete(c, progress.CompleteOptions{Revise: m.revise})
	if err != nil {
		logger.Warn("Completion rejected", "error", err)
		return err
	}
	m.formError = ""
	m.today.Stats = res.Stats
	m.pullToasts(m.clock.Now())
	return nil
}

func (m *Model) resetProgram() {
	path, err := m.svc.Reset(true)
	if err != nil {
		m.err = err
		return
	}
	m.monitor.Reset()
	m.intervention = nil
	m.notice = "Program restarted from day 1."
	if path != "" {
		m.notice += " Backup: " + path
	}
}
