package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/unscroll/unscroll/internal/achievements"
	"github.com/unscroll/unscroll/internal/constants"
	"github.com/unscroll/unscroll/internal/level"
	"github.com/unscroll/unscroll/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return "Go do something offline.\n"
	}

	var content string
	switch m.state {
	case constants.StateToday:
		content = m.viewToday()
	case constants.StateStats:
		content = m.viewStats()
	case constants.StateFocus:
		content = m.viewFocus()
	case constants.StateComplete:
		content = m.viewCompleteForm()
	case constants.StateConfirmReset:
		return m.viewConfirmReset()
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.viewTabs(),
		"",
		content,
		"",
		m.viewStatus(),
		m.help.View(m.keys),
	))
}

func (m Model) viewTabs() string {
	tabs := []string{"Today", "Stats", "Focus"}
	current := m.state
	if current >= constants.NumMainTabs {
		current = m.previousState
	}
	var rendered []string
	for i, t := range tabs {
		if constants.SessionState(i) == current {
			rendered = append(rendered, activeTabStyle.Render(t))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(t))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) viewStatus() string {
	var lines []string
	if m.err != nil {
		lines = append(lines, dangerStyle.Render("Error: "+m.err.Error()))
	}
	if m.toast != "" {
		lines = append(lines, toastStyle.Render(m.toast))
	}
	if m.notice != "" {
		lines = append(lines, warningStyle.Render(m.notice))
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewToday() string {
	rec := m.today.Decision.Record
	if rec.CurrentDay == 0 {
		return mutedStyle.Render("Loading...")
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Day %d of %d  ·  %s", rec.CurrentDay, constants.ChallengeDays, m.today.Activity.Title)))
	sb.WriteString("\n")
	if mins := m.today.Activity.RequiredMinutes(); mins > 0 {
		sb.WriteString(mutedStyle.Render(fmt.Sprintf("About %d minutes", mins)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.activityView)
	sb.WriteString("\n\n")

	if m.today.Decision.Locked {
		status := constants.StatusYes
		if m.today.Entry != nil {
			status = m.today.Entry.CompletionStatus
		}
		sb.WriteString(successStyle.Render(fmt.Sprintf("✓ Completed (%s)", status)))
		sb.WriteString("\n")
		label := "Next activity unlocks in"
		if rec.CurrentDay >= constants.ChallengeDays {
			label = "Program complete. New day in"
		}
		sb.WriteString(countdownStyle.Render(fmt.Sprintf("%s %s", label, utils.FormatCountdown(m.countdown))))
	} else {
		sb.WriteString(mutedStyle.Render("Press c when you're done."))
		sb.WriteString("\n")
		sb.WriteString(countdownStyle.Render("Time left today " + utils.FormatCountdown(m.countdown)))
	}
	return sb.String()
}

func (m Model) viewStats() string {
	s := m.today.Stats
	lvl := level.For(s.TotalStars)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Level %d", lvl.Level)))
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("  %d ★  (%d to next)", s.TotalStars, lvl.StarsToNext)))
	sb.WriteString("\n")
	sb.WriteString(m.bar.ViewAs(level.Progress(s.TotalStars)))
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "Days completed   %d / %d\n", s.DaysCompleted, constants.ChallengeDays)
	fmt.Fprintf(&sb, "Current streak   %d\n", s.CurrentStreak)
	fmt.Fprintf(&sb, "Reflections      %d\n", s.TotalReflections)
	fmt.Fprintf(&sb, "Perfect days     %d\n", s.PerfectCompletions)
	fmt.Fprintf(&sb, "Time recovered   %s\n\n", formatMinutes(s.TotalTimeRecoveredMinutes))

	sb.WriteString(m.viewDayGrid())
	sb.WriteString("\n\n")

	sb.WriteString(titleStyle.Render(fmt.Sprintf("Achievements %d/%d", s.UnlockedCount(), len(achievements.Catalog()))))
	sb.WriteString("\n")
	for _, a := range s.Achievements {
		if a.Unlocked {
			fmt.Fprintf(&sb, "%s %s  %s\n", a.Icon, successStyle.Render(a.Name), mutedStyle.Render(fmt.Sprintf("+%d★", a.Stars)))
		} else {
			sb.WriteString(mutedStyle.Render(fmt.Sprintf("· %s  %s", a.Name, a.Description)))
			sb.WriteString("\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// viewDayGrid draws one cell per program day.
func (m Model) viewDayGrid() string {
	done := make(map[int]bool, len(m.entries))
	for _, e := range m.entries {
		if e.Completed {
			done[e.Day] = true
		}
	}
	current := m.today.Decision.Record.CurrentDay

	var rows []string
	var row []string
	for day := 1; day <= constants.ChallengeDays; day++ {
		cell := mutedStyle.Render(fmt.Sprintf("%2d", day))
		switch {
		case done[day]:
			cell = successStyle.Render(" ✓")
		case day == current:
			cell = activeTabStyle.Render(fmt.Sprintf("%2d", day))
		}
		row = append(row, cell)
		if day%10 == 0 {
			rows = append(rows, strings.Join(row, " "))
			row = nil
		}
	}
	return strings.Join(rows, "\n")
}

func (m Model) viewFocus() string {
	r := m.reading
	header := fmt.Sprintf("%s  %.1f ev/s  %.0f px/s  %d in window",
		labelStyle(r.Label).Render(string(r.Label)), r.Frequency, r.AvgSpeed, r.Events)

	if m.intervention != nil {
		remaining := m.intervention.CooldownUntil.Sub(m.clock.Now()).Seconds()
		body := lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Pause."),
			"",
			fmt.Sprintf("%d scrolls in a row. Take a breath before you go on.", m.intervention.Events),
			mutedStyle.Render(fmt.Sprintf("Scrolling resumes in %.0fs  (esc to dismiss)", max(remaining, 0))),
		)
		overlay := dialogStyle.Render(body)
		return lipgloss.JoinVertical(lipgloss.Left, header, "",
			lipgloss.Place(m.feed.Width, m.feed.Height, lipgloss.Center, lipgloss.Center, overlay))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", m.feed.View())
}

func (m Model) viewCompleteForm() string {
	title := fmt.Sprintf("Complete day %d", m.today.Decision.Record.CurrentDay)
	if m.revise {
		title = fmt.Sprintf("Revise day %d", m.today.Decision.Record.CurrentDay)
	}
	out := titleStyle.Render(title) + "\n\n" + m.form.View()
	if m.formError != "" {
		out += "\n" + dangerStyle.Render(m.formError)
	}
	return out
}

func (m Model) viewConfirmReset() string {
	dialog := dialogStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		dangerStyle.Render("Restart the program?"),
		"",
		"All progress, achievements and the emergency log will be cleared.",
		"A backup is taken first.",
		"",
		"(y/n)",
	))
	if m.width == 0 || m.height == 0 {
		return dialog
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}

func formatMinutes(total int) string {
	if total < 60 {
		return fmt.Sprintf("%dm", total)
	}
	return fmt.Sprintf("%dh %02dm", total/60, total%60)
}
