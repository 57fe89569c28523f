package ledger

import (
	"sort"

	"github.com/unscroll/unscroll/internal/constants"
	"github.com/unscroll/unscroll/internal/models"
)

func sortedDays(entries []models.DayProgressEntry) []models.DayProgressEntry {
	s := make([]models.DayProgressEntry, len(entries))
	copy(s, entries)
	sort.Slice(s, func(i, j int) bool { return s[i].Day > s[j].Day })
	return s
}

// CurrentStreak counts completed, strictly consecutive days ending at the
// highest recorded day. It is 0 when that day is not completed.
func CurrentStreak(entries []models.DayProgressEntry) int {
	desc := sortedDays(entries)
	if len(desc) == 0 || !desc[0].Completed {
		return 0
	}

	streak := 1
	for i := 1; i < len(desc); i++ {
		if !desc[i].Completed || desc[i-1].Day-desc[i].Day != 1 {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak is the longest run of completed consecutive days anywhere
// in the ledger.
func LongestStreak(entries []models.DayProgressEntry) int {
	desc := sortedDays(entries)
	longest, run, prev := 0, 0, 0
	for i, e := range desc {
		switch {
		case !e.Completed:
			run = 0
		case i > 0 && run > 0 && prev-e.Day == 1:
			run++
		default:
			run = 1
		}
		prev = e.Day
		if run > longest {
			longest = run
		}
	}
	return longest
}

// Summary is the set of ledger statistics the rest of the program derives from.
type Summary struct {
	DaysCompleted      int
	TotalReflections   int
	PerfectCompletions int
	PartialCompletions int
	MinutesSpent       int
	CurrentStreak      int
	LongestStreak      int
	// ProgramComplete is true once every day of the program is completed.
	ProgramComplete bool
}

// Summarize computes Summary in one pass plus the streak walks.
func Summarize(entries []models.DayProgressEntry) Summary {
	var s Summary
	for _, e := range entries {
		if e.Completed {
			s.DaysCompleted++
			s.MinutesSpent += e.TimeSpentMinutes
			switch e.CompletionStatus {
			case constants.StatusYes:
				s.PerfectCompletions++
			case constants.StatusPartial:
				s.PartialCompletions++
			}
		}
		if e.HasReflection() {
			s.TotalReflections++
		}
	}
	s.CurrentStreak = CurrentStreak(entries)
	s.LongestStreak = LongestStreak(entries)
	s.ProgramComplete = s.DaysCompleted >= constants.ChallengeDays
	return s
}
