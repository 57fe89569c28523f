package models

import "time"

// UserStats is a derived cache. It can always be recomputed from the
// ledger, the emergency log and the unlock list.
type UserStats struct {
	TotalTimeRecoveredMinutes int           `json:"total_time_recovered_minutes"`
	DaysCompleted             int           `json:"days_completed"`
	CurrentStreak             int           `json:"current_streak"`
	TotalReflections          int           `json:"total_reflections"`
	PerfectCompletions        int           `json:"perfect_completions"`
	TotalStars                int           `json:"total_stars"`
	Level                     int           `json:"level"`
	StarsToNextLevel          int           `json:"stars_to_next_level"`
	Achievements              []Achievement `json:"achievements"`
	ComputedAt                time.Time     `json:"computed_at"`
}

// UnlockedCount returns the number of unlocked achievements
func (s UserStats) UnlockedCount() int {
	n := 0
	for _, a := range s.Achievements {
		if a.Unlocked {
			n++
		}
	}
	return n
}
