package achievements

import (
	"github.com/unscroll/unscroll/internal/constants"
)

// rule reports whether an achievement's condition holds for the input.
type rule func(Input) bool

type definition struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Stars       int
	Category    constants.AchievementCategory
	rule        rule
}

func completedAtLeast(n int) rule {
	return func(in Input) bool { return in.Stats.DaysCompleted >= n }
}

func streakAtLeast(n int) rule {
	return func(in Input) bool { return in.CurrentStreak >= n }
}

func reflectionsAtLeast(n int) rule {
	return func(in Input) bool { return in.Stats.TotalReflections >= n }
}

func recoveredAtLeast(minutes int) rule {
	return func(in Input) bool { return in.TimeRecoveredMinutes >= minutes }
}

// consistentFor holds when both the streak and the completed-day count reach n.
func consistentFor(n int) rule {
	return func(in Input) bool { return min(in.CurrentStreak, in.Stats.DaysCompleted) >= n }
}

func perfectAtLeast(n int) rule {
	return func(in Input) bool { return in.Stats.PerfectCompletions >= n }
}

// definitions is the catalog in display order. IDs are persisted and must
// never change.
var definitions = []definition{
	{"first_step", "First Step", "Complete your first day", "👣", 10, constants.CategoryMilestone, completedAtLeast(1)},
	{"daily_warrior", "Daily Warrior", "Complete 7 days", "⚔️", 25, constants.CategoryMilestone, completedAtLeast(7)},
	{"halfway_hero", "Halfway Hero", "Complete 15 days", "🏔️", 50, constants.CategoryMilestone, completedAtLeast(15)},
	{"challenge_champion", "Challenge Champion", "Complete all 30 days", "🏆", 100, constants.CategoryMilestone, completedAtLeast(30)},

	{"streak_3", "On a Roll", "Reach a 3-day streak", "🔥", 15, constants.CategoryStreak, streakAtLeast(3)},
	{"streak_7", "Week Strong", "Reach a 7-day streak", "📅", 30, constants.CategoryStreak, streakAtLeast(7)},
	{"streak_14", "Fortnight Focus", "Reach a 14-day streak", "💪", 60, constants.CategoryStreak, streakAtLeast(14)},
	{"streak_21", "Habit Formed", "Reach a 21-day streak", "🧠", 90, constants.CategoryStreak, streakAtLeast(21)},

	{"deep_thinker", "Deep Thinker", "Write 10 reflections", "💭", 20, constants.CategoryReflection, reflectionsAtLeast(10)},
	{"reflection_master", "Reflection Master", "Write 20 reflections", "📝", 40, constants.CategoryReflection, reflectionsAtLeast(20)},

	{"hour_reclaimed", "Hour Reclaimed", "Recover 60 minutes", "⏰", 15, constants.CategoryTime, recoveredAtLeast(60)},
	{"time_saver", "Time Saver", "Recover 3 hours", "⌛", 30, constants.CategoryTime, recoveredAtLeast(180)},
	{"time_master", "Time Master", "Recover 10 hours", "🕰️", 75, constants.CategoryTime, recoveredAtLeast(600)},

	{"steady_checkin", "Steady Check-in", "Stay consistent for 5 days", "✅", 20, constants.CategoryConsistency, consistentFor(5)},
	{"unshakeable", "Unshakeable", "Stay consistent for 14 days", "🪨", 45, constants.CategoryConsistency, consistentFor(14)},

	{"perfectionist", "Perfectionist", "Fully complete 10 activities", "💎", 50, constants.CategoryQuality, perfectAtLeast(10)},

	{"momentum_builder", "Momentum Builder", "Hold a 4-day streak with 8 days completed", "🚀", 35, constants.CategoryCombo,
		func(in Input) bool { return in.CurrentStreak >= 4 && in.Stats.DaysCompleted >= 8 }},
}
