// Package achievements evaluates the fixed achievement catalog against
// ledger statistics.
package achievements

import (
	"time"

	"github.com/unscroll/unscroll/internal/ledger"
	"github.com/unscroll/unscroll/internal/models"
)

// Input is everything a rule may look at.
type Input struct {
	Stats                ledger.Summary
	TimeRecoveredMinutes int
	CurrentStreak        int
}

// NewInput builds an Input from a ledger summary and the recovered minutes.
func NewInput(s ledger.Summary, recoveredMinutes int) Input {
	return Input{Stats: s, TimeRecoveredMinutes: recoveredMinutes, CurrentStreak: s.CurrentStreak}
}

// Result is the outcome of one evaluation pass.
type Result struct {
	// NewlyUnlocked holds the achievements unlocked by this pass, in catalog order.
	NewlyUnlocked []models.Achievement
	// All is the full catalog with unlock state applied.
	All []models.Achievement
	// Unlocks is the persisted unlock list: prior entries first, then new ones.
	Unlocks []models.AchievementUnlock
}

// Evaluate unlocks every achievement whose rule holds and that is not
// already in prior. Unlocks are never revoked and ids in prior that the
// catalog does not know are carried through untouched.
func Evaluate(in Input, prior []models.AchievementUnlock, now time.Time) Result {
	unlockedAt := make(map[string]time.Time, len(prior))
	unlocks := make([]models.AchievementUnlock, 0, len(prior)+len(definitions))
	for _, u := range prior {
		if _, dup := unlockedAt[u.ID]; dup {
			continue
		}
		unlockedAt[u.ID] = u.UnlockedAt
		unlocks = append(unlocks, u)
	}

	res := Result{All: make([]models.Achievement, 0, len(definitions))}
	for _, d := range definitions {
		a := d.achievement()
		if at, ok := unlockedAt[d.ID]; ok {
			a.Unlocked = true
			a.UnlockedAt = &at
		} else if d.rule(in) {
			at := now
			a.Unlocked = true
			a.UnlockedAt = &at
			unlocks = append(unlocks, models.AchievementUnlock{ID: d.ID, UnlockedAt: now})
			res.NewlyUnlocked = append(res.NewlyUnlocked, a)
		}
		res.All = append(res.All, a)
	}
	res.Unlocks = unlocks
	return res
}

// TotalStars sums the stars of every unlocked achievement in all.
func TotalStars(all []models.Achievement) int {
	total := 0
	for _, a := range all {
		if a.Unlocked {
			total += a.Stars
		}
	}
	return total
}

// Catalog returns every achievement definition, all locked.
func Catalog() []models.Achievement {
	out := make([]models.Achievement, len(definitions))
	for i, d := range definitions {
		out[i] = d.achievement()
	}
	return out
}

// Lookup returns the definition for id.
func Lookup(id string) (models.Achievement, bool) {
	for _, d := range definitions {
		if d.ID == id {
			return d.achievement(), true
		}
	}
	return models.Achievement{}, false
}

func (d definition) achievement() models.Achievement {
	return models.Achievement{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Icon:        d.Icon,
		Stars:       d.Stars,
		Category:    d.Category,
	}
}
