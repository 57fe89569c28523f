package models

import (
	"time"

	"github.com/unscroll/unscroll/internal/constants"
)

// Achievement is a catalog definition with the user's unlock state layered on top
type Achievement struct {
	ID          string                        `json:"id"`
	Name        string                        `json:"name"`
	Description string                        `json:"description"`
	Icon        string                        `json:"icon"`
	Stars       int                           `json:"stars"`
	Category    constants.AchievementCategory `json:"category"`
	Unlocked    bool                          `json:"unlocked"`
	UnlockedAt  *time.Time                    `json:"unlocked_at,omitempty"`
}

// AchievementUnlock is the persisted per-user state for one achievement
type AchievementUnlock struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlocked_at"`
}
