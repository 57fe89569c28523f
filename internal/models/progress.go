package models

import (
	"fmt"
	"time"

	"github.com/unscroll/unscroll/internal/constants"
)

// DayProgressEntry records the outcome of one day's activity. Day is unique
// within a ledger.
type DayProgressEntry struct {
	Day              int                        `json:"day"`
	Completed        bool                       `json:"completed"`
	ReflectionText   string                     `json:"reflection_text,omitempty"`
	CompletionStatus constants.CompletionStatus `json:"completion_status"`
	CompletedAt      *time.Time                 `json:"completed_at,omitempty"`
	TimeSpentMinutes int                        `json:"time_spent_minutes"`
	UpdatedAt        time.Time                  `json:"updated_at"`
}

// HasReflection reports whether the entry carries non-empty reflection text
func (e DayProgressEntry) HasReflection() bool {
	return e.ReflectionText != ""
}

// ParseCompletionStatus validates a status string
func ParseCompletionStatus(s string) (constants.CompletionStatus, error) {
	switch constants.CompletionStatus(s) {
	case constants.StatusYes, constants.StatusPartial, constants.StatusNo:
		return constants.CompletionStatus(s), nil
	default:
		return "", fmt.Errorf("invalid completion status %q (expected yes, partial or no)", s)
	}
}

// IsCompletion reports whether a status counts as a completed day
func IsCompletion(status constants.CompletionStatus) bool {
	return status == constants.StatusYes || status == constants.StatusPartial
}
