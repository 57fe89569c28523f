// Package ledger records per-day activity results and derives streaks and
// aggregate statistics from them.
package ledger

import (
	"errors"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/unscroll/unscroll/internal/constants"
	apperrors "github.com/unscroll/unscroll/internal/errors"
	"github.com/unscroll/unscroll/internal/models"
)

var (
	ErrMissingStatus   = errors.New("completion status is required")
	ErrInvalidStatus   = errors.New("invalid completion status")
	ErrInvalidDay      = errors.New("day out of range")
	ErrNegativeMinutes = errors.New("time spent cannot be negative")
)

// MaxReflectionLength caps stored reflection text, in runes.
const MaxReflectionLength = 4000

var reflectionPolicy = bluemonday.StrictPolicy()

// Completion is a submitted activity result.
type Completion struct {
	Day            int
	ReflectionText string
	// Status is one of yes, partial or no.
	Status string
	// TimeSpentMinutes is optional; nil means "use the activity's duration".
	TimeSpentMinutes *int
}

// Validate checks a submission without touching any ledger.
func (c Completion) Validate() error {
	if c.Day < 1 || c.Day > constants.ChallengeDays {
		return apperrors.Validation("day", ErrInvalidDay, "day must be between 1 and 30")
	}
	if strings.TrimSpace(c.Status) == "" {
		return apperrors.Validation("status", ErrMissingStatus, "choose yes, partial or no")
	}
	if _, err := models.ParseCompletionStatus(strings.ToLower(strings.TrimSpace(c.Status))); err != nil {
		return apperrors.Validation("status", ErrInvalidStatus, err.Error())
	}
	if c.TimeSpentMinutes != nil && *c.TimeSpentMinutes < 0 {
		return apperrors.Validation("time_spent_minutes", ErrNegativeMinutes, "time spent cannot be negative")
	}
	return nil
}

// SanitizeReflection strips markup and surrounding whitespace and caps the
// length.
func SanitizeReflection(s string) string {
	clean := strings.TrimSpace(html.UnescapeString(reflectionPolicy.Sanitize(s)))
	if r := []rune(clean); len(r) > MaxReflectionLength {
		clean = strings.TrimSpace(string(r[:MaxReflectionLength]))
	}
	return clean
}

// RecordCompletion upserts the entry for c.Day and returns the new ledger
// sorted by day together with the written entry. The input slice is not
// modified. On a validation error nothing is returned.
func RecordCompletion(entries []models.DayProgressEntry, c Completion, activity models.Activity, now time.Time) ([]models.DayProgressEntry, models.DayProgressEntry, error) {
	if err := c.Validate(); err != nil {
		return nil, models.DayProgressEntry{}, err
	}

	status := constants.CompletionStatus(strings.ToLower(strings.TrimSpace(c.Status)))
	completed := models.IsCompletion(status)

	entry := models.DayProgressEntry{
		Day:              c.Day,
		Completed:        completed,
		ReflectionText:   SanitizeReflection(c.ReflectionText),
		CompletionStatus: status,
		UpdatedAt:        now,
	}
	if completed {
		at := now
		entry.CompletedAt = &at
		if c.TimeSpentMinutes != nil {
			entry.TimeSpentMinutes = *c.TimeSpentMinutes
		} else {
			entry.TimeSpentMinutes = activity.RequiredMinutes()
		}
	}

	out := make([]models.DayProgressEntry, 0, len(entries)+1)
	replaced := false
	for _, e := range entries {
		if e.Day == c.Day {
			if !replaced {
				out = append(out, entry)
				replaced = true
			}
			continue
		}
		out = append(out, e)
	}
	if !replaced {
		out = append(out, entry)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Day < out[j].Day })

	return out, entry, nil
}

// Find returns the entry for day, if any.
func Find(entries []models.DayProgressEntry, day int) (models.DayProgressEntry, bool) {
	for _, e := range entries {
		if e.Day == day {
			return e, true
		}
	}
	return models.DayProgressEntry{}, false
}
