// Package access decides when the program day advances and when today's
// activity is closed for the rest of the calendar day.
//
// The gate never refuses access to the app. Locked is a display state that
// stops the user re-attempting an activity already completed today.
package access

import (
	"time"

	"github.com/unscroll/unscroll/internal/constants"
	"github.com/unscroll/unscroll/internal/models"
	"github.com/unscroll/unscroll/internal/utils"
)

// Decision is the outcome of evaluating the gate at one instant.
type Decision struct {
	CanAccessToday bool
	// Locked is true when today's activity has already been completed.
	Locked bool
	// Advanced is true when this evaluation moved the day counter forward.
	Advanced bool
	// SecondsUntilUnlock counts down to the next local midnight.
	SecondsUntilUnlock int
	// Record is the access record to persist.
	Record models.AccessRecord
}

// Evaluate applies the daily gate to rec at now. The calendar day is taken
// from now's location, so callers pass a time already in the configured
// timezone.
//
// A stored date on the same day returns rec unchanged. Any later day
// advances the counter by exactly one, however long the absence. An earlier
// day (the clock moved backwards) is treated as the same day.
func Evaluate(now time.Time, rec models.AccessRecord) Decision {
	today := utils.LocalDate(now)
	next := rec

	d := Decision{
		CanAccessToday:     true,
		SecondsUntilUnlock: utils.SecondsUntilMidnight(now),
	}

	var diff int
	var err error
	if rec.LastAccessDate != "" {
		diff, err = utils.DaysBetween(rec.LastAccessDate, today)
	}

	switch {
	case rec.LastAccessDate == "" || err != nil:
		next = rec.Normalize()
		next.LastAccessDate = today
		next.AccessTimestamp = now
		next.CompletedToday = false
	case diff >= 1:
		next = rec.Normalize()
		if next.CurrentDay < constants.ChallengeDays {
			next.CurrentDay++
			d.Advanced = true
		}
		next.LastAccessDate = today
		next.AccessTimestamp = now
		next.CompletedToday = false
	}

	d.Record = next
	d.Locked = next.CompletedToday && next.LastAccessDate == today
	return d
}

// MarkCompleted records that the current day's activity was completed at
// now. It has no effect when rec was last stamped on a different day.
func MarkCompleted(now time.Time, rec models.AccessRecord) models.AccessRecord {
	if rec.LastAccessDate == utils.LocalDate(now) {
		rec.CompletedToday = true
	}
	return rec
}

// MarkOpen undoes MarkCompleted for a current day whose entry was revised
// to not completed.
func MarkOpen(now time.Time, rec models.AccessRecord) models.AccessRecord {
	if rec.LastAccessDate == utils.LocalDate(now) {
		rec.CompletedToday = false
	}
	return rec
}

// Reset returns the record for a fresh start on day 1.
func Reset() models.AccessRecord {
	return models.DefaultAccessRecord()
}
