package models

import (
	"time"

	"github.com/unscroll/unscroll/internal/constants"
)

// AccessRecord tracks the user's position in the 30-day program
type AccessRecord struct {
	LastAccessDate  string    `json:"last_access_date"` // YYYY-MM-DD, empty before the first visit
	CurrentDay      int       `json:"current_day"`      // 1..30
	AccessTimestamp time.Time `json:"access_timestamp"`
	CompletedToday  bool      `json:"completed_today"`
}

// DefaultAccessRecord returns the record used on first load and after a reset
func DefaultAccessRecord() AccessRecord {
	return AccessRecord{CurrentDay: 1}
}

// Normalize clamps CurrentDay into the program range.
func (r AccessRecord) Normalize() AccessRecord {
	if r.CurrentDay < 1 {
		r.CurrentDay = 1
	}
	if r.CurrentDay > constants.ChallengeDays {
		r.CurrentDay = constants.ChallengeDays
	}
	return r
}
