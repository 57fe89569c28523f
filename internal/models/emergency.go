package models

import (
	"fmt"
	"strings"
	"time"
)

// EmergencyAction is a logged alternative to scrolling. Its minutes count
// toward recovered time.
type EmergencyAction struct {
	ID       string    `json:"id"`
	Action   string    `json:"action"`
	Minutes  int       `json:"minutes"`
	LoggedAt time.Time `json:"logged_at"`
}

func (a *EmergencyAction) Validate() error {
	if strings.TrimSpace(a.Action) == "" {
		return fmt.Errorf("emergency action cannot be empty")
	}
	if a.Minutes < 0 {
		return fmt.Errorf("minutes cannot be negative")
	}
	return nil
}
