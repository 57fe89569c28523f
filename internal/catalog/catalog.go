// Package catalog holds the fixed 30-day activity list.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/unscroll/unscroll/internal/constants"
	"github.com/unscroll/unscroll/internal/models"
)

//go:embed activities.yaml
var activitiesYAML []byte

type entry struct {
	Day         int    `yaml:"day"`
	Title       string `yaml:"title"`
	Minutes     *int   `yaml:"minutes"`
	Prompt      string `yaml:"prompt"`
	Description string `yaml:"description"`
}

var activities = mustParse(activitiesYAML)

func parse(data []byte) ([]models.Activity, error) {
	var entries []entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse activity catalog: %w", err)
	}
	if len(entries) != constants.ChallengeDays {
		return nil, fmt.Errorf("activity catalog has %d entries, want %d", len(entries), constants.ChallengeDays)
	}

	out := make([]models.Activity, len(entries))
	for i, e := range entries {
		if e.Day != i+1 {
			return nil, fmt.Errorf("activity %d is listed as day %d", i+1, e.Day)
		}
		if strings.TrimSpace(e.Title) == "" {
			return nil, fmt.Errorf("activity %d has no title", e.Day)
		}
		if e.Minutes != nil && *e.Minutes <= 0 {
			return nil, fmt.Errorf("activity %d has non-positive duration", e.Day)
		}
		out[i] = models.Activity{
			Day:                 e.Day,
			Title:               e.Title,
			Description:         strings.TrimSpace(e.Description),
			TimeRequiredMinutes: e.Minutes,
			ReflectionPrompt:    e.Prompt,
		}
	}
	return out, nil
}

func mustParse(data []byte) []models.Activity {
	a, err := parse(data)
	if err != nil {
		panic(err)
	}
	return a
}

// Clamp forces day into 1..30.
func Clamp(day int) int {
	if day < 1 {
		return 1
	}
	if day > constants.ChallengeDays {
		return constants.ChallengeDays
	}
	return day
}

// Get returns the activity for day, clamped into range.
func Get(day int) models.Activity {
	a := activities[Clamp(day)-1]
	if a.TimeRequiredMinutes != nil {
		m := *a.TimeRequiredMinutes
		a.TimeRequiredMinutes = &m
	}
	return a
}

// All returns a copy of the full catalog in day order.
func All() []models.Activity {
	out := make([]models.Activity, len(activities))
	for i := range activities {
		out[i] = Get(i + 1)
	}
	return out
}
