package progress

import (
	"fmt"
	"strings"

	"github.com/unscroll/unscroll/internal/constants"
	apperrors "github.com/unscroll/unscroll/internal/errors"
	"github.com/unscroll/unscroll/internal/ledger"
	"github.com/unscroll/unscroll/internal/logger"
	"github.com/unscroll/unscroll/internal/models"
	"github.com/unscroll/unscroll/internal/notifier"
)

// LogEmergency records something done instead of scrolling. The minutes
// count toward recovered time.
func (s *Service) LogEmergency(action string, minutes int) (models.EmergencyAction, []models.Achievement, error) {
	action = ledger.SanitizeReflection(action)
	if strings.TrimSpace(action) == "" {
		return models.EmergencyAction{}, nil, apperrors.Validation("action", ErrEmptyAction, "describe what you did instead")
	}
	if minutes <= 0 {
		return models.EmergencyAction{}, nil, apperrors.Validation("minutes", ErrInvalidMinutes, "minutes must be greater than zero")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	entry := models.EmergencyAction{
		ID:       s.newID(),
		Action:   action,
		Minutes:  minutes,
		LoggedAt: now,
	}
	if err := entry.Validate(); err != nil {
		return models.EmergencyAction{}, nil, err
	}

	actions, err := s.records.EmergencyLog()
	if err != nil {
		return models.EmergencyAction{}, nil, err
	}
	if err := s.records.SaveEmergencyLog(append(actions, entry)); err != nil {
		return models.EmergencyAction{}, nil, fmt.Errorf("failed to save emergency log: %w", err)
	}

	entries, err := s.records.DayProgress()
	if err != nil {
		return models.EmergencyAction{}, nil, err
	}
	_, newly, err := s.recomputeLocked(now, entries)
	if err != nil {
		return models.EmergencyAction{}, nil, err
	}

	logger.Info("Emergency action logged", "id", entry.ID, "minutes", minutes)
	s.sink.Notify(notifier.Toast{
		Title:       fmt.Sprintf("%d minutes reclaimed", minutes),
		Description: action,
		Severity:    constants.SeverityInfo,
	})
	return entry, newly, nil
}

// EmergencyLog returns every logged action, oldest first.
func (s *Service) EmergencyLog() ([]models.EmergencyAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records.EmergencyLog()
}

// Reset sends the program back to day 1. With all set the ledger,
// achievements and emergency log are wiped too, after a "pre-reset" backup
// when a backup function is configured. It returns the backup path, if any.
func (s *Service) Reset(all bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var backupPath string
	if all && s.backup != nil {
		p, err := s.backup("pre-reset")
		if err != nil {
			return "", fmt.Errorf("backup before reset failed: %w", err)
		}
		backupPath = p
	}

	if err := s.records.ResetProgram(all); err != nil {
		return backupPath, fmt.Errorf("failed to reset: %w", err)
	}

	if all {
		if _, _, err := s.recomputeLocked(s.clock.Now(), nil); err != nil {
			return backupPath, err
		}
	}

	logger.Info("Program reset", "all", all, "backup", backupPath)
	s.sink.Notify(notifier.Toast{
		Title:       "Program reset",
		Description: "Back to day 1",
		Severity:    constants.SeverityWarning,
	})
	return backupPath, nil
}
