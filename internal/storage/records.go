package storage

import (
	"fmt"
	"sort"

	"github.com/unscroll/unscroll/internal/constants"
	"github.com/unscroll/unscroll/internal/logger"
	"github.com/unscroll/unscroll/internal/models"
)

// Records reads and writes the typed program records. Reads never fail on
// missing or malformed values: they fall back to the documented default and
// log a warning. Only an unreachable backend surfaces as an error.
type Records struct {
	p Provider
}

func NewRecords(p Provider) *Records {
	return &Records{p: p}
}

// Provider returns the underlying store.
func (r *Records) Provider() Provider { return r.p }

// load decodes key into dst. It returns false when the caller should use
// its default.
func (r *Records) load(key string, dst any) (bool, error) {
	ok, err := r.p.Get(key, dst)
	if err != nil {
		if ok {
			logger.Warn("Malformed stored value, using default", "key", key, "error", err)
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return ok, nil
}

func (r *Records) AccessRecord() (models.AccessRecord, error) {
	var rec models.AccessRecord
	ok, err := r.load(constants.KeyAccessControl, &rec)
	if err != nil {
		return models.DefaultAccessRecord(), err
	}
	if !ok {
		return models.DefaultAccessRecord(), nil
	}
	if rec.CurrentDay < 1 || rec.CurrentDay > constants.ChallengeDays {
		logger.Warn("Stored day out of range, clamping", "day", rec.CurrentDay)
	}
	return rec.Normalize(), nil
}

func (r *Records) SaveAccessRecord(rec models.AccessRecord) error {
	return r.p.Set(constants.KeyAccessControl, rec.Normalize())
}

// DayProgress returns the ledger sorted by day. Entries with a day outside
// 1..30 are dropped; for duplicate days the last stored entry wins.
func (r *Records) DayProgress() ([]models.DayProgressEntry, error) {
	var entries []models.DayProgressEntry
	ok, err := r.load(constants.KeyDayProgress, &entries)
	if err != nil || !ok {
		return []models.DayProgressEntry{}, err
	}

	byDay := make(map[int]models.DayProgressEntry, len(entries))
	for _, e := range entries {
		if e.Day < 1 || e.Day > constants.ChallengeDays {
			logger.Warn("Dropping ledger entry with invalid day", "day", e.Day)
			continue
		}
		byDay[e.Day] = e
	}

	out := make([]models.DayProgressEntry, 0, len(byDay))
	for _, e := range byDay {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

func (r *Records) SaveDayProgress(entries []models.DayProgressEntry) error {
	if entries == nil {
		entries = []models.DayProgressEntry{}
	}
	return r.p.Set(constants.KeyDayProgress, entries)
}

func (r *Records) Unlocks() ([]models.AchievementUnlock, error) {
	var unlocks []models.AchievementUnlock
	ok, err := r.load(constants.KeyAchievements, &unlocks)
	if err != nil || !ok {
		return []models.AchievementUnlock{}, err
	}
	return unlocks, nil
}

func (r *Records) SaveUnlocks(unlocks []models.AchievementUnlock) error {
	if unlocks == nil {
		unlocks = []models.AchievementUnlock{}
	}
	return r.p.Set(constants.KeyAchievements, unlocks)
}

func (r *Records) EmergencyLog() ([]models.EmergencyAction, error) {
	var actions []models.EmergencyAction
	ok, err := r.load(constants.KeyEmergencyLog, &actions)
	if err != nil || !ok {
		return []models.EmergencyAction{}, err
	}
	return actions, nil
}

func (r *Records) SaveEmergencyLog(actions []models.EmergencyAction) error {
	if actions == nil {
		actions = []models.EmergencyAction{}
	}
	return r.p.Set(constants.KeyEmergencyLog, actions)
}

// UserStats returns the cached stats. The cache is informational only and
// callers recompute rather than trust it.
func (r *Records) UserStats() (models.UserStats, bool, error) {
	var stats models.UserStats
	ok, err := r.load(constants.KeyUserStats, &stats)
	if err != nil || !ok {
		return models.UserStats{}, false, err
	}
	return stats, true, nil
}

func (r *Records) SaveUserStats(stats models.UserStats) error {
	return r.p.Set(constants.KeyUserStats, stats)
}

// ResetProgram clears the access record. With all set, the ledger, unlocks,
// emergency log and cached stats are removed too.
func (r *Records) ResetProgram(all bool) error {
	if err := r.SaveAccessRecord(models.DefaultAccessRecord()); err != nil {
		return err
	}
	if !all {
		return nil
	}
	for _, key := range []string{
		constants.KeyDayProgress,
		constants.KeyAchievements,
		constants.KeyEmergencyLog,
		constants.KeyUserStats,
	} {
		if err := r.p.Delete(key); err != nil {
			return fmt.Errorf("failed to clear %s: %w", key, err)
		}
	}
	return nil
}
