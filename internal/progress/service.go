// Package progress ties the gate, the ledger and the derived statistics to
// a store. Every entry point that mutates the ledger or the emergency log
// ends in the same recompute step.
package progress

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/unscroll/unscroll/internal/access"
	"github.com/unscroll/unscroll/internal/achievements"
	"github.com/unscroll/unscroll/internal/catalog"
	"github.com/unscroll/unscroll/internal/constants"
	apperrors "github.com/unscroll/unscroll/internal/errors"
	"github.com/unscroll/unscroll/internal/ledger"
	"github.com/unscroll/unscroll/internal/level"
	"github.com/unscroll/unscroll/internal/logger"
	"github.com/unscroll/unscroll/internal/models"
	"github.com/unscroll/unscroll/internal/notifier"
	"github.com/unscroll/unscroll/internal/storage"
	"github.com/unscroll/unscroll/internal/utils"
)

var (
	ErrDayLocked      = errors.New("day already completed")
	ErrFutureDay      = errors.New("day not unlocked yet")
	ErrInvalidMinutes = errors.New("minutes must be positive")
	ErrEmptyAction    = errors.New("action cannot be empty")
)

// BackupFunc snapshots the store before a destructive reset and returns
// the snapshot path.
type BackupFunc func(label string) (string, error)

// Service is safe for concurrent use. Read-modify-write cycles are
// serialised within the process; across processes the last write wins.
type Service struct {
	mu      sync.Mutex
	records *storage.Records
	clock   utils.Clock
	sink    notifier.Sink
	backup  BackupFunc
	newID   func() string
}

type Option func(*Service)

func WithClock(c utils.Clock) Option { return func(s *Service) { s.clock = c } }

func WithSink(n notifier.Sink) Option { return func(s *Service) { s.sink = n } }

func WithBackup(fn BackupFunc) Option { return func(s *Service) { s.backup = fn } }

func WithIDs(fn func() string) Option { return func(s *Service) { s.newID = fn } }

// New builds a service over records. Without options it uses the local
// system clock and drops toasts.
func New(records *storage.Records, opts ...Option) *Service {
	s := &Service{
		records: records,
		clock:   utils.SystemClock{},
		sink:    notifier.Discard,
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today is everything needed to render the current day.
type Today struct {
	Decision access.Decision
	Activity models.Activity
	// Entry is the ledger entry for the current day, if one exists.
	Entry *models.DayProgressEntry
	Stats models.UserStats
}

// Visit evaluates the access gate at the current instant, persists the
// record when it changed and returns the current day.
func (s *Service) Visit() (Today, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	d, err := s.visitLocked(now)
	if err != nil {
		return Today{}, err
	}

	entries, err := s.records.DayProgress()
	if err != nil {
		return Today{}, err
	}
	stats, _, err := s.recomputeLocked(now, entries)
	if err != nil {
		return Today{}, err
	}

	t := Today{
		Decision: d,
		Activity: catalog.Get(d.Record.CurrentDay),
		Stats:    stats,
	}
	if e, ok := ledger.Find(entries, d.Record.CurrentDay); ok {
		t.Entry = &e
	}
	return t, nil
}

func (s *Service) visitLocked(now time.Time) (access.Decision, error) {
	rec, err := s.records.AccessRecord()
	if err != nil {
		return access.Decision{}, err
	}

	d := access.Evaluate(now, rec)
	if d.Record != rec {
		if err := s.records.SaveAccessRecord(d.Record); err != nil {
			return access.Decision{}, fmt.Errorf("failed to save access record: %w", err)
		}
	}
	if d.Advanced {
		logger.Info("Program day advanced", "day", d.Record.CurrentDay)
		s.sink.Notify(notifier.Toast{
			Title:       fmt.Sprintf("Day %d unlocked", d.Record.CurrentDay),
			Description: catalog.Get(d.Record.CurrentDay).Title,
			Severity:    constants.SeverityInfo,
		})
	}
	return d, nil
}

// CompleteOptions modify Complete.
type CompleteOptions struct {
	// Revise allows overwriting a day that is already completed.
	Revise bool
}

// CompleteResult is the outcome of a recorded completion.
type CompleteResult struct {
	Entry         models.DayProgressEntry
	Stats         models.UserStats
	NewlyUnlocked []models.Achievement
	LeveledUp     bool
}

// Complete records c. A zero Day means the current program day. Days after
// the current one are rejected, as is a second submission for a completed
// day unless opts.Revise is set or the gate still shows the day as open.
func (s *Service) Complete(c ledger.Completion, opts CompleteOptions) (CompleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	d, err := s.visitLocked(now)
	if err != nil {
		return CompleteResult{}, err
	}
	rec := d.Record

	if c.Day == 0 {
		c.Day = rec.CurrentDay
	}
	if err := c.Validate(); err != nil {
		return CompleteResult{}, err
	}
	if c.Day > rec.CurrentDay {
		return CompleteResult{}, apperrors.Validation("day", ErrFutureDay,
			fmt.Sprintf("day %d is not unlocked yet (current day is %d)", c.Day, rec.CurrentDay))
	}

	entries, err := s.records.DayProgress()
	if err != nil {
		return CompleteResult{}, err
	}
	// The open current day follows the gate, not a ledger entry left over
	// from before a soft reset.
	dayOpen := c.Day == rec.CurrentDay && !rec.CompletedToday
	if prev, ok := ledger.Find(entries, c.Day); ok && prev.Completed && !opts.Revise && !dayOpen {
		return CompleteResult{}, apperrors.Validation("day", ErrDayLocked,
			fmt.Sprintf("day %d is already completed", c.Day))
	}

	before := achievements.TotalStars(s.evaluate(now, entries).All)

	updated, entry, err := ledger.RecordCompletion(entries, c, catalog.Get(c.Day), now)
	if err != nil {
		return CompleteResult{}, err
	}
	if err := s.records.SaveDayProgress(updated); err != nil {
		return CompleteResult{}, fmt.Errorf("failed to save progress: %w", err)
	}

	if c.Day == rec.CurrentDay {
		next := access.MarkCompleted(now, rec)
		if !entry.Completed {
			next = access.MarkOpen(now, rec)
		}
		if next != rec {
			if err := s.records.SaveAccessRecord(next); err != nil {
				return CompleteResult{}, fmt.Errorf("failed to save access record: %w", err)
			}
		}
	}

	stats, newly, err := s.recomputeLocked(now, updated)
	if err != nil {
		return CompleteResult{}, err
	}

	res := CompleteResult{
		Entry:         entry,
		Stats:         stats,
		NewlyUnlocked: newly,
		LeveledUp:     level.For(before).Level < stats.Level,
	}

	logger.Info("Completion recorded", "day", entry.Day, "status", entry.CompletionStatus, "minutes", entry.TimeSpentMinutes)
	if entry.Completed {
		s.sink.Notify(notifier.Toast{
			Title:       fmt.Sprintf("Day %d complete", entry.Day),
			Description: fmt.Sprintf("%d-day streak", stats.CurrentStreak),
			Severity:    constants.SeveritySuccess,
		})
	}
	if res.LeveledUp {
		s.sink.Notify(notifier.Toast{
			Title:       "Level up",
			Description: fmt.Sprintf("You reached level %d", stats.Level),
			Severity:    constants.SeveritySuccess,
		})
	}
	return res, nil
}

// Stats recomputes and returns the derived statistics.
func (s *Service) Stats() (models.UserStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.records.DayProgress()
	if err != nil {
		return models.UserStats{}, err
	}
	stats, _, err := s.recomputeLocked(s.clock.Now(), entries)
	return stats, err
}

// Recompute is Stats, also returning achievements that this pass unlocked.
// Callers use it after the store was changed by another process.
func (s *Service) Recompute() (models.UserStats, []models.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.records.DayProgress()
	if err != nil {
		return models.UserStats{}, nil, err
	}
	return s.recomputeLocked(s.clock.Now(), entries)
}

// Ledger returns the stored ledger sorted by day.
func (s *Service) Ledger() ([]models.DayProgressEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records.DayProgress()
}

// evaluate runs the achievement evaluator without persisting anything.
func (s *Service) evaluate(now time.Time, entries []models.DayProgressEntry) achievements.Result {
	unlocks, err := s.records.Unlocks()
	if err != nil {
		logger.Warn("Failed to read unlocks", "error", err)
	}
	actions, err := s.records.EmergencyLog()
	if err != nil {
		logger.Warn("Failed to read emergency log", "error", err)
	}
	summary := ledger.Summarize(entries)
	return achievements.Evaluate(achievements.NewInput(summary, recoveredMinutes(summary, actions)), unlocks, now)
}

// recomputeLocked is the single recompute step: summarise the ledger,
// evaluate achievements, derive the level, persist new unlocks and the
// stats cache, and announce new unlocks.
func (s *Service) recomputeLocked(now time.Time, entries []models.DayProgressEntry) (models.UserStats, []models.Achievement, error) {
	unlocks, err := s.records.Unlocks()
	if err != nil {
		return models.UserStats{}, nil, err
	}
	actions, err := s.records.EmergencyLog()
	if err != nil {
		return models.UserStats{}, nil, err
	}

	summary := ledger.Summarize(entries)
	recovered := recoveredMinutes(summary, actions)
	res := achievements.Evaluate(achievements.NewInput(summary, recovered), unlocks, now)

	if len(res.NewlyUnlocked) > 0 {
		if err := s.records.SaveUnlocks(res.Unlocks); err != nil {
			return models.UserStats{}, nil, fmt.Errorf("failed to save achievements: %w", err)
		}
	}

	stars := achievements.TotalStars(res.All)
	lvl := level.For(stars)
	stats := models.UserStats{
		TotalTimeRecoveredMinutes: recovered,
		DaysCompleted:             summary.DaysCompleted,
		CurrentStreak:             summary.CurrentStreak,
		TotalReflections:          summary.TotalReflections,
		PerfectCompletions:        summary.PerfectCompletions,
		TotalStars:                stars,
		Level:                     lvl.Level,
		StarsToNextLevel:          lvl.StarsToNext,
		Achievements:              res.All,
		ComputedAt:                now,
	}
	if err := s.records.SaveUserStats(stats); err != nil {
		// The cache is re-derivable; a failed write is not fatal.
		logger.Warn("Failed to cache user stats", "error", err)
	}

	for _, a := range res.NewlyUnlocked {
		logger.Info("Achievement unlocked", "id", a.ID, "stars", a.Stars)
		s.sink.Notify(notifier.Toast{
			Title:       "Achievement unlocked: " + a.Name,
			Description: fmt.Sprintf("%s (+%d stars)", a.Description, a.Stars),
			Severity:    constants.SeveritySuccess,
		})
	}
	return stats, res.NewlyUnlocked, nil
}

func recoveredMinutes(summary ledger.Summary, actions []models.EmergencyAction) int {
	total := summary.MinutesSpent
	for _, a := range actions {
		total += a.Minutes
	}
	return total
}
