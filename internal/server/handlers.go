package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unscroll/unscroll/internal/catalog"
	"github.com/unscroll/unscroll/internal/constants"
	"github.com/unscroll/unscroll/internal/ledger"
	"github.com/unscroll/unscroll/internal/models"
	"github.com/unscroll/unscroll/internal/progress"
	"github.com/unscroll/unscroll/internal/scroll"
	"github.com/unscroll/unscroll/internal/utils"
)

type todayResponse struct {
	Day                int                      `json:"day"`
	LastAccessDate     string                   `json:"last_access_date"`
	Locked             bool                     `json:"locked"`
	Advanced           bool                     `json:"advanced"`
	SecondsUntilUnlock int                      `json:"seconds_until_unlock"`
	Countdown          string                   `json:"countdown"`
	Activity           models.Activity          `json:"activity"`
	Entry              *models.DayProgressEntry `json:"entry,omitempty"`
	Stats              models.UserStats         `json:"stats"`
}

func newTodayResponse(t progress.Today) todayResponse {
	return todayResponse{
		Day:                t.Decision.Record.CurrentDay,
		LastAccessDate:     t.Decision.Record.LastAccessDate,
		Locked:             t.Decision.Locked,
		Advanced:           t.Decision.Advanced,
		SecondsUntilUnlock: t.Decision.SecondsUntilUnlock,
		Countdown:          utils.FormatCountdown(t.Decision.SecondsUntilUnlock),
		Activity:           t.Activity,
		Entry:              t.Entry,
		Stats:              t.Stats,
	}
}

// GetToday evaluates the access gate and returns the current day.
func (a *API) GetToday(c *gin.Context) {
	var today progress.Today
	toasts, err := a.withToasts(func() (err error) {
		today, err = a.svc.Visit()
		return err
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"today": newTodayResponse(today), "toasts": toasts})
}

type completeRequest struct {
	Day              int    `json:"day"`
	Status           string `json:"status"`
	ReflectionText   string `json:"reflection_text"`
	TimeSpentMinutes *int   `json:"time_spent_minutes"`
	Revise           bool   `json:"revise"`
}

// CompleteToday records a completion. Validation failures are 400s.
func (a *API) CompleteToday(c *gin.Context) {
	var req completeRequest
	if !bindJSON(c, &req, "invalid completion payload") {
		return
	}

	var res progress.CompleteResult
	toasts, err := a.withToasts(func() (err error) {
		res, err = a.svc.Complete(ledger.Completion{
			Day:              req.Day,
			Status:           req.Status,
			ReflectionText:   req.ReflectionText,
			TimeSpentMinutes: req.TimeSpentMinutes,
		}, progress.CompleteOptions{Revise: req.Revise})
		return err
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entry":          res.Entry,
		"stats":          res.Stats,
		"newly_unlocked": res.NewlyUnlocked,
		"leveled_up":     res.LeveledUp,
		"toasts":         toasts,
	})
}

func (a *API) GetStats(c *gin.Context) {
	var stats models.UserStats
	toasts, err := a.withToasts(func() (err error) {
		stats, err = a.svc.Stats()
		return err
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats, "toasts": toasts})
}

func (a *API) GetAchievements(c *gin.Context) {
	stats, err := a.svc.Stats()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"achievements": stats.Achievements,
		"unlocked":     stats.UnlockedCount(),
		"total_stars":  stats.TotalStars,
	})
}

// GetActivity returns one catalog entry with its description rendered to
// HTML. Out-of-range days are clamped like every catalog lookup.
func (a *API) GetActivity(c *gin.Context) {
	day, ok := parseIntParam(c, "day")
	if !ok {
		return
	}
	activity := catalog.Get(day)
	rendered, err := renderMarkdown(activity.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": activity, "html": rendered})
}

func (a *API) ListEmergency(c *gin.Context) {
	actions, err := a.svc.EmergencyLog()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"actions": actions})
}

type emergencyRequest struct {
	Action  string `json:"action"`
	Minutes int    `json:"minutes"`
}

func (a *API) LogEmergency(c *gin.Context) {
	var req emergencyRequest
	if !bindJSON(c, &req, "invalid emergency payload") {
		return
	}
	var (
		action models.EmergencyAction
		newly  []models.Achievement
	)
	toasts, err := a.withToasts(func() (err error) {
		action, newly, err = a.svc.LogEmergency(req.Action, req.Minutes)
		return err
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"action": action, "newly_unlocked": newly, "toasts": toasts})
}

type resetRequest struct {
	All     bool `json:"all"`
	Confirm bool `json:"confirm"`
}

// Reset requires an explicit confirm flag.
func (a *API) Reset(c *gin.Context) {
	var req resetRequest
	if !bindJSON(c, &req, "invalid reset payload") {
		return
	}
	if !req.Confirm {
		respondError(c, http.StatusBadRequest, "reset requires confirm: true")
		return
	}
	var backupPath string
	toasts, err := a.withToasts(func() (err error) {
		backupPath, err = a.svc.Reset(req.All)
		return err
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reset": true, "all": req.All, "backup": backupPath, "toasts": toasts})
}

type scrollEventRequest struct {
	At       *time.Time `json:"at"`
	Position float64    `json:"position"`
	Source   string     `json:"source"`
}

type scrollEventsRequest struct {
	Events []scrollEventRequest `json:"events" binding:"required,min=1"`
}

// RecordScrollEvents feeds a batch of raw events to the shared monitor.
func (a *API) RecordScrollEvents(c *gin.Context) {
	var req scrollEventsRequest
	if !bindJSON(c, &req, "events must be a non-empty list") {
		return
	}

	events := make([]scroll.Event, 0, len(req.Events))
	for _, e := range req.Events {
		src, err := scroll.ParseSource(e.Source)
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		ev := scroll.Event{Position: e.Position, Source: src}
		if e.At != nil {
			ev.At = *e.At
		}
		events = append(events, ev)
	}

	outcomes := make([]scroll.Outcome, 0, len(events))
	interventions := 0
	for _, ev := range events {
		out := a.monitor.Record(ev)
		if out.Fired {
			interventions++
		}
		outcomes = append(outcomes, out)
	}

	reading := a.monitor.Reading()
	c.JSON(http.StatusOK, gin.H{
		"outcomes":      outcomes,
		"interventions": interventions,
		"reading":       reading,
		"alert":         reading.Label != constants.ScrollMindful,
	})
}

func (a *API) GetScroll(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"reading": a.monitor.Reading()})
}
