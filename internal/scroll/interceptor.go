package scroll

import (
	"time"

	"github.com/unscroll/unscroll/internal/constants"
)

// Outcome is what the interceptor did with one event.
type Outcome struct {
	// Count is the burst length after this event; 0 after firing.
	Count int `json:"count"`
	// Fired is set on the event that triggered an intervention.
	Fired bool `json:"fired"`
	// Suppressed events arrived during a cooldown and were not counted.
	Suppressed bool `json:"suppressed"`
}

// Intervention describes a triggered burst.
type Intervention struct {
	At            time.Time `json:"at"`
	Events        int       `json:"events"`
	CooldownUntil time.Time `json:"cooldown_until"`
}

// Interceptor counts bursts of closely spaced events. When Sensitivity
// events arrive with no gap longer than Debounce it fires, resets and
// ignores events until Cooldown has elapsed. An event at exactly the end of
// the cooldown is counted as the first of a new burst.
type Interceptor struct {
	debounce      time.Duration
	sensitivity   int
	cooldown      time.Duration
	count         int
	lastAt        time.Time
	cooldownUntil time.Time
}

func NewInterceptor(sensitivity int, debounce, cooldown time.Duration) *Interceptor {
	if sensitivity <= 0 {
		sensitivity = constants.DefaultScrollSensitivity
	}
	if debounce <= 0 {
		debounce = constants.DefaultScrollDebounce
	}
	if cooldown < 0 {
		cooldown = 0
	}
	return &Interceptor{debounce: debounce, sensitivity: sensitivity, cooldown: cooldown}
}

// Observe feeds one event time. The returned Intervention is only
// meaningful when Outcome.Fired is set.
func (i *Interceptor) Observe(at time.Time) (Outcome, Intervention) {
	if i.InCooldown(at) {
		return Outcome{Suppressed: true}, Intervention{}
	}

	if !i.lastAt.IsZero() && at.Sub(i.lastAt) > i.debounce {
		i.count = 0
	}
	i.count++
	i.lastAt = at

	if i.count < i.sensitivity {
		return Outcome{Count: i.count}, Intervention{}
	}

	iv := Intervention{At: at, Events: i.count, CooldownUntil: at.Add(i.cooldown)}
	i.count = 0
	i.lastAt = time.Time{}
	i.cooldownUntil = iv.CooldownUntil
	return Outcome{Fired: true}, iv
}

// InCooldown reports whether at falls strictly inside the current cooldown.
func (i *Interceptor) InCooldown(at time.Time) bool {
	return !i.cooldownUntil.IsZero() && at.Before(i.cooldownUntil)
}

// Count is the current burst length.
func (i *Interceptor) Count() int { return i.count }

func (i *Interceptor) Reset() {
	i.count = 0
	i.lastAt = time.Time{}
	i.cooldownUntil = time.Time{}
}
