package access

import (
	"context"
	"time"

	"github.com/unscroll/unscroll/internal/utils"
)

// Countdown reports the seconds left until local midnight every interval
// until ctx is done. When the local date changes between two ticks it
// reports 0 and then calls onRollover, and keeps counting toward the
// following midnight. Either callback may be nil.
//
// Countdown blocks; run it in its own goroutine. It returns once ctx is
// done and leaves no timers behind.
func Countdown(ctx context.Context, clock utils.Clock, interval time.Duration, onTick func(seconds int), onRollover func()) {
	if interval <= 0 {
		interval = time.Second
	}
	if onTick == nil {
		onTick = func(int) {}
	}
	if onRollover == nil {
		onRollover = func() {}
	}

	now := clock.Now()
	date := utils.LocalDate(now)
	onTick(utils.SecondsUntilMidnight(now))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := clock.Now()
			if today := utils.LocalDate(now); today != date {
				date = today
				onTick(0)
				onRollover()
				continue
			}
			onTick(utils.SecondsUntilMidnight(now))
		}
	}
}
