package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/unscroll/unscroll/internal/config"
	"github.com/unscroll/unscroll/internal/keyring"
	"github.com/unscroll/unscroll/internal/scroll"
	"github.com/unscroll/unscroll/internal/storage"
)

func TestWatchScrollToastsOnExcessive(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "unscroll.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"
	cfg.Notifications.Tray = false
	cfg.Scroll.Tick = 5 * time.Millisecond
	// Keep the interceptor from suppressing the burst.
	cfg.Scroll.Sensitivity = 1000

	ctx, err := NewContext(cfg, store, keyring.SourceConfig)
	if err != nil {
		t.Fatal(err)
	}

	// 20 events 100ms apart, 100px each: 4 events/s at 1000 px/s.
	start := time.Now().Add(-2 * time.Second)
	for i := 0; i < 20; i++ {
		ctx.Monitor.Record(scroll.Event{
			At:       start.Add(time.Duration(i) * 100 * time.Millisecond),
			Position: float64(i * 100),
		})
	}

	unsubscribe := ctx.WatchScroll()
	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := ctx.Monitor.Start(runCtx); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for ctx.Toasts.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	ctx.Monitor.Stop()
	unsubscribe()

	toasts := ctx.Toasts.Drain()
	if len(toasts) != 1 || !strings.Contains(toasts[0].Title, "Excessive") {
		t.Errorf("toasts = %v, want one excessive scrolling toast", toasts)
	}
}
