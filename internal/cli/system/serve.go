package system

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/unscroll/unscroll/internal/cli"
	"github.com/unscroll/unscroll/internal/constants"
	"github.com/unscroll/unscroll/internal/logger"
	"github.com/unscroll/unscroll/internal/server"
	"github.com/unscroll/unscroll/internal/storage"
)

type ServeCmd struct {
	Addr string `help:"Listen address. Defaults to server.listen_addr from the config."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	addr := c.Addr
	if addr == "" {
		addr = ctx.Config.Server.ListenAddr
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.PerformAutomaticBackup()

	if err := ctx.Monitor.Start(sigCtx); err != nil {
		return err
	}
	defer ctx.Monitor.Stop()
	defer ctx.WatchScroll()()

	g, gctx := errgroup.WithContext(sigCtx)

	// Ledger edits from another process re-derive stats here. The callback
	// runs inside the writer's call, so the recompute happens on its own
	// goroutine.
	changed := make(chan struct{}, 1)
	unsubscribe := ctx.Store.Subscribe(func(key string) {
		if key != constants.KeyDayProgress {
			return
		}
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-changed:
				if _, _, err := ctx.Service.Recompute(); err != nil {
					logger.Warn("Recompute after store change failed", "error", err)
				}
			}
		}
	})

	if js, ok := ctx.Store.(*storage.JSONStore); ok {
		w, err := storage.NewWatcher(js)
		if err != nil {
			return err
		}
		g.Go(func() error { return w.Run(gctx) })
	}

	api := server.NewAPI(ctx.Service, ctx.Monitor, ctx.Toasts)
	g.Go(func() error { return server.Serve(gctx, addr, api.Router()) })

	ctx.Printf("Listening on http://%s\n", addr)
	return g.Wait()
}
