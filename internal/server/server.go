// Package server exposes the progress service and the scroll monitor as a
// local JSON API.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unscroll/unscroll/internal/logger"
	"github.com/unscroll/unscroll/internal/notifier"
	"github.com/unscroll/unscroll/internal/progress"
	"github.com/unscroll/unscroll/internal/scroll"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	svc     *progress.Service
	monitor *scroll.Monitor
	// toasts collects toasts raised while serving a request. mu is held
	// from the service call through the drain so one response never picks
	// up another request's toasts. Toasts raised in the background land in
	// the next response.
	mu     sync.Mutex
	toasts *notifier.Recorder
}

func NewAPI(svc *progress.Service, monitor *scroll.Monitor, toasts *notifier.Recorder) *API {
	if toasts == nil {
		toasts = &notifier.Recorder{}
	}
	return &API{svc: svc, monitor: monitor, toasts: toasts}
}

// withToasts runs fn and returns the toasts raised up to its return.
func (a *API) withToasts(fn func() error) ([]notifier.Toast, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := fn(); err != nil {
		return nil, err
	}
	return a.toasts.Drain(), nil
}

// Router builds the gin engine with every route registered.
func (a *API) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/api")
	{
		api.GET("/today", a.GetToday)
		api.POST("/today/complete", a.CompleteToday)
		api.GET("/stats", a.GetStats)
		api.GET("/achievements", a.GetAchievements)
		api.GET("/activities/:day", a.GetActivity)
		api.GET("/emergency", a.ListEmergency)
		api.POST("/emergency", a.LogEmergency)
		api.POST("/reset", a.Reset)
		api.POST("/scroll/events", a.RecordScrollEvents)
		api.GET("/scroll", a.GetScroll)
	}
	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP API listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
