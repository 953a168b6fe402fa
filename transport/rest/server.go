package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/matryer/way"
)

// NewRouter - wires the REST endpoints. metrics may be nil.
func NewRouter(h Handlers, metrics http.Handler) *way.Router {
	router := way.NewRouter()
	router.HandleFunc(http.MethodGet, "/ping", h.PingHandler)
	router.HandleFunc(http.MethodGet, "/players/:name/stats", h.PlayerStatsHandler)
	router.HandleFunc(http.MethodGet, "/games/:id", h.GameResultHandler)

	if metrics != nil {
		router.Handle(http.MethodGet, "/metrics", metrics)
	}

	return router
}

// Start - serves handler on port until ctx is done.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
