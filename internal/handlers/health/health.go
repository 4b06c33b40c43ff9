// Package health exposes the process's minimal HTTP surface: a single
// liveness route. It is a boundary marker only and carries no pipeline
// logic.
package health

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/openlake/socialnotify/internal/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// livenessBody is the static response of the liveness route.
const livenessBody = "NEAR Social Notification API"

const shutdownTimeout = 5 * time.Second

// NewRouter builds the health router.
func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(livenessBody))
	})

	return r
}

// Serve starts the liveness HTTP server on addr in the background and shuts
// it down gracefully once ctx is canceled.
func Serve(ctx context.Context, addr string) {
	srv := &http.Server{
		Addr:    addr,
		Handler: NewRouter(),
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "health server stopped unexpectedly", "error", err)
		}
	}()
}
