package ui

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"confmat/app"
	"confmat/internal"
	"confmat/ports"
)

// App represents the HTTP application for the serve subcommand
type App struct {
	router  *chi.Mux
	service *app.ReportService
	ledger  ports.RunLedgerPort
	logger  *internal.Logger
}

// NewApp creates a new HTTP application around a report service.
// The ledger may be nil; the runs endpoint then reports it as disabled.
func NewApp(service *app.ReportService, ledger ports.RunLedgerPort) *App {
	a := &App{
		router:  chi.NewRouter(),
		service: service,
		ledger:  ledger,
		logger:  internal.DefaultLogger,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Timeout(60 * time.Second))
}

// setupRoutes configures application routes
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)
	a.router.Route("/api", func(r chi.Router) {
		r.Post("/generate", a.handleGenerate)
		r.Get("/runs", a.handleListRuns)
	})
}

// Router exposes the chi mux, mainly for tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Start runs the HTTP server until ctx is cancelled, then shuts it down.
func (a *App) Start(ctx context.Context, port int) error {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: a.router,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("serving on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
