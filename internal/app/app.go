package app

import (
	"context"
	"net/http"
	"time"

	"github.com/eventdeck/eventdeck/internal/config"
	"github.com/eventdeck/eventdeck/internal/database"
	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, database, router, refresh cron, and
// server lifecycle.
type Application struct {
	cfg    config.Application
	router *mux.Router
	srv    *http.Server
	cron   *cron.Cron
	deps   *Dependencies
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	// DB + migrations
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(cfg.Database); err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	// Build dependencies (services, handlers...)
	deps := BuildDependencies(db, cfg)

	// Middleware chain
	SetupMiddleware(r, deps, cfg)

	// Routes
	RegisterRoutes(r, deps, cfg)

	// Periodic feed refresh
	c := cron.New()
	if _, err := c.AddFunc(cfg.Refresh.Cron, func() {
		if err := deps.Catalog.Refresh(context.Background()); err != nil {
			log.Errorf("scheduled catalog refresh failed: %v", err)
		}
	}); err != nil {
		return nil, err
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, router: r, srv: srv, cron: c, deps: deps}, nil
}

// Run performs the initial catalog refresh, starts the refresh cron, and
// blocks serving HTTP.
func (a *Application) Run() error {
	if err := a.deps.Catalog.Refresh(context.Background()); err != nil {
		// The catalog stays empty until the next scheduled refresh succeeds.
		log.Errorf("initial catalog refresh failed: %v", err)
	}
	a.cron.Start()

	log.Infof("Starting server on %s", a.srv.Addr)
	return a.srv.ListenAndServe()
}
