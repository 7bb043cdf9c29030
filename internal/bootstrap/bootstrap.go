// Package bootstrap wires configuration, storage and application services.
package bootstrap

import (
	"context"
	"fmt"
	"io"

	adapthttp "forge/internal/adapter/http"
	"forge/internal/adapter/coach"
	"forge/internal/adapter/file"
	"forge/internal/adapter/memory"
	"forge/internal/adapter/postgres"
	"forge/internal/adapter/sqlite"
	"forge/internal/app"
	"forge/internal/config"
	"forge/internal/domain"
	"forge/internal/store"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// App is a fully wired process.
type App struct {
	Config   *config.Config
	Session  *app.Session
	Services adapthttp.Services
	closer   io.Closer
}

// OpenBackend opens the storage backend selected by cfg. The returned closer
// may be nil.
func OpenBackend(cfg config.StoreConfig) (store.Backend, io.Closer, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.New(), nil, nil
	case config.DriverFile:
		fs, err := file.New(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return fs, nil, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(sqlite.DriverSQLite, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	case config.DriverLibSQL:
		db, err := sqlite.Open(sqlite.DriverLibSQL, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	case config.DriverPostgres:
		db, err := postgres.Open(cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// New wires services over cfg using clock. A nil clock is the system clock.
// The current account of an earlier process is restored.
func New(ctx context.Context, cfg *config.Config, clock domain.Clock) (*App, error) {
	backend, closer, err := OpenBackend(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}

	var reviewer domain.Coach
	if cfg.Coach.Enabled {
		reviewer = coach.New(coach.Config{
			BaseURL: cfg.Coach.BaseURL,
			APIKey:  cfg.Coach.APIKey,
			Model:   cfg.Coach.Model,
			Timeout: cfg.Coach.Timeout.Duration,
		})
	}

	st := store.New(backend)
	session := app.NewSession()
	cal := domain.NewCalendar(clock)

	a := &App{
		Config:  cfg,
		Session: session,
		Services: adapthttp.Services{
			Auth:     app.NewAuthService(st, session, cal),
			Runs:     app.NewRunService(st, session, cal),
			Focus:    app.NewFocusService(st, session, cal),
			Meals:    app.NewMealService(st, session, cal),
			Workouts: app.NewWorkoutService(st, session, cal),
			Summary:  app.NewSummaryService(st, session, cal),
			Review:   app.NewReviewService(st, session, cal, reviewer),
			Export:   app.NewExportService(st, session, cal),
		},
		closer: closer,
	}
	a.Services.Auth.Restore(ctx)
	return a, nil
}

// Handler returns the HTTP handler over the wired services. When single
// sign-on is configured the provider's discovery document is fetched first.
func (a *App) Handler(ctx context.Context) (*adapthttp.Server, error) {
	srv := adapthttp.New(a.Services, a.Config.Server.WebDir)
	sso := a.Config.SSO
	if !sso.Enabled() {
		return srv, nil
	}

	provider, err := oidc.NewProvider(ctx, sso.Issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc provider %s: %w", sso.Issuer, err)
	}
	return srv.WithOIDC(adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: oauth2.Config{
			ClientID:     sso.ClientID,
			ClientSecret: sso.ClientSecret,
			RedirectURL:  sso.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
	}), nil
}

// Close releases the storage backend.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
