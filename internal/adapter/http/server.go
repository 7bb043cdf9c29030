// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"forge/internal/app"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// Services are the application services the adapter drives.
type Services struct {
	Auth     *app.AuthService
	Runs     *app.RunService
	Focus    *app.FocusService
	Meals    *app.MealService
	Workouts *app.WorkoutService
	Summary  *app.SummaryService
	Review   *app.ReviewService
	Export   *app.ExportService
}

// OIDCConfig enables browser sign-in through an OpenID Connect provider.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	svc        Services
	webDir     string
	oidcConfig OIDCConfig
}

// New creates a Server wired to the given application services. An empty
// webDir serves the API only.
func New(svc Services, webDir string) *Server {
	return &Server{svc: svc, webDir: webDir}
}

// WithOIDC enables the single sign-on routes.
func (s *Server) WithOIDC(cfg OIDCConfig) *Server {
	s.oidcConfig = cfg
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/auth/register", s.handleRegister)
	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/config", s.handleConfig)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)
	api.Handle("/auth/me", s.requireAccount(http.HandlerFunc(s.handleMe)))

	authed := http.NewServeMux()
	authed.HandleFunc("/summary", s.handleSummary)
	authed.HandleFunc("/daily", s.handleDaily)
	authed.HandleFunc("/runs", s.handleRuns)
	authed.HandleFunc("/runs/timer", s.handleRunTimer)
	authed.HandleFunc("/focus", s.handleFocus)
	authed.HandleFunc("/meals", s.handleMeals)
	authed.HandleFunc("/meals/delete", s.handleMealDelete)
	authed.HandleFunc("/workouts", s.handleWorkouts)
	authed.HandleFunc("/workouts/complete", s.handleWorkoutComplete)
	authed.HandleFunc("/review", s.handleReview)
	authed.HandleFunc("/review/generate", s.handleReviewGenerate)
	authed.HandleFunc("/review/accept", s.handleReviewAccept)
	authed.HandleFunc("/review/skip", s.handleReviewSkip)
	authed.HandleFunc("/export.csv", s.handleExportCSV)
	api.Handle("/", s.requireAccount(authed))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	if s.webDir != "" {
		root.Handle("/", spaFromDisk(s.webDir))
	}

	return s.loggingMiddleware(withNoCache(root))
}
