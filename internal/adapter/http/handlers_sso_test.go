package adapthttp_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	adapthttp "forge/internal/adapter/http"
	"forge/internal/adapter/memory"
	"forge/internal/app"
	"forge/internal/domain"
	"forge/internal/store"

	"golang.org/x/oauth2"
)

func newSSOHandler(t *testing.T, enabled bool) http.Handler {
	t.Helper()
	st := store.New(memory.New())
	session := app.NewSession()
	cal := domain.NewCalendar(domain.FixedClock(testNow))
	srv := adapthttp.New(adapthttp.Services{Auth: app.NewAuthService(st, session, cal)}, "")
	if enabled {
		srv.WithOIDC(adapthttp.OIDCConfig{
			Enabled: true,
			OAuth2Config: oauth2.Config{
				ClientID:    "forge",
				RedirectURL: "http://localhost:8080/api/auth/sso/callback",
				Endpoint: oauth2.Endpoint{
					AuthURL:  "https://id.example.com/authorize",
					TokenURL: "https://id.example.com/token",
				},
				Scopes: []string{"openid", "email"},
			},
		})
	}
	return srv.Handler()
}

func TestAuthConfig(t *testing.T) {
	for _, enabled := range []bool{false, true} {
		rec := httptest.NewRecorder()
		newSSOHandler(t, enabled).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/config", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var body map[string]bool
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatal(err)
		}
		if body["sso_enabled"] != enabled {
			t.Errorf("sso_enabled = %v; want %v", body["sso_enabled"], enabled)
		}
	}
}

func TestSSODisabled(t *testing.T) {
	h := newSSOHandler(t, false)
	for _, path := range []string{"/api/auth/sso/login", "/api/auth/sso/callback"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s status = %d; want 404", path, rec.Code)
		}
	}
}

func TestSSOLoginRedirectsWithState(t *testing.T) {
	rec := httptest.NewRecorder()
	newSSOHandler(t, true).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/sso/login", nil))
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d; want 302", rec.Code)
	}

	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(loc.String(), "https://id.example.com/authorize") {
		t.Errorf("Location = %q", loc)
	}

	var state string
	for _, c := range rec.Result().Cookies() {
		if c.Name == "oauth_state" {
			state = c.Value
		}
	}
	if state == "" || loc.Query().Get("state") != state {
		t.Errorf("state cookie %q does not match redirect state %q", state, loc.Query().Get("state"))
	}
}

func TestSSOCallbackRejectsBadState(t *testing.T) {
	h := newSSOHandler(t, true)
	tests := []struct {
		name   string
		cookie string
	}{
		{"no cookie", ""},
		{"mismatch", "other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/sso/callback?state=abc&code=x", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "oauth_state", Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d; want 400", rec.Code)
			}
		})
	}
}
