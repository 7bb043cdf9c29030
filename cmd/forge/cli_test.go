package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"forge/internal/domain"

	"github.com/fatih/color"
)

var cliNow = time.Date(2026, 3, 9, 9, 30, 0, 0, time.UTC)

// setup writes a config over a temp file store and returns its path.
func setup(t *testing.T) string {
	t.Helper()
	for _, k := range []string{
		"FORGE_STORE_DRIVER", "FORGE_DATA_DIR", "DATABASE_URL", "TURSO_DATABASE_URL",
		"TURSO_AUTH_TOKEN", "ANTHROPIC_API_KEY", "FORGE_COACH_MODEL", "ADDR", "WEB_DIR", "DEV_MODE",
		"OIDC_ISSUER", "OIDC_CLIENT_ID", "OIDC_CLIENT_SECRET", "OIDC_REDIRECT_URL",
	} {
		t.Setenv(k, "")
	}
	color.NoColor = true

	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg := fmt.Sprintf("[store]\ndriver = \"file\"\ndata_dir = %q\n\n[coach]\nenabled = false\n", filepath.Join(dir, "data"))
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmdWithClock(domain.FixedClock(cliNow))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_RegisterPersistsSession(t *testing.T) {
	cfg := setup(t)

	out, err := run(t, cfg, "register", "--name", "Ada", "--email", "ada@example.com", "--password", "secret1", "--timezone", "UTC")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !strings.Contains(out, "Welcome, Ada") {
		t.Fatalf("register output = %q", out)
	}

	out, err = run(t, cfg, "whoami")
	if err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if !strings.Contains(out, "ada@example.com") {
		t.Fatalf("whoami output = %q", out)
	}

	if _, err := run(t, cfg, "logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := run(t, cfg, "whoami"); err == nil {
		t.Fatal("whoami after logout: expected error")
	}

	if _, err := run(t, cfg, "login", "--email", "ada@example.com", "--password", "nope"); err == nil || err.Error() != "incorrect password" {
		t.Fatalf("login with wrong password: err = %v", err)
	}
	if _, err := run(t, cfg, "login", "--email", "ada@example.com", "--password", "secret1"); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func TestCLI_LogsShowUpInStatus(t *testing.T) {
	cfg := setup(t)
	if _, err := run(t, cfg, "register", "--name", "Ada", "--email", "ada@example.com", "--password", "secret1"); err != nil {
		t.Fatal(err)
	}

	steps := [][]string{
		{"meal", "add", "--name", "Oats", "--calories", "400", "--type", "Breakfast", "--time", "08:00"},
		{"run", "add", "--duration", "30m", "--distance", "5000"},
		{"workout", "quick"},
	}
	for _, args := range steps {
		if out, err := run(t, cfg, args...); err != nil {
			t.Fatalf("%v: %v (%s)", args, err, out)
		}
	}

	out, err := run(t, cfg, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	for _, want := range []string{"400 kcal", "Today's discipline: 75%", "Runs this week: 1 / 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("status output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, cfg, "export", "--format", "csv")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(out, "Type,Date,Value,Detail\n") {
		t.Fatalf("export output = %q", out)
	}
	if !strings.Contains(out, "Run,2026-03-09,5.00 km,30:00") {
		t.Errorf("export missing run row:\n%s", out)
	}
}

func TestCLI_RequiresSignIn(t *testing.T) {
	cfg := setup(t)
	if _, err := run(t, cfg, "status"); err == nil {
		t.Fatal("expected error without an account")
	}
}
