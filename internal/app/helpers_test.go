package app_test

import (
	"context"
	"testing"
	"time"

	"forge/internal/adapter/memory"
	"forge/internal/app"
	"forge/internal/domain"
	"forge/internal/store"
)

// testClock is a settable clock.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// testNow is a Monday morning.
var testNow = time.Date(2026, 3, 9, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	clock   *testClock
	cal     domain.Calendar
	db      *memory.DB
	store   *store.Store
	session *app.Session
	auth    *app.AuthService
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	clock := &testClock{now: testNow}
	cal := domain.NewCalendar(clock)
	db := memory.New()
	st := store.New(db)
	session := app.NewSession()
	return &testEnv{
		clock:   clock,
		cal:     cal,
		db:      db,
		store:   st,
		session: session,
		auth:    app.NewAuthService(st, session, cal),
	}
}

// signedIn returns an env with a registered, active account.
func signedIn(t *testing.T) *testEnv {
	t.Helper()
	env := newEnv(t)
	_, err := env.auth.Register(context.Background(), app.RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return env
}

func (e *testEnv) logs(t *testing.T) app.Logs {
	t.Helper()
	account, err := e.session.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	return app.LogsFor(e.store, account.ID)
}

// day returns the day string n days from the test clock's today.
func (e *testEnv) day(n int) string {
	return e.cal.DayOffset(n)
}
