// Package domain contains the tracker's entities, calendar math and the
// derived-metrics engine.
package domain

import "fmt"

// Kind names one persisted value kind.
type Kind string

// Persisted value kinds.
const (
	KindCurrentUser Kind = "user"
	KindCredentials Kind = "u"
	KindRuns        Kind = "runs"
	KindFocus       Kind = "focus"
	KindMeals       Kind = "meals"
	KindWorkouts    Kind = "workouts"
	KindReview      Kind = "review"
	KindFocusTimer  Kind = "focus_timer"
	KindRunTimer    Kind = "run_timer"
)

// Key addresses one stored value. An empty Account marks a process-wide
// entry such as the current-user pointer.
type Key struct {
	Account string
	Kind    Kind
}

// GlobalKey returns the process-wide key for kind.
func GlobalKey(kind Kind) Key {
	return Key{Kind: kind}
}

// AccountKey returns the key for kind scoped to an account.
func AccountKey(account string, kind Kind) Key {
	return Key{Account: account, Kind: kind}
}

// String renders the persisted name, e.g. "forge_runs_v1/<account>".
func (k Key) String() string {
	switch {
	case k.Kind == KindCredentials:
		return "forge_u_" + k.Account
	case k.Account == "":
		return fmt.Sprintf("forge_%s_v1", k.Kind)
	default:
		return fmt.Sprintf("forge_%s_v1/%s", k.Kind, k.Account)
	}
}
