package domain

import "strings"

// Default goals used when registration input is missing or not numeric.
const (
	DefaultRunsPerWeek     = 3
	DefaultWorkoutsPerWeek = 4
	DefaultCaloriesPerDay  = 2000
)

// Goals are the weekly and daily targets of an account.
type Goals struct {
	RunsPerWeek     int `json:"runsPerWeek" toml:"runs_per_week" yaml:"runsPerWeek"`
	WorkoutsPerWeek int `json:"workoutsPerWeek" toml:"workouts_per_week" yaml:"workoutsPerWeek"`
	CaloriesPerDay  int `json:"caloriesPerDay" toml:"calories_per_day" yaml:"caloriesPerDay"`
}

// DefaultGoals returns the goals assigned when none are supplied.
func DefaultGoals() Goals {
	return Goals{
		RunsPerWeek:     DefaultRunsPerWeek,
		WorkoutsPerWeek: DefaultWorkoutsPerWeek,
		CaloriesPerDay:  DefaultCaloriesPerDay,
	}
}

// Account is the single-user profile. Email is the immutable lookup key and
// ID namespaces the account's logs in storage.
type Account struct {
	ID         string `json:"id" toml:"id" yaml:"id"`
	Name       string `json:"name" toml:"name" yaml:"name"`
	Email      string `json:"email" toml:"email" yaml:"email"`
	Timezone   string `json:"timezone" toml:"timezone" yaml:"timezone"`
	JoinedDate string `json:"joinedDate" toml:"joined_date" yaml:"joinedDate"`
	Goals      Goals  `json:"goals" toml:"goals" yaml:"goals"`
}

// Credentials is the account directory entry. PasswordHash is a bcrypt hash,
// empty for accounts provisioned through single sign-on.
type Credentials struct {
	Account
	PasswordHash string `json:"passwordHash"`
}

// NormalizeEmail lower-cases and trims an email into its lookup key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
