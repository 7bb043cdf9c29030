// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"forge/internal/domain"
	"forge/internal/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrDuplicateAccount indicates the email is already registered.
	ErrDuplicateAccount = errors.New("account already exists")
	// ErrValidation wraps a user-facing registration or login input problem.
	ErrValidation = errors.New("validation")
	// ErrNotFound indicates no account is registered for the email.
	ErrNotFound = errors.New("no account found")
	// ErrInvalidCredentials indicates the password did not match.
	ErrInvalidCredentials = errors.New("incorrect password")
	// ErrNoActiveAccount indicates an operation needs a signed-in account.
	ErrNoActiveAccount = errors.New("no active account")
)

const minPasswordLen = 6

// RegisterInput is the registration form. Goal fields are raw text and fall
// back to defaults when they are not positive integers.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	Timezone        string
	RunsPerWeek     string
	WorkoutsPerWeek string
	CaloriesPerDay  string
}

// AuthService handles registration, login and the current-account pointer.
type AuthService struct {
	store   *store.Store
	session *Session
	cal     domain.Calendar
	current store.Value[*domain.Account]
	newID   func() string
}

// NewAuthService creates a new authentication service.
func NewAuthService(st *store.Store, session *Session, cal domain.Calendar) *AuthService {
	return &AuthService{
		store:   st,
		session: session,
		cal:     cal,
		current: store.NewValue[*domain.Account](st, domain.GlobalKey(domain.KindCurrentUser), nil),
		newID:   uuid.NewString,
	}
}

func (s *AuthService) directory(email string) store.Value[*domain.Credentials] {
	return store.NewValue[*domain.Credentials](s.store, domain.AccountKey(email, domain.KindCredentials), nil)
}

// Register validates the form, creates the account directory entry and
// activates the new account.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.Account, error) {
	email := domain.NormalizeEmail(in.Email)
	if email == "" || strings.TrimSpace(in.Password) == "" {
		return domain.Account{}, fmt.Errorf("%w: email and password required", ErrValidation)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Account{}, fmt.Errorf("%w: name required", ErrValidation)
	}
	if len(in.Password) < minPasswordLen {
		return domain.Account{}, fmt.Errorf("%w: password must be %d+ characters", ErrValidation, minPasswordLen)
	}

	tz := strings.TrimSpace(in.Timezone)
	if tz == "" {
		tz = s.cal.Now().Location().String()
	}
	account := domain.Account{
		ID:         s.newID(),
		Name:       name,
		Email:      email,
		Timezone:   tz,
		JoinedDate: s.cal.Today(),
		Goals: domain.Goals{
			RunsPerWeek:     parseGoal(in.RunsPerWeek, domain.DefaultRunsPerWeek),
			WorkoutsPerWeek: parseGoal(in.WorkoutsPerWeek, domain.DefaultWorkoutsPerWeek),
			CaloriesPerDay:  parseGoal(in.CaloriesPerDay, domain.DefaultCaloriesPerDay),
		},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return domain.Account{}, fmt.Errorf("%w: password must be at most 72 bytes", ErrValidation)
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("hash password: %w", err)
	}

	_, err = s.directory(email).Update(ctx, func(cur *domain.Credentials) (*domain.Credentials, error) {
		if cur != nil {
			return cur, ErrDuplicateAccount
		}
		return &domain.Credentials{Account: account, PasswordHash: string(hash)}, nil
	})
	if err != nil {
		return domain.Account{}, err
	}

	s.activate(ctx, account)
	return account, nil
}

// Login activates the account registered under email when password matches
// its stored hash.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Account, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return domain.Account{}, fmt.Errorf("%w: email and password required", ErrValidation)
	}
	creds := s.directory(email).Get(ctx)
	if creds == nil {
		return domain.Account{}, ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		return domain.Account{}, ErrInvalidCredentials
	}
	s.activate(ctx, creds.Account)
	return creds.Account, nil
}

// LoginWithIdentity activates the account for an email verified by an
// identity provider, provisioning one with default goals and no password
// when none is registered.
func (s *AuthService) LoginWithIdentity(ctx context.Context, email, name string) (domain.Account, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.Account{}, fmt.Errorf("%w: email required", ErrValidation)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	creds, err := s.directory(email).Update(ctx, func(cur *domain.Credentials) (*domain.Credentials, error) {
		if cur != nil {
			return cur, nil
		}
		return &domain.Credentials{Account: domain.Account{
			ID:         s.newID(),
			Name:       name,
			Email:      email,
			Timezone:   s.cal.Now().Location().String(),
			JoinedDate: s.cal.Today(),
			Goals:      domain.DefaultGoals(),
		}}, nil
	})
	if err != nil {
		return domain.Account{}, err
	}
	s.activate(ctx, creds.Account)
	return creds.Account, nil
}

// SignOut deactivates the current account. Stored logs are kept.
func (s *AuthService) SignOut(ctx context.Context) {
	s.session.Deactivate()
	s.current.Clear(ctx)
}

// Restore re-activates the account recorded as current by an earlier
// process, reporting whether one was found.
func (s *AuthService) Restore(ctx context.Context) (domain.Account, bool) {
	account := s.current.Get(ctx)
	if account == nil || account.ID == "" {
		return domain.Account{}, false
	}
	s.session.Activate(*account)
	return *account, true
}

// Current returns the signed-in account.
func (s *AuthService) Current() (domain.Account, error) {
	return s.session.Current()
}

func (s *AuthService) activate(ctx context.Context, account domain.Account) {
	s.session.Activate(account)
	s.current.Set(ctx, &account)
}

func parseGoal(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// ConstantTimeCompare performs a constant-time comparison of two strings.
func ConstantTimeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
