package app

import (
	"sync"

	"forge/internal/domain"
)

// Session holds the one account active in this process. It is passed to
// every service that needs the current account.
type Session struct {
	mu      sync.RWMutex
	account *domain.Account
}

// NewSession returns an inactive session.
func NewSession() *Session {
	return &Session{}
}

// Activate makes account the current account.
func (s *Session) Activate(account domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = &account
}

// Deactivate clears the current account.
func (s *Session) Deactivate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = nil
}

// Current returns the active account or ErrNoActiveAccount.
func (s *Session) Current() (domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.account == nil {
		return domain.Account{}, ErrNoActiveAccount
	}
	return *s.account, nil
}

// Active reports whether an account is signed in.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account != nil
}
