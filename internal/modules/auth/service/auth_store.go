package service

import (
	"context"
	"fmt"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"writerly/internal/modules/auth/domain"
	authout "writerly/internal/modules/auth/port/out"
	"writerly/internal/platform/logging"
)

// AuthStore is the single process-wide login state. Reads are served from
// memory; Login and Logout write through to the persistent session store.
type AuthStore struct {
	store  authout.SessionStore
	logger hclog.Logger

	mu      sync.RWMutex
	session domain.Session
}

func NewAuthStore(store authout.SessionStore, logger hclog.Logger) *AuthStore {
	return &AuthStore{store: store, logger: logging.OrNull(logger).Named("auth")}
}

// Restore populates memory from persistent storage; called once at startup.
func (s *AuthStore) Restore(ctx context.Context) error {
	session, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
	if session.Authenticated() {
		s.logger.Debug("restored session")
	}
	return nil
}

func (s *AuthStore) Login(ctx context.Context, token string, user domain.User) error {
	if token == "" {
		return fmt.Errorf("token is required")
	}
	session := domain.Session{Token: token, User: &user}
	if err := s.store.Save(ctx, session); err != nil {
		return err
	}
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
	s.logger.Info("logged in", "username", user.Username)
	return nil
}

// Logout clears memory even when persistent storage fails, so a rejected
// token is never sent again by this process.
func (s *AuthStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.session = domain.Session{}
	s.mu.Unlock()
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Error("clear persisted session", "error", err)
		return err
	}
	s.logger.Info("logged out")
	return nil
}

func (s *AuthStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Authenticated()
}

func (s *AuthStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

func (s *AuthStore) Session() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.session
	if out.User != nil {
		u := *out.User
		out.User = &u
	}
	return out
}
