package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"writerly/internal/modules/auth/domain"
	"writerly/internal/modules/auth/service"
)

type memorySessionStore struct {
	mu       sync.Mutex
	session  domain.Session
	clearErr error
	saves    int
}

func (m *memorySessionStore) Load(context.Context) (domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, nil
}

func (m *memorySessionStore) Save(_ context.Context, session domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = session
	m.saves++
	return nil
}

func (m *memorySessionStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = domain.Session{}
	return m.clearErr
}

func TestLoginThenLogout(t *testing.T) {
	t.Parallel()
	persisted := &memorySessionStore{}
	store := service.NewAuthStore(persisted, nil)

	if store.IsAuthenticated() {
		t.Fatalf("fresh store must be logged out")
	}
	if err := store.Login(context.Background(), "tok", domain.User{ID: "u1", Username: "ana"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !store.IsAuthenticated() || store.Token() != "tok" {
		t.Fatalf("expected authenticated immediately after login")
	}
	if persisted.session.Token != "tok" {
		t.Fatalf("login must write through to storage")
	}

	if err := store.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if store.IsAuthenticated() || store.Token() != "" {
		t.Fatalf("expected logged out after logout")
	}
	if persisted.session.Authenticated() {
		t.Fatalf("logout must clear storage")
	}
}

func TestRestoreReadsPersistedSession(t *testing.T) {
	t.Parallel()
	persisted := &memorySessionStore{session: domain.Session{Token: "saved", User: &domain.User{Username: "ana"}}}
	store := service.NewAuthStore(persisted, nil)
	if err := store.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !store.IsAuthenticated() {
		t.Fatalf("expected restored session")
	}
	session := store.Session()
	session.User.Username = "mutated"
	if store.Session().User.Username != "ana" {
		t.Fatalf("session snapshot must not alias internal state")
	}
}

func TestLogoutClearsMemoryWhenStorageFails(t *testing.T) {
	t.Parallel()
	persisted := &memorySessionStore{clearErr: errors.New("disk full")}
	store := service.NewAuthStore(persisted, nil)
	_ = store.Login(context.Background(), "tok", domain.User{})
	if err := store.Logout(context.Background()); err == nil {
		t.Fatalf("expected storage error to surface")
	}
	if store.IsAuthenticated() {
		t.Fatalf("memory must be cleared regardless")
	}
}

func TestLoginRequiresToken(t *testing.T) {
	t.Parallel()
	persisted := &memorySessionStore{}
	store := service.NewAuthStore(persisted, nil)
	if err := store.Login(context.Background(), "", domain.User{}); err == nil {
		t.Fatalf("expected empty token to be rejected")
	}
	if persisted.saves != 0 || store.IsAuthenticated() {
		t.Fatalf("rejected login must not change state")
	}
}
