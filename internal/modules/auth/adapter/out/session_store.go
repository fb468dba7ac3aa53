package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"writerly/internal/modules/auth/domain"
	authout "writerly/internal/modules/auth/port/out"
	apperrors "writerly/internal/platform/errors"
	"writerly/internal/platform/storage"
)

const (
	tokenKey = "token"
	userKey  = "user"
)

// KVSessionStore persists the login as two keys: the raw token and the
// user as JSON.
type KVSessionStore struct {
	kv storage.Store
}

func NewKVSessionStore(kv storage.Store) authout.SessionStore {
	return &KVSessionStore{kv: kv}
}

func (s *KVSessionStore) Load(ctx context.Context) (domain.Session, error) {
	token, err := s.kv.Get(ctx, tokenKey)
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.Session{}, nil
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("load token: %w", err)
	}
	session := domain.Session{Token: token}
	raw, err := s.kv.Get(ctx, userKey)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
	case err != nil:
		return domain.Session{}, fmt.Errorf("load user: %w", err)
	default:
		user := domain.User{}
		if err := json.Unmarshal([]byte(raw), &user); err == nil && raw != "null" {
			session.User = &user
		}
	}
	return session, nil
}

// Save writes the user before the token. Load keys off the token, so a
// failed token write never leaves a token without its user.
func (s *KVSessionStore) Save(ctx context.Context, session domain.Session) error {
	raw, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := s.kv.Set(ctx, userKey, string(raw)); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	if err := s.kv.Set(ctx, tokenKey, session.Token); err != nil {
		_ = s.kv.Delete(ctx, userKey)
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *KVSessionStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, tokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	if err := s.kv.Delete(ctx, userKey); err != nil {
		return fmt.Errorf("clear user: %w", err)
	}
	return nil
}
