package out_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	authout "writerly/internal/modules/auth/adapter/out"
	"writerly/internal/modules/auth/domain"
	apperrors "writerly/internal/platform/errors"
	"writerly/internal/platform/httpapi"
	"writerly/internal/platform/storage"
)

func TestHTTPGatewayLoginUsesFormEncoding(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			_ = r.ParseForm()
			if r.PostForm.Get("username") != "ana@example.com" || r.PostForm.Get("password") != "pw" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = io.WriteString(w, `{"detail":"Incorrect email or password"}`)
				return
			}
			_, _ = io.WriteString(w, `{"access_token":"tok","token_type":"bearer"}`)
		case "/api/profile/me":
			if r.Header.Get("Authorization") != "Bearer tok" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "u-1", "username": "ana", "bio": "x"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	gw := authout.NewHTTPGateway(httpapi.NewClient(srv.URL+"/api", nil, time.Second))
	token, user, err := gw.Login(context.Background(), "ana@example.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token != "tok" || user != nil {
		t.Fatalf("unexpected login result token=%q user=%v", token, user)
	}
	me, err := gw.Me(context.Background(), token)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.ID != "u-1" || me.Username != "ana" {
		t.Fatalf("unexpected me: %+v", me)
	}

	if _, _, err := gw.Login(context.Background(), "ana@example.com", "bad"); httpapi.Message(err, "") != "Incorrect email or password" {
		t.Fatalf("expected credential error detail, got %v", err)
	}
}

func TestKVSessionStoreRoundTrip(t *testing.T) {
	t.Parallel()
	kv, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "writerly.db"))
	if err != nil {
		t.Fatalf("open kv: %v", err)
	}
	defer kv.Close()
	store := authout.NewKVSessionStore(kv)
	ctx := context.Background()

	empty, err := store.Load(ctx)
	if err != nil || empty.Authenticated() {
		t.Fatalf("expected empty session, got %+v err=%v", empty, err)
	}
	if err := store.Save(ctx, domain.Session{Token: "tok", User: &domain.User{ID: "u-1", Username: "ana", Email: "a@b.c"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := kv.Get(ctx, "user")
	if err != nil || raw != `{"id":"u-1","username":"ana","email":"a@b.c"}` {
		t.Fatalf("user must be stored as json, got %q err=%v", raw, err)
	}
	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Token != "tok" || loaded.User == nil || loaded.User.Username != "ana" {
		t.Fatalf("unexpected loaded session: %+v", loaded)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	cleared, _ := store.Load(ctx)
	if cleared.Authenticated() {
		t.Fatalf("expected cleared session")
	}
}

func TestJWTInspector(t *testing.T) {
	t.Parallel()
	exp := time.Date(2026, 12, 1, 12, 0, 0, 0, time.UTC)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "ana@example.com",
		"exp": exp.Unix(),
	}).SignedString([]byte("server-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	inspector := authout.NewJWTInspector()
	claims := inspector.Inspect(signed)
	if claims.Opaque || claims.Subject != "ana@example.com" || !claims.ExpiresAt.Equal(exp) {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !inspector.Inspect("not-a-jwt").Opaque {
		t.Fatalf("expected opaque token")
	}
}

type failingKV struct {
	storage.Store
	failKey string
}

func (f failingKV) Set(ctx context.Context, key, value string) error {
	if key == f.failKey {
		return errors.New("disk full")
	}
	return f.Store.Set(ctx, key, value)
}

func TestKVSessionStoreFailedSaveLeavesNoSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	for _, key := range []string{"user", "token"} {
		kv, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "writerly.db"))
		if err != nil {
			t.Fatalf("open kv: %v", err)
		}
		store := authout.NewKVSessionStore(failingKV{Store: kv, failKey: key})
		err = store.Save(ctx, domain.Session{Token: "tok", User: &domain.User{ID: "u-1", Username: "ana"}})
		if err == nil {
			t.Fatalf("%s write failure: expected error", key)
		}
		loaded, err := authout.NewKVSessionStore(kv).Load(ctx)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if loaded.Authenticated() || loaded.Token != "" {
			t.Fatalf("%s write failure left a session behind: %+v", key, loaded)
		}
		if _, err := kv.Get(ctx, "user"); !errors.Is(err, apperrors.ErrNotFound) {
			t.Fatalf("%s write failure left the user key: %v", key, err)
		}
		_ = kv.Close()
	}
}
