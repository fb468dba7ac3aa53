package storage_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"writerly/internal/platform/config"
	apperrors "writerly/internal/platform/errors"
	"writerly/internal/platform/storage"
)

func exerciseStore(t *testing.T, s storage.Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "token"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found for missing key, got %v", err)
	}
	if err := s.Set(ctx, "token", "abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "token", "def"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := s.Get(ctx, "token")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "def" {
		t.Fatalf("expected overwritten value, got %q", got)
	}
	if err := s.Delete(ctx, "token"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "token"); err != nil {
		t.Fatalf("delete of missing key should succeed: %v", err)
	}
	if _, err := s.Get(ctx, "token"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestSQLiteStore(t *testing.T) {
	t.Parallel()
	s, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "state", "writerly.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "writerly.db")
	first, err := storage.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Set(context.Background(), "user", `{"id":"u1"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	_ = first.Close()

	second, err := storage.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	got, err := second.Get(context.Background(), "user")
	if err != nil || got != `{"id":"u1"}` {
		t.Fatalf("expected persisted user, got %q err=%v", got, err)
	}
}

func TestRedisStore(t *testing.T) {
	t.Parallel()
	mr := miniredis.RunT(t)
	s, err := storage.NewRedisStore(mr.Addr(), "", 0, "writerly:")
	if err != nil {
		t.Fatalf("open redis store: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)

	if err := s.Set(context.Background(), "token", "xyz"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, err := mr.Get("writerly:token"); err != nil || got != "xyz" {
		t.Fatalf("expected prefixed key in redis, got %q err=%v", got, err)
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	t.Parallel()
	mr := miniredis.RunT(t)
	cfg := config.Config{
		DBPath:  filepath.Join(t.TempDir(), "writerly.db"),
		Storage: config.Storage{Backend: config.BackendRedis, RedisAddr: mr.Addr(), RedisPrefix: "w:"},
	}
	s, err := storage.Open(cfg)
	if err != nil {
		t.Fatalf("open redis backend: %v", err)
	}
	if _, ok := s.(*storage.RedisStore); !ok {
		t.Fatalf("expected redis store, got %T", s)
	}
	_ = s.Close()

	cfg.Storage.Backend = config.BackendSQLite
	s, err = storage.Open(cfg)
	if err != nil {
		t.Fatalf("open sqlite backend: %v", err)
	}
	if _, ok := s.(*storage.SQLiteStore); !ok {
		t.Fatalf("expected sqlite store, got %T", s)
	}
	_ = s.Close()

	cfg.Storage.Backend = "etcd"
	if _, err := storage.Open(cfg); err == nil {
		t.Fatalf("expected unknown backend error")
	}
}
