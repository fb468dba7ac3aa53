package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	profileout "writerly/internal/modules/profile/adapter/out"
	"writerly/internal/modules/profile/dto"
	profilein "writerly/internal/modules/profile/port/in"
	"writerly/internal/modules/profile/usecase"
	apperrors "writerly/internal/platform/errors"
	"writerly/internal/platform/httpapi"
)

type api struct {
	mu       sync.Mutex
	requests []string
	update   map[string]any
}

func (a *api) seen() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.requests...)
}

func newUsecase(t *testing.T) (profilein.Usecase, *api) {
	t.Helper()
	a := &api{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.requests = append(a.requests, r.Method+" "+r.URL.Path)
		a.mu.Unlock()
		switch r.Method + " " + r.URL.Path {
		case "GET /api/profile/me":
			_, _ = io.WriteString(w, `{"id":"u1","username":"ana","bio":null,"followers_count":3,"is_following":null}`)
		case "PUT /api/profile/me":
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			a.mu.Lock()
			a.update = body
			a.mu.Unlock()
			_, _ = io.WriteString(w, `{"id":"u1","username":"ana","bio":"new bio"}`)
		case "GET /api/profile/bo":
			_, _ = io.WriteString(w, `{"id":"u2","username":"bo","is_following":true,"created_at":"2025-12-01T00:00:00"}`)
		case "GET /api/profile/ana/works", "GET /api/profile/bo/works":
			_, _ = io.WriteString(w, `[{"id":"w1","title":"Salt","genre":null,"word_count":1200,"rating_average":4.2}]`)
		case "POST /api/profile/bo/follow", "DELETE /api/profile/bo/follow":
			_, _ = io.WriteString(w, `{"message":"ok"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return usecase.NewInteractor(profileout.NewHTTPGateway(httpapi.NewClient(srv.URL+"/api", nil, time.Second))), a
}

func TestGetResolvesMeAndOthers(t *testing.T) {
	t.Parallel()
	uc, _ := newUsecase(t)
	ctx := context.Background()

	me, err := uc.Get(ctx, "me")
	if err != nil {
		t.Fatalf("get me: %v", err)
	}
	if !me.Own || me.Username != "ana" || me.IsFollowing != nil || me.FollowersCount != 3 {
		t.Fatalf("unexpected own profile: %+v", me)
	}
	bo, err := uc.Get(ctx, "bo")
	if err != nil {
		t.Fatalf("get bo: %v", err)
	}
	if bo.Own || bo.IsFollowing == nil || !*bo.IsFollowing {
		t.Fatalf("unexpected other profile: %+v", bo)
	}
	if _, err := uc.Get(ctx, "ghost"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestWorksForMeLooksUpUsername(t *testing.T) {
	t.Parallel()
	uc, a := newUsecase(t)
	works, err := uc.Works(context.Background(), "")
	if err != nil {
		t.Fatalf("works: %v", err)
	}
	if len(works) != 1 || works[0].Title != "Salt" || works[0].WordCount != 1200 {
		t.Fatalf("unexpected works: %+v", works)
	}
	seen := a.seen()
	if len(seen) != 2 || seen[0] != "GET /api/profile/me" || seen[1] != "GET /api/profile/ana/works" {
		t.Fatalf("unexpected requests: %v", seen)
	}
}

func TestFollowRejectsSelf(t *testing.T) {
	t.Parallel()
	uc, a := newUsecase(t)
	ctx := context.Background()
	if err := uc.Follow(ctx, "me"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if err := uc.Follow(ctx, "bo"); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if err := uc.Unfollow(ctx, "bo"); err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	seen := a.seen()
	if len(seen) != 2 || seen[0] != "POST /api/profile/bo/follow" || seen[1] != "DELETE /api/profile/bo/follow" {
		t.Fatalf("unexpected requests: %v", seen)
	}
}

func TestUpdateMeValidatesAndSendsAllFields(t *testing.T) {
	t.Parallel()
	uc, a := newUsecase(t)
	ctx := context.Background()
	if _, err := uc.UpdateMe(ctx, dto.UpdateInput{Website: "not a url"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid website, got %v", err)
	}
	out, err := uc.UpdateMe(ctx, dto.UpdateInput{Bio: " new bio ", Location: "Porto"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if out.Bio != "new bio" || !out.Own {
		t.Fatalf("unexpected output: %+v", out)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.update["bio"] != "new bio" || a.update["location"] != "Porto" || a.update["website"] != "" {
		t.Fatalf("unexpected body: %v", a.update)
	}
}
