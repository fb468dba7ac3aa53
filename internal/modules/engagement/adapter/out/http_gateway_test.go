package out_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	engagementout "writerly/internal/modules/engagement/adapter/out"
	"writerly/internal/modules/engagement/domain"
	"writerly/internal/platform/httpapi"
)

func TestHTTPGatewayEndpoints(t *testing.T) {
	t.Parallel()
	var mu sync.Mutex
	calls := []string{}
	var rating map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		mu.Unlock()
		switch r.URL.Path {
		case "/api/engagement/bookmarks":
			_, _ = io.WriteString(w, `[{"id":"b1","work_id":"w1","work_title":"One","created_at":"2026-02-01T00:00:00Z"}]`)
		case "/api/engagement/bookmarks/check/w1":
			_, _ = io.WriteString(w, `{"is_bookmarked":true}`)
		case "/api/comments/works/w1":
			if r.Method == http.MethodGet {
				_, _ = io.WriteString(w, `[{"id":"c1","username":"bo","content":"nice","created_at":"2026-02-01T00:00:00"}]`)
				return
			}
			_, _ = io.WriteString(w, `{"id":"c2"}`)
		case "/api/ratings/works/w1":
			_ = json.NewDecoder(r.Body).Decode(&rating)
			_, _ = io.WriteString(w, `{"id":"r1"}`)
		default:
			_, _ = io.WriteString(w, `{}`)
		}
	}))
	defer srv.Close()
	gw := engagementout.NewHTTPGateway(httpapi.NewClient(srv.URL+"/api", nil, time.Second))
	ctx := context.Background()

	list, err := gw.Bookmarks(ctx)
	if err != nil || len(list) != 1 || list[0].WorkTitle != "One" {
		t.Fatalf("unexpected bookmarks %+v err=%v", list, err)
	}
	if ok, err := gw.IsBookmarked(ctx, "w1"); err != nil || !ok {
		t.Fatalf("expected bookmarked, got %v err=%v", ok, err)
	}
	if err := gw.AddBookmark(ctx, "w1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := gw.RemoveBookmark(ctx, "w1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	comments, err := gw.Comments(ctx, "w1")
	if err != nil || len(comments) != 1 || comments[0].Username != "bo" {
		t.Fatalf("unexpected comments %+v err=%v", comments, err)
	}
	if err := gw.AddComment(ctx, "w1", "hello"); err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if err := gw.Rate(ctx, "w1", domain.Rating{Score: 5}); err != nil {
		t.Fatalf("rate: %v", err)
	}
	if rating["score"] != float64(5) {
		t.Fatalf("unexpected rating body: %v", rating)
	}
	if _, ok := rating["review"]; ok {
		t.Fatalf("empty review must be omitted: %v", rating)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []string{
		"GET /api/engagement/bookmarks",
		"GET /api/engagement/bookmarks/check/w1",
		"POST /api/engagement/bookmarks/w1",
		"DELETE /api/engagement/bookmarks/w1",
		"GET /api/comments/works/w1",
		"POST /api/comments/works/w1",
		"POST /api/ratings/works/w1",
	}
	if len(calls) != len(want) {
		t.Fatalf("unexpected calls: %v", calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("call %d = %s, want %s", i, calls[i], want[i])
		}
	}
}
