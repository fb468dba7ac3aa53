package out_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	readingout "writerly/internal/modules/reading/adapter/out"
	"writerly/internal/modules/reading/domain"
	"writerly/internal/platform/httpapi"
)

func TestHTTPGatewaySessionCalls(t *testing.T) {
	t.Parallel()
	bodies := map[string]map[string]any{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		if r.Body != nil {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
				bodies[key] = body
			}
		}
		switch key {
		case "POST /api/reading/start":
			_, _ = io.WriteString(w, `{"id":"rs-9","work_id":"w1"}`)
		case "PUT /api/reading/rs-9/update":
			_, _ = io.WriteString(w, `{}`)
		case "POST /api/reading/rs-9/complete":
			_, _ = io.WriteString(w, `{"can_comment":true,"can_rate":true,"message":"Thanks for reading"}`)
		case "GET /api/reading/validation/w1":
			_, _ = io.WriteString(w, `{"can_comment":false,"can_rate":false,"message":"Keep reading"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	gw := readingout.NewHTTPGateway(httpapi.NewClient(srv.URL+"/api", nil, time.Second))
	ctx := context.Background()

	sessionID, err := gw.Start(ctx, "w1", "")
	if err != nil || sessionID != "rs-9" {
		t.Fatalf("start: %q %v", sessionID, err)
	}
	start := bodies["POST /api/reading/start"]
	if start["work_id"] != "w1" {
		t.Fatalf("unexpected start body: %v", start)
	}
	if v, ok := start["section_id"]; !ok || v != nil {
		t.Fatalf("section_id must be sent as null, got %v", start)
	}

	event := time.Date(2026, 3, 1, 12, 0, 10, 0, time.UTC)
	if err := gw.Update(ctx, sessionID, domain.Progress{TimeOnPage: 10, ScrollDepth: 33.5, ScrollEvent: event}); err != nil {
		t.Fatalf("update: %v", err)
	}
	update := bodies["PUT /api/reading/rs-9/update"]
	if update["time_on_page"] != float64(10) || update["scroll_depth"] != 33.5 || update["scroll_event"] != "2026-03-01T12:00:10Z" {
		t.Fatalf("unexpected update body: %v", update)
	}

	unlocks, err := gw.Complete(ctx, sessionID)
	if err != nil || !unlocks.CanComment || !unlocks.CanRate || unlocks.Message != "Thanks for reading" {
		t.Fatalf("complete: %+v %v", unlocks, err)
	}
	validation, err := gw.Validation(ctx, "w1")
	if err != nil || validation.CanComment || validation.Message != "Keep reading" {
		t.Fatalf("validation: %+v %v", validation, err)
	}
}

func TestSQLiteHistoryStoreOrdersNewestFirst(t *testing.T) {
	t.Parallel()
	store, err := readingout.NewSQLiteHistoryStore(filepath.Join(t.TempDir(), "state", "writerly.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, sid := range []string{"a", "b", "c"} {
		entry := domain.HistoryEntry{
			SessionID:   sid,
			WorkID:      "w" + sid,
			StartedAt:   base,
			CompletedAt: base.Add(time.Duration(i+1) * time.Minute),
			TimeOnPage:  60 * (i + 1),
			ScrollDepth: float64(30 * (i + 1)),
		}
		if err := store.Record(ctx, entry); err != nil {
			t.Fatalf("record %s: %v", sid, err)
		}
	}

	entries, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 || entries[0].SessionID != "c" || entries[1].SessionID != "b" {
		t.Fatalf("unexpected order: %+v", entries)
	}
	if !entries[0].CompletedAt.Equal(base.Add(3*time.Minute)) || entries[0].ScrollDepth != 90 {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
}
