package apitime_test

import (
	"encoding/json"
	"testing"
	"time"

	"writerly/internal/platform/apitime"
)

func TestUnmarshalAcceptsAwareAndNaiveTimestamps(t *testing.T) {
	t.Parallel()
	want := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	for _, raw := range []string{
		`"2026-03-04T05:06:07Z"`,
		`"2026-03-04T07:06:07+02:00"`,
		`"2026-03-04T05:06:07"`,
		`"2026-03-04T05:06:07.000000"`,
	} {
		var got apitime.Time
		if err := json.Unmarshal([]byte(raw), &got); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if !got.Equal(want) {
			t.Fatalf("unmarshal %s = %s, want %s", raw, got.Time, want)
		}
	}
}

func TestUnmarshalNullAndGarbage(t *testing.T) {
	t.Parallel()
	var got apitime.Time
	if err := json.Unmarshal([]byte(`null`), &got); err != nil || !got.IsZero() {
		t.Fatalf("null must decode to zero, got %v err=%v", got, err)
	}
	if err := json.Unmarshal([]byte(`"yesterday"`), &got); err == nil {
		t.Fatalf("expected error for garbage timestamp")
	}
}

func TestAgo(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	cases := map[time.Duration]string{
		10 * time.Second: "just now",
		5 * time.Minute:  "5m ago",
		3 * time.Hour:    "3h ago",
		48 * time.Hour:   "2d ago",
	}
	for d, want := range cases {
		if got := apitime.Ago(now, now.Add(-d)); got != want {
			t.Fatalf("Ago(-%s) = %q, want %q", d, got, want)
		}
	}
	if got := apitime.Ago(now, now.AddDate(0, -3, 0)); got != "2025-12-04" {
		t.Fatalf("expected absolute date, got %q", got)
	}
}
