package domain

import "testing"

func TestParseInboxFilter(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{"", "pending", "Reviewing", " accepted ", "declined"} {
		if _, err := ParseInboxFilter(raw); err != nil {
			t.Fatalf("%q should be accepted: %v", raw, err)
		}
	}
	if _, err := ParseInboxFilter("archived"); err == nil {
		t.Fatalf("archived should be rejected")
	}
}

func TestParseResponseStatus(t *testing.T) {
	t.Parallel()
	if s, err := ParseResponseStatus("ACCEPTED"); err != nil || s != StatusAccepted {
		t.Fatalf("expected accepted, got %q %v", s, err)
	}
	for _, raw := range []string{"", "pending", "maybe"} {
		if _, err := ParseResponseStatus(raw); err == nil {
			t.Fatalf("%q should be rejected", raw)
		}
	}
}

func TestFiltersValidate(t *testing.T) {
	t.Parallel()
	if err := (Filters{MinWordCount: 1000, MaxWordCount: 5000, MinRating: 3.5}).Validate(); err != nil {
		t.Fatalf("valid filters rejected: %v", err)
	}
	bad := []Filters{
		{MinWordCount: 6000, MaxWordCount: 5000},
		{MinViews: -1},
		{MinRating: 7},
	}
	for _, f := range bad {
		if err := f.Validate(); err == nil {
			t.Fatalf("expected %+v to be rejected", f)
		}
	}
}
