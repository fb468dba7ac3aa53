package domain

import "testing"

func TestReadRate(t *testing.T) {
	t.Parallel()
	if got := (WorkStat{}).ReadRate(); got != 0 {
		t.Fatalf("zero views should give 0, got %v", got)
	}
	if got := (WorkStat{Views: 200, Reads: 50}).ReadRate(); got != 25 {
		t.Fatalf("expected 25%%, got %v", got)
	}
}

func TestSortByViews(t *testing.T) {
	t.Parallel()
	s := Stats{WorkStats: []WorkStat{{WorkID: "a", Views: 3}, {WorkID: "b", Views: 10}, {WorkID: "c", Views: 3}}}
	s.SortByViews()
	if s.WorkStats[0].WorkID != "b" || s.WorkStats[1].WorkID != "a" || s.WorkStats[2].WorkID != "c" {
		t.Fatalf("unexpected order: %+v", s.WorkStats)
	}
}

func TestNormalizeDays(t *testing.T) {
	t.Parallel()
	for in, want := range map[int]int{0: 7, -3: 7, 30: 30, 365: 90} {
		if got := NormalizeDays(in); got != want {
			t.Fatalf("NormalizeDays(%d) = %d, want %d", in, got, want)
		}
	}
}
