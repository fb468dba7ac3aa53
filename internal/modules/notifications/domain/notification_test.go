package domain

import "testing"

func TestUnread(t *testing.T) {
	t.Parallel()
	list := []Notification{{ID: "1"}, {ID: "2", Read: true}, {ID: "3"}}
	if got := Unread(list); got != 2 {
		t.Fatalf("expected 2 unread, got %d", got)
	}
}

func TestNormalizeLimit(t *testing.T) {
	t.Parallel()
	for in, want := range map[int]int{-1: 50, 0: 50, 10: 10, 100: 100, 500: 100} {
		if got := NormalizeLimit(in); got != want {
			t.Fatalf("NormalizeLimit(%d) = %d, want %d", in, got, want)
		}
	}
}
