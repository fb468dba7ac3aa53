package domain_test

import (
	"testing"

	"writerly/internal/modules/engagement/domain"
)

func TestBookmarksWithout(t *testing.T) {
	t.Parallel()
	list := domain.Bookmarks{{ID: "b1", WorkID: "w1"}, {ID: "b2", WorkID: "w2"}, {ID: "b3", WorkID: "w3"}}
	got := list.Without("w2")
	if len(got) != 2 || got[0].WorkID != "w1" || got[1].WorkID != "w3" {
		t.Fatalf("unexpected list: %+v", got)
	}
	if len(list) != 3 {
		t.Fatalf("original list must be untouched")
	}
	if len(list.Without("missing")) != 3 {
		t.Fatalf("unknown work id must keep every entry")
	}
}

func TestRatingValidate(t *testing.T) {
	t.Parallel()
	for _, score := range []int{0, 6, -1} {
		if err := (domain.Rating{Score: score}).Validate(); err == nil {
			t.Fatalf("expected score %d to be rejected", score)
		}
	}
	for score := 1; score <= 5; score++ {
		if err := (domain.Rating{Score: score}).Validate(); err != nil {
			t.Fatalf("expected score %d to be valid: %v", score, err)
		}
	}
}

func TestValidateComment(t *testing.T) {
	t.Parallel()
	if domain.ValidateComment(" \n ") == nil {
		t.Fatalf("blank comment must be rejected")
	}
	if domain.ValidateComment("Loved it") != nil {
		t.Fatalf("comment must be accepted")
	}
}
