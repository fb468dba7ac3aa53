package domain

import (
	"strings"
	"testing"
)

func TestUpdateValidate(t *testing.T) {
	t.Parallel()
	valid := []Update{
		{},
		{Bio: "Writes short fiction", Location: "Lisbon", Website: "https://example.org"},
	}
	for _, u := range valid {
		if err := u.Validate(); err != nil {
			t.Fatalf("expected %+v to be valid: %v", u, err)
		}
	}
	invalid := []Update{
		{Bio: strings.Repeat("a", MaxBioLength+1)},
		{Location: strings.Repeat("b", MaxLocationLength+1)},
		{Website: "example.org"},
		{Website: "ftp://example.org"},
	}
	for _, u := range invalid {
		if err := u.Validate(); err == nil {
			t.Fatalf("expected %+v to be rejected", u)
		}
	}
}

func TestIsSelf(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"", "me", "  me "} {
		if !IsSelf(name) {
			t.Fatalf("%q should refer to self", name)
		}
	}
	if IsSelf("mei") {
		t.Fatalf("mei is another user")
	}
}
