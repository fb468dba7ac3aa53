package id_test

import (
	"errors"
	"testing"

	apperrors "writerly/internal/platform/errors"
	"writerly/internal/platform/id"
)

func TestParseNormalizesUUID(t *testing.T) {
	t.Parallel()
	got, err := id.Parse("work", "  6F9619FF-8B86-D011-B42D-00C04FC964FF ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != "6f9619ff-8b86-d011-b42d-00c04fc964ff" {
		t.Fatalf("unexpected normalized id: %s", got)
	}
}

func TestParseRejectsEmptyAndMalformed(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{"", "   ", "42", "not-a-uuid"} {
		if _, err := id.Parse("work", raw); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected invalid input for %q, got %v", raw, err)
		}
	}
}

func TestUUIDGeneratorProducesParseableIDs(t *testing.T) {
	t.Parallel()
	gen := id.UUID{}
	a, b := gen.New(), gen.New()
	if a == b {
		t.Fatalf("expected distinct ids")
	}
	if _, err := id.Parse("history", a); err != nil {
		t.Fatalf("generated id should parse: %v", err)
	}
}
