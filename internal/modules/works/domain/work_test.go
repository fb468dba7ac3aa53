package domain_test

import (
	"testing"

	"writerly/internal/modules/works/domain"
)

func TestDraftValidate(t *testing.T) {
	t.Parallel()
	if err := (domain.Draft{Title: "T", Content: "body"}).Validate(); err != nil {
		t.Fatalf("expected valid draft: %v", err)
	}
	if err := (domain.Draft{Content: "body"}).Validate(); err == nil {
		t.Fatalf("expected missing title error")
	}
	if err := (domain.Draft{Title: "T", Content: "  "}).Validate(); err == nil {
		t.Fatalf("expected missing content error")
	}
	if err := (domain.Draft{Title: "T", Content: "x", ContentRating: "XXX"}).Validate(); err == nil {
		t.Fatalf("expected bad rating error")
	}
}

func TestPatchValidate(t *testing.T) {
	t.Parallel()
	if err := (domain.Patch{}).Validate(); err == nil {
		t.Fatalf("empty patch must be rejected")
	}
	published := domain.StatusPublished
	if err := (domain.Patch{Status: &published}).Validate(); err != nil {
		t.Fatalf("expected valid status patch: %v", err)
	}
	bogus := "archived-ish"
	if err := (domain.Patch{Status: &bogus}).Validate(); err == nil {
		t.Fatalf("expected invalid status error")
	}
	empty := " "
	if err := (domain.Patch{Title: &empty}).Validate(); err == nil {
		t.Fatalf("expected empty title error")
	}
}

func TestDraftFromDocumentPrefersOverrides(t *testing.T) {
	t.Parallel()
	doc := domain.Document{Title: "From File", Genre: "horror", Summary: "s", Body: "\n\nOnce upon a time.\n\n"}
	draft := domain.DraftFromDocument(doc, domain.Draft{Title: "Flag Title"})
	if draft.Title != "Flag Title" || draft.Genre != "horror" || draft.Summary != "s" {
		t.Fatalf("unexpected draft: %+v", draft)
	}
	if draft.Content != "Once upon a time.\n" {
		t.Fatalf("unexpected content: %q", draft.Content)
	}
}

func TestCountWords(t *testing.T) {
	t.Parallel()
	if got := domain.CountWords("  one two\tthree\nfour  "); got != 4 {
		t.Fatalf("expected 4 words, got %d", got)
	}
}
