package work

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	engagementdto "writerly/internal/modules/engagement/dto"
	readingdto "writerly/internal/modules/reading/dto"
	readingin "writerly/internal/modules/reading/port/in"
	worksdto "writerly/internal/modules/works/dto"
	"writerly/internal/ui/components"
)

type fakeTracker struct{ stopped bool }

func (f *fakeTracker) Start(context.Context) {}
func (f *fakeTracker) ReportScroll(float64)  {}
func (f *fakeTracker) Stop()                 { f.stopped = true }
func (f *fakeTracker) Metrics() readingdto.MetricsOutput {
	return readingdto.MetricsOutput{State: "tracking"}
}
func (f *fakeTracker) Complete(context.Context) (readingdto.UnlockOutput, error) {
	return readingdto.UnlockOutput{CanComment: true, CanRate: true, Message: "unlocked"}, nil
}

type fakePort struct {
	tracker       *fakeTracker
	comments      int
	rates         int
	validationErr error
}

func (f *fakePort) Work(_ context.Context, id string) (worksdto.WorkOutput, error) {
	return worksdto.WorkOutput{ID: id, Title: "Tide", Content: "It was a calm sea."}, nil
}
func (f *fakePort) Validation(context.Context, string) (readingdto.UnlockOutput, error) {
	if f.validationErr != nil {
		return readingdto.UnlockOutput{CanComment: true}, f.validationErr
	}
	return readingdto.UnlockOutput{}, nil
}
func (f *fakePort) Track(string, string) (readingin.Tracker, error) { return f.tracker, nil }
func (f *fakePort) Comments(context.Context, string) ([]engagementdto.CommentOutput, error) {
	return nil, nil
}
func (f *fakePort) AddComment(_ context.Context, _, content string) ([]engagementdto.CommentOutput, error) {
	f.comments++
	return []engagementdto.CommentOutput{{ID: "c1", Username: "ada", Content: content}}, nil
}
func (f *fakePort) Rate(context.Context, string, int, string) error {
	f.rates++
	return nil
}
func (f *fakePort) IsBookmarked(context.Context, string) (bool, error) { return false, nil }
func (f *fakePort) AddBookmark(context.Context, string) error          { return nil }
func (f *fakePort) RemoveBookmark(_ context.Context, _ string, current []engagementdto.BookmarkOutput) ([]engagementdto.BookmarkOutput, error) {
	return current, nil
}

func key(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func loaded(t *testing.T, port *fakePort) Model {
	t.Helper()
	m := New(port, "w1", true)
	m, _ = m.Update(m.loadCmd()())
	if m.work.ID != "w1" {
		t.Fatalf("work not loaded")
	}
	return m
}

func TestLockedActionsSendNoRequest(t *testing.T) {
	t.Parallel()
	port := &fakePort{tracker: &fakeTracker{}}
	m := loaded(t, port)

	m, cmd := m.Update(key("n"))
	if cmd != nil || m.notice != lockedCommentHint {
		t.Fatalf("expected comment lock hint, got %q", m.notice)
	}
	if m.CapturesKeys() {
		t.Fatalf("composer should stay closed while locked")
	}

	m, cmd = m.Update(key("4"))
	if cmd != nil || m.notice != lockedRateHint {
		t.Fatalf("expected rate lock hint, got %q", m.notice)
	}
	if port.comments != 0 || port.rates != 0 {
		t.Fatalf("locked actions reached the port: comments=%d rates=%d", port.comments, port.rates)
	}
}

func TestCompleteUnlocksRating(t *testing.T) {
	t.Parallel()
	port := &fakePort{tracker: &fakeTracker{}}
	m := loaded(t, port)

	m, cmd := m.Update(key("c"))
	if cmd == nil {
		t.Fatalf("expected complete command")
	}
	m, _ = m.Update(cmd())
	if !m.unlocks.CanRate {
		t.Fatalf("expected rating to unlock")
	}
	m, cmd = m.Update(key("5"))
	if cmd == nil {
		t.Fatalf("expected rate request")
	}
	if msg, ok := cmd().(RatedMsg); !ok || msg.Score != 5 {
		t.Fatalf("unexpected message %#v", msg)
	}
	if port.rates != 1 {
		t.Fatalf("expected one rating, got %d", port.rates)
	}
}

func TestStaleRepliesAreDropped(t *testing.T) {
	t.Parallel()
	port := &fakePort{tracker: &fakeTracker{}}
	m := loaded(t, port)
	m, _ = m.Update(CommentsMsg{instance: m.instance + 1000, Comments: []engagementdto.CommentOutput{{ID: "x"}}})
	if len(m.comments) != 0 {
		t.Fatalf("reply for another view was applied")
	}
}

func TestCloseStopsTracker(t *testing.T) {
	t.Parallel()
	tracker := &fakeTracker{}
	m := New(&fakePort{tracker: tracker}, "w1", true)
	m.Close()
	if !tracker.stopped {
		t.Fatalf("tracker not stopped")
	}
}

func TestSignedOutSkipsTracking(t *testing.T) {
	t.Parallel()
	m := New(&fakePort{tracker: &fakeTracker{}}, "w1", false)
	if m.tracker != nil {
		t.Fatalf("expected no tracker when signed out")
	}
}

func TestFailedValidationStillRendersWork(t *testing.T) {
	t.Parallel()
	port := &fakePort{tracker: &fakeTracker{}, validationErr: errors.New("api 500: validation down")}
	m := New(port, "w1", true)
	msg, ok := m.loadCmd()().(LoadedMsg)
	if !ok {
		t.Fatalf("unexpected message %T", msg)
	}
	if msg.Err != nil {
		t.Fatalf("side fetch failure must not fail the load: %v", msg.Err)
	}
	m, cmd := m.Update(msg)
	if m.work.ID != "w1" || m.err != nil {
		t.Fatalf("expected work to render, got id=%q err=%v", m.work.ID, m.err)
	}
	if m.unlocks.CanComment {
		t.Fatalf("unlock flags must stay closed when validation fails")
	}
	if cmd == nil {
		t.Fatalf("expected the partial failure to be reported")
	}
	if _, ok := cmd().(components.DegradedMsg); !ok {
		t.Fatalf("expected DegradedMsg, not a page failure")
	}
}
