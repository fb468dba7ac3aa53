package profile

import (
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "writerly/internal/platform/errors"
	"writerly/internal/ui/components"
	"writerly/internal/ui/router"
)

func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestUnknownWriterReturnsHome(t *testing.T) {
	t.Parallel()
	m := New(nil, "ghost")
	m, cmd := m.Update(ProfileLoadedMsg{Err: fmt.Errorf("get profile: %w", apperrors.ErrNotFound)})
	if m.err != nil {
		t.Fatalf("missing profile should not leave a banner, got %v", m.err)
	}
	var home bool
	for _, msg := range drain(cmd) {
		if nav, ok := msg.(router.NavigateMsg); ok && nav.Path == "/" {
			home = true
		}
	}
	if !home {
		t.Fatalf("expected navigation to /")
	}
}

func TestOtherProfileErrorsShowBanner(t *testing.T) {
	t.Parallel()
	m := New(nil, "ada")
	m, cmd := m.Update(ProfileLoadedMsg{Err: errors.New("api 500")})
	if m.err == nil {
		t.Fatalf("expected banner error")
	}
	msgs := drain(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(msgs))
	}
	if _, ok := msgs[0].(components.FailedMsg); !ok {
		t.Fatalf("expected FailedMsg, got %T", msgs[0])
	}
}
