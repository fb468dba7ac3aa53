package components

import (
	tea "github.com/charmbracelet/bubbletea"

	"writerly/internal/ui/theme"
)

// FailedMsg reports a failed fetch or mutation to the root model, which
// logs it and shows it in the status bar.
type FailedMsg struct {
	Op  string
	Err error
}

func Failed(op string, err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return func() tea.Msg { return FailedMsg{Op: op, Err: err} }
}

// NoticeMsg puts a plain message in the status bar.
type NoticeMsg struct{ Text string }

func Notice(text string) tea.Cmd {
	return func() tea.Msg { return NoticeMsg{Text: text} }
}

// Banner renders an inline error line, or nothing.
func Banner(err error) string {
	if err == nil {
		return ""
	}
	return theme.Error.Render("✗ "+err.Error()) + "\n"
}

// ActionMsg carries a palette command down to the active view. Raw is
// everything after the command name.
type ActionMsg struct {
	Name string
	Raw  string
}

// UnreadCountMsg updates the notification badge in the nav bar.
type UnreadCountMsg struct {
	Count int
	Err   error
}

// DegradedMsg reports a secondary fetch that failed while the page itself
// rendered. The root model only logs it.
type DegradedMsg struct {
	Op  string
	Err error
}

func Degraded(op string, err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return func() tea.Msg { return DegradedMsg{Op: op, Err: err} }
}
