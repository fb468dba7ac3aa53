package bookmarks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	engagementdto "writerly/internal/modules/engagement/dto"
	"writerly/internal/ui/components"
	"writerly/internal/ui/router"
	"writerly/internal/ui/theme"
)

type Port interface {
	Bookmarks(ctx context.Context) ([]engagementdto.BookmarkOutput, error)
	RemoveBookmark(ctx context.Context, workID string, current []engagementdto.BookmarkOutput) ([]engagementdto.BookmarkOutput, error)
}

type LoadedMsg struct {
	Items []engagementdto.BookmarkOutput
	Err   error
}

// RemovedMsg carries the list with the removed entry filtered out.
type RemovedMsg struct {
	WorkID string
	Items  []engagementdto.BookmarkOutput
	Err    error
}

type bookmarkItem struct{ b engagementdto.BookmarkOutput }

func (i bookmarkItem) Title() string { return i.b.WorkTitle }
func (i bookmarkItem) Description() string {
	return fmt.Sprintf("%s · %s · %d words · saved %s", i.b.WorkAuthorUsername, i.b.WorkGenre, i.b.WorkWordCount, i.b.CreatedAt.Local().Format("Jan 2"))
}
func (i bookmarkItem) FilterValue() string { return i.b.WorkTitle }

type Model struct {
	port    Port
	list    list.Model
	spinner spinner.Model
	items   []engagementdto.BookmarkOutput
	loading bool
	err     error
	width   int
	height  int
}

func New(port Port) Model {
	return Model{
		port:    port,
		list:    components.NewList("Bookmarks"),
		spinner: components.NewSpinner(),
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.height-2)

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, components.Failed("bookmarks", msg.Err)
		}
		m.err = nil
		cmd := m.setItems(msg.Items)
		return m, cmd

	case RemovedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, components.Failed("remove bookmark", msg.Err)
		}
		cmd := m.setItems(msg.Items)
		return m, tea.Batch(cmd, components.Notice("bookmark removed"))

	case components.ActionMsg:
		if msg.Name == "refresh" {
			m.loading = true
			return m, tea.Batch(m.loadCmd(), m.spinner.Tick)
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(bookmarkItem); ok {
				return m, router.Navigate(router.WorkPath(item.b.WorkID))
			}
			return m, nil
		case "d", "x":
			if item, ok := m.list.SelectedItem().(bookmarkItem); ok {
				return m, m.removeCmd(item.b.WorkID)
			}
			return m, nil
		}
	}

	if !m.loading {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return components.Loading(m.spinner, m.width, m.height, "Loading bookmarks…")
	}
	body := m.list.View()
	if len(m.items) == 0 {
		body = theme.Muted.Render("No bookmarks yet. Press b on a work to save it.")
	}
	hint := theme.Muted.Render("enter: open  d: remove")
	return lipgloss.JoinVertical(lipgloss.Left, components.Banner(m.err)+body, hint)
}

func (m Model) CapturesKeys() bool { return m.list.FilterState() == list.Filtering }

// Items returns the bookmarks currently shown.
func (m Model) Items() []engagementdto.BookmarkOutput { return m.items }

func (m *Model) setItems(items []engagementdto.BookmarkOutput) tea.Cmd {
	m.items = items
	listItems := make([]list.Item, len(items))
	for i, b := range items {
		listItems[i] = bookmarkItem{b: b}
	}
	return m.list.SetItems(listItems)
}

func (m Model) loadCmd() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		items, err := port.Bookmarks(context.Background())
		return LoadedMsg{Items: items, Err: err}
	}
}

func (m Model) removeCmd(workID string) tea.Cmd {
	port := m.port
	current := append([]engagementdto.BookmarkOutput(nil), m.items...)
	return func() tea.Msg {
		items, err := port.RemoveBookmark(context.Background(), workID, current)
		return RemovedMsg{WorkID: workID, Items: items, Err: err}
	}
}
