package notifications

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	notificationsdto "writerly/internal/modules/notifications/dto"
	"writerly/internal/ui/components"
	"writerly/internal/ui/router"
	"writerly/internal/ui/theme"
)

type Port interface {
	List(ctx context.Context, limit int) (notificationsdto.ListOutput, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}

type LoadedMsg struct {
	Out notificationsdto.ListOutput
	Err error
}

// MarkedMsg follows a mark-read call. Link is where to go next, if anywhere.
type MarkedMsg struct {
	Link string
	Err  error
}

type notificationItem struct {
	n notificationsdto.NotificationOutput
}

func (i notificationItem) Title() string {
	if i.n.Read {
		return "  " + i.n.Title
	}
	return "● " + i.n.Title
}
func (i notificationItem) Description() string {
	return i.n.CreatedAt.Local().Format("Jan 2 15:04") + "  " + i.n.Message
}
func (i notificationItem) FilterValue() string { return i.n.Title + " " + i.n.Message }

type Model struct {
	port    Port
	list    list.Model
	spinner spinner.Model
	out     notificationsdto.ListOutput
	loading bool
	err     error
	width   int
	height  int
}

func New(port Port) Model {
	return Model{
		port:    port,
		list:    components.NewList("Notifications"),
		spinner: components.NewSpinner(),
		loading: true,
	}
}

func (m Model) Init() tea.Cmd { return tea.Batch(m.loadCmd(), m.spinner.Tick) }

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
			return m, components.Failed("notifications", msg.Err)
		}
		m.err = nil
		m.out = msg.Out
		items := make([]list.Item, len(msg.Out.Items))
		for i, n := range msg.Out.Items {
			items[i] = notificationItem{n: n}
		}
		m.list.Title = "Notifications"
		if msg.Out.Unread > 0 {
			m.list.Title += " · " + strconv.Itoa(msg.Out.Unread) + " unread"
		}
		unread := msg.Out.Unread
		return m, tea.Batch(m.list.SetItems(items), func() tea.Msg { return components.UnreadCountMsg{Count: unread} })

	case MarkedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, components.Failed("mark read", msg.Err)
		}
		cmds = append(cmds, m.loadCmd())
		if strings.HasPrefix(msg.Link, "/") {
			cmds = append(cmds, router.Navigate(msg.Link))
		}
		return m, tea.Batch(cmds...)

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
			if item, ok := m.list.SelectedItem().(notificationItem); ok {
				return m, m.markCmd(item.n)
			}
			return m, nil
		case "A":
			return m, m.markAllCmd()
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
		return components.Loading(m.spinner, m.width, m.height, "Loading notifications…")
	}
	body := m.list.View()
	if len(m.out.Items) == 0 {
		body = theme.Muted.Render("You're all caught up.")
	}
	return lipgloss.JoinVertical(lipgloss.Left, components.Banner(m.err)+body, theme.Muted.Render("enter: open and mark read  A: mark all read"))
}

func (m Model) CapturesKeys() bool { return m.list.FilterState() == list.Filtering }

func (m Model) loadCmd() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		out, err := port.List(context.Background(), 0)
		return LoadedMsg{Out: out, Err: err}
	}
}

func (m Model) markCmd(n notificationsdto.NotificationOutput) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		if n.Read {
			return MarkedMsg{Link: n.Link}
		}
		err := port.MarkRead(context.Background(), n.ID)
		return MarkedMsg{Link: n.Link, Err: err}
	}
}

func (m Model) markAllCmd() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		return MarkedMsg{Err: port.MarkAllRead(context.Background())}
	}
}
