package professional

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	professionaldto "writerly/internal/modules/professional/dto"
	"writerly/internal/ui/components"
	"writerly/internal/ui/router"
	"writerly/internal/ui/theme"
)

type Port interface {
	Discover(ctx context.Context, input professionaldto.DiscoverInput) ([]professionaldto.DiscoverWorkOutput, error)
	Inbox(ctx context.Context, status string) ([]professionaldto.SubmissionOutput, error)
	Respond(ctx context.Context, submissionID, status, response string) error
	MySubmissions(ctx context.Context) ([]professionaldto.SubmissionOutput, error)
}

type Mode int

const (
	ModeDiscover Mode = iota
	ModeInbox
	ModeSubmissions
)

type DiscoveredMsg struct {
	Works []professionaldto.DiscoverWorkOutput
	Err   error
}

type SubmissionsMsg struct {
	Items []professionaldto.SubmissionOutput
	Err   error
}

type RespondedMsg struct {
	Status string
	Err    error
}

var inboxFilters = []string{"", "pending", "reviewing", "accepted", "declined"}

type discoverItem struct {
	w professionaldto.DiscoverWorkOutput
}

func (i discoverItem) Title() string { return i.w.Title }
func (i discoverItem) Description() string {
	return fmt.Sprintf("%s · %s · %d words · %s · %d views", i.w.AuthorUsername, i.w.Genre, i.w.WordCount, theme.Stars(i.w.AverageRating), i.w.ViewCount)
}
func (i discoverItem) FilterValue() string { return i.w.Title }

type submissionItem struct {
	s professionaldto.SubmissionOutput
}

func (i submissionItem) Title() string { return "[" + i.s.Status + "] " + i.s.WorkTitle }
func (i submissionItem) Description() string {
	desc := i.s.AuthorUsername + " · " + i.s.SubmittedAt.Local().Format("Jan 2")
	if i.s.Message != "" {
		desc += " · " + i.s.Message
	}
	if i.s.Response != "" {
		desc += " · reply: " + i.s.Response
	}
	return desc
}
func (i submissionItem) FilterValue() string { return i.s.WorkTitle }

type Model struct {
	port    Port
	mode    Mode
	list    list.Model
	spinner spinner.Model
	filters []textinput.Model
	focus   int
	editing bool
	status  string
	count   int
	loading bool
	err     error
	width   int
	height  int
}

func New(port Port, mode Mode) Model {
	labels := []string{"genres", "min words", "max words", "min rating", "min views"}
	filters := make([]textinput.Model, len(labels))
	for i, label := range labels {
		ti := textinput.New()
		ti.Placeholder = label
		ti.Prompt = lipgloss.NewStyle().Width(12).Render(label) + " "
		ti.CharLimit = 120
		filters[i] = ti
	}
	title := map[Mode]string{ModeDiscover: "Discover", ModeInbox: "Inbox", ModeSubmissions: "My submissions"}[mode]
	return Model{
		port:    port,
		mode:    mode,
		list:    components.NewList(title),
		spinner: components.NewSpinner(),
		filters: filters,
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
		m.list.SetSize(m.width, m.height-3)

	case DiscoveredMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, components.Failed("discover", msg.Err)
		}
		m.err = nil
		m.count = len(msg.Works)
		items := make([]list.Item, len(msg.Works))
		for i, w := range msg.Works {
			items[i] = discoverItem{w: w}
		}
		return m, m.list.SetItems(items)

	case SubmissionsMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, components.Failed("submissions", msg.Err)
		}
		m.err = nil
		m.count = len(msg.Items)
		items := make([]list.Item, len(msg.Items))
		for i, s := range msg.Items {
			items[i] = submissionItem{s: s}
		}
		return m, m.list.SetItems(items)

	case RespondedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, components.Failed("respond", msg.Err)
		}
		m.loading = true
		return m, tea.Batch(components.Notice("submission marked "+msg.Status), m.loadCmd())

	case components.ActionMsg:
		switch msg.Name {
		case "refresh":
			m.loading = true
			return m, tea.Batch(m.loadCmd(), m.spinner.Tick)
		case "respond":
			fields := strings.Fields(msg.Raw)
			if len(fields) == 0 {
				m.err = errors.New("usage: respond <reviewing|accepted|declined> [message]")
				return m, nil
			}
			return m, m.respondCmd(fields[0], strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(msg.Raw), fields[0])))
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if m.editing {
			return m.updateFilters(msg)
		}
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			switch item := m.list.SelectedItem().(type) {
			case discoverItem:
				return m, router.Navigate(router.WorkPath(item.w.ID))
			case submissionItem:
				return m, router.Navigate(router.WorkPath(item.s.WorkID))
			}
			return m, nil
		case "f":
			if m.mode == ModeDiscover {
				m.editing = true
				m.focus = 0
				return m, m.filters[0].Focus()
			}
		case "s":
			if m.mode == ModeInbox {
				for i, f := range inboxFilters {
					if f == m.status {
						m.status = inboxFilters[(i+1)%len(inboxFilters)]
						break
					}
				}
				m.loading = true
				return m, m.loadCmd()
			}
		case "v":
			if m.mode == ModeInbox {
				return m, m.respondCmd("reviewing", "")
			}
		case "y":
			if m.mode == ModeInbox {
				return m, m.respondCmd("accepted", "")
			}
		case "n":
			if m.mode == ModeInbox {
				return m, m.respondCmd("declined", "")
			}
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
	if m.loading && m.count == 0 {
		return components.Loading(m.spinner, m.width, m.height, "Loading…")
	}
	var head strings.Builder
	head.WriteString(components.Banner(m.err))
	if m.editing {
		for _, f := range m.filters {
			head.WriteString(f.View() + "\n")
		}
		head.WriteString(theme.Muted.Render("enter: apply  tab: next  esc: close") + "\n")
		return head.String()
	}
	body := m.list.View()
	if m.count == 0 {
		body = theme.Muted.Render("Nothing here yet.")
	}
	var hint string
	switch m.mode {
	case ModeDiscover:
		hint = "f: filters  enter: open work"
	case ModeInbox:
		label := m.status
		if label == "" {
			label = "all"
		}
		hint = "s: status (" + label + ")  v: reviewing  y: accept  n: decline  enter: open work"
	case ModeSubmissions:
		hint = "enter: open work"
	}
	return lipgloss.JoinVertical(lipgloss.Left, head.String()+body, theme.Muted.Render(hint))
}

func (m Model) CapturesKeys() bool {
	return m.editing || m.list.FilterState() == list.Filtering
}

func (m Model) updateFilters(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.filters[m.focus].Blur()
		return m, nil
	case "tab", "down":
		m.filters[m.focus].Blur()
		m.focus = (m.focus + 1) % len(m.filters)
		return m, m.filters[m.focus].Focus()
	case "shift+tab", "up":
		m.filters[m.focus].Blur()
		m.focus = (m.focus + len(m.filters) - 1) % len(m.filters)
		return m, m.filters[m.focus].Focus()
	case "enter":
		if _, err := m.discoverInput(); err != nil {
			m.err = err
			return m, nil
		}
		m.editing = false
		m.filters[m.focus].Blur()
		m.loading = true
		return m, tea.Batch(m.loadCmd(), m.spinner.Tick)
	}
	var cmd tea.Cmd
	m.filters[m.focus], cmd = m.filters[m.focus].Update(msg)
	return m, cmd
}

func (m Model) discoverInput() (professionaldto.DiscoverInput, error) {
	var in professionaldto.DiscoverInput
	if g := strings.TrimSpace(m.filters[0].Value()); g != "" {
		in.Genres = strings.Split(g, ",")
	}
	ints := []*int{nil, &in.MinWordCount, &in.MaxWordCount, nil, &in.MinViews}
	for i, dst := range ints {
		if dst == nil {
			continue
		}
		raw := strings.TrimSpace(m.filters[i].Value())
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return in, fmt.Errorf("%s must be a whole number", m.filters[i].Placeholder)
		}
		*dst = n
	}
	if raw := strings.TrimSpace(m.filters[3].Value()); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return in, fmt.Errorf("min rating must be a number")
		}
		in.MinRating = f
	}
	return in, nil
}

func (m Model) loadCmd() tea.Cmd {
	port, status := m.port, m.status
	switch m.mode {
	case ModeDiscover:
		input, err := m.discoverInput()
		return func() tea.Msg {
			if err != nil {
				return DiscoveredMsg{Err: err}
			}
			works, err := port.Discover(context.Background(), input)
			return DiscoveredMsg{Works: works, Err: err}
		}
	case ModeInbox:
		return func() tea.Msg {
			items, err := port.Inbox(context.Background(), status)
			return SubmissionsMsg{Items: items, Err: err}
		}
	default:
		return func() tea.Msg {
			items, err := port.MySubmissions(context.Background())
			return SubmissionsMsg{Items: items, Err: err}
		}
	}
}

func (m Model) respondCmd(status, response string) tea.Cmd {
	item, ok := m.list.SelectedItem().(submissionItem)
	if m.mode != ModeInbox || !ok {
		return nil
	}
	port := m.port
	return func() tea.Msg {
		err := port.Respond(context.Background(), item.s.ID, status, response)
		return RespondedMsg{Status: status, Err: err}
	}
}
