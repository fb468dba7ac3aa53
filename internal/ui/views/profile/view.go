package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	profiledto "writerly/internal/modules/profile/dto"
	apperrors "writerly/internal/platform/errors"
	"writerly/internal/ui/components"
	"writerly/internal/ui/router"
	"writerly/internal/ui/theme"
)

type Port interface {
	Get(ctx context.Context, username string) (profiledto.ProfileOutput, error)
	Works(ctx context.Context, username string) ([]profiledto.WorkSummaryOutput, error)
	Follow(ctx context.Context, username string) error
	Unfollow(ctx context.Context, username string) error
	UpdateMe(ctx context.Context, bio, location, website string) (profiledto.ProfileOutput, error)
}

type ProfileLoadedMsg struct {
	Profile profiledto.ProfileOutput
	Err     error
}

type WorksLoadedMsg struct {
	Works []profiledto.WorkSummaryOutput
	Err   error
}

type FollowMsg struct{ Err error }

type workItem struct{ w profiledto.WorkSummaryOutput }

func (i workItem) Title() string { return i.w.Title }
func (i workItem) Description() string {
	return fmt.Sprintf("%s · %d words · %s · %d views", i.w.Genre, i.w.WordCount, theme.Stars(i.w.RatingAverage), i.w.ViewsCount)
}
func (i workItem) FilterValue() string { return i.w.Title }

type Model struct {
	port     Port
	username string
	profile  profiledto.ProfileOutput
	works    list.Model
	spinner  spinner.Model
	editing  bool
	fields   []textinput.Model
	focus    int
	loading  bool
	err      error
	width    int
	height   int
}

// New shows username's profile; "me" or "" is the logged-in user.
func New(port Port, username string) Model {
	labels := []string{"bio", "location", "website"}
	fields := make([]textinput.Model, len(labels))
	for i, label := range labels {
		ti := textinput.New()
		ti.Placeholder = label
		ti.Prompt = lipgloss.NewStyle().Width(10).Render(label) + " "
		ti.CharLimit = 500
		fields[i] = ti
	}
	return Model{
		port:     port,
		username: username,
		works:    components.NewList("Works"),
		spinner:  components.NewSpinner(),
		fields:   fields,
		loading:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadProfileCmd(), m.loadWorksCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.works.SetSize(m.width, max(3, m.height-10))

	case ProfileLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			if errors.Is(msg.Err, apperrors.ErrNotFound) {
				return m, tea.Batch(components.Notice("no such writer"), router.Navigate("/"))
			}
			m.err = msg.Err
			return m, components.Failed("profile", msg.Err)
		}
		m.err = nil
		m.profile = msg.Profile
		if m.editing {
			m.editing = false
			return m, components.Notice("profile saved")
		}
		return m, nil

	case WorksLoadedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, components.Failed("profile works", msg.Err)
		}
		items := make([]list.Item, len(msg.Works))
		for i, w := range msg.Works {
			items[i] = workItem{w: w}
		}
		return m, m.works.SetItems(items)

	case FollowMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, components.Failed("follow", msg.Err)
		}
		return m, m.loadProfileCmd()

	case components.ActionMsg:
		if msg.Name == "refresh" {
			m.loading = true
			return m, tea.Batch(m.loadProfileCmd(), m.loadWorksCmd(), m.spinner.Tick)
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if m.editing {
			return m.updateForm(msg)
		}
		if m.works.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.works.SelectedItem().(workItem); ok {
				return m, router.Navigate(router.WorkPath(item.w.ID))
			}
			return m, nil
		case "f":
			if m.profile.Own || m.profile.Username == "" {
				return m, nil
			}
			return m, m.followCmd(m.profile.IsFollowing != nil && *m.profile.IsFollowing)
		case "e":
			if !m.profile.Own {
				return m, nil
			}
			m.editing = true
			m.fields[0].SetValue(m.profile.Bio)
			m.fields[1].SetValue(m.profile.Location)
			m.fields[2].SetValue(m.profile.Website)
			m.focus = 0
			return m, m.fields[0].Focus()
		}
	}

	if !m.loading {
		var cmd tea.Cmd
		m.works, cmd = m.works.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading && m.profile.Username == "" {
		return components.Loading(m.spinner, m.width, m.height, "Loading profile…")
	}
	p := m.profile
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(p.Username) + " " + theme.Muted.Render(p.Role) + "\n")
	if p.Bio != "" {
		sb.WriteString(p.Bio + "\n")
	}
	var meta []string
	if p.Location != "" {
		meta = append(meta, p.Location)
	}
	if p.Website != "" {
		meta = append(meta, p.Website)
	}
	meta = append(meta, fmt.Sprintf("%d works · %d followers · %d following", p.WorksCount, p.FollowersCount, p.FollowingCount))
	sb.WriteString(theme.Muted.Render(strings.Join(meta, " · ")) + "\n")
	sb.WriteString(components.Banner(m.err))

	if m.editing {
		sb.WriteString("\n")
		for _, f := range m.fields {
			sb.WriteString(f.View() + "\n")
		}
		sb.WriteString(theme.Muted.Render("enter: save  tab: next  esc: cancel"))
		return sb.String()
	}

	var hint string
	switch {
	case p.Own:
		hint = "e: edit profile  enter: open work"
	case p.IsFollowing != nil && *p.IsFollowing:
		hint = "f: unfollow  enter: open work"
	default:
		hint = "f: follow  enter: open work"
	}
	return lipgloss.JoinVertical(lipgloss.Left, sb.String(), m.works.View(), theme.Muted.Render(hint))
}

func (m Model) CapturesKeys() bool {
	return m.editing || m.works.FilterState() == list.Filtering
}

func (m Model) updateForm(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.fields[m.focus].Blur()
		return m, nil
	case "tab", "down":
		m.fields[m.focus].Blur()
		m.focus = (m.focus + 1) % len(m.fields)
		return m, m.fields[m.focus].Focus()
	case "shift+tab", "up":
		m.fields[m.focus].Blur()
		m.focus = (m.focus + len(m.fields) - 1) % len(m.fields)
		return m, m.fields[m.focus].Focus()
	case "enter":
		port := m.port
		bio, location, website := m.fields[0].Value(), m.fields[1].Value(), m.fields[2].Value()
		return m, func() tea.Msg {
			p, err := port.UpdateMe(context.Background(), bio, location, website)
			return ProfileLoadedMsg{Profile: p, Err: err}
		}
	}
	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	return m, cmd
}

func (m Model) loadProfileCmd() tea.Cmd {
	port, username := m.port, m.username
	return func() tea.Msg {
		p, err := port.Get(context.Background(), username)
		return ProfileLoadedMsg{Profile: p, Err: err}
	}
}

func (m Model) loadWorksCmd() tea.Cmd {
	port, username := m.port, m.username
	return func() tea.Msg {
		works, err := port.Works(context.Background(), username)
		return WorksLoadedMsg{Works: works, Err: err}
	}
}

func (m Model) followCmd(following bool) tea.Cmd {
	port, username := m.port, m.profile.Username
	return func() tea.Msg {
		if following {
			return FollowMsg{Err: port.Unfollow(context.Background(), username)}
		}
		return FollowMsg{Err: port.Follow(context.Background(), username)}
	}
}
