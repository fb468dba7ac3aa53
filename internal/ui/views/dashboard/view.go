package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	dashboarddto "writerly/internal/modules/dashboard/dto"
	"writerly/internal/ui/components"
	"writerly/internal/ui/theme"
)

type Port interface {
	Stats(ctx context.Context) (dashboarddto.StatsOutput, error)
	Activity(ctx context.Context, days int) ([]dashboarddto.ActivityOutput, error)
}

type StatsLoadedMsg struct {
	Stats dashboarddto.StatsOutput
	Err   error
}

type ActivityLoadedMsg struct {
	Items []dashboarddto.ActivityOutput
	Err   error
}

var dayChoices = []int{7, 30, 90}

type Model struct {
	port     Port
	viewport viewport.Model
	spinner  spinner.Model
	stats    dashboarddto.StatsOutput
	activity []dashboarddto.ActivityOutput
	days     int
	pending  int
	err      error
	width    int
	height   int
}

func New(port Port) Model {
	return Model{
		port:     port,
		viewport: viewport.New(0, 0),
		spinner:  components.NewSpinner(),
		days:     dayChoices[0],
		pending:  2,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.statsCmd(), m.activityCmd(m.days), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.width
		m.viewport.Height = max(1, m.height-2)
		m.viewport.SetContent(m.render())
		return m, nil

	case StatsLoadedMsg:
		m.pending--
		if msg.Err != nil {
			m.err = msg.Err
			return m, components.Failed("dashboard stats", msg.Err)
		}
		m.stats = msg.Stats
		m.viewport.SetContent(m.render())
		return m, nil

	case ActivityLoadedMsg:
		m.pending--
		if msg.Err != nil {
			m.err = msg.Err
			return m, components.Failed("dashboard activity", msg.Err)
		}
		m.activity = msg.Items
		m.viewport.SetContent(m.render())
		return m, nil

	case components.ActionMsg:
		if msg.Name == "refresh" {
			m.pending = 2
			m.err = nil
			return m, tea.Batch(m.statsCmd(), m.activityCmd(m.days), m.spinner.Tick)
		}
		return m, nil

	case spinner.TickMsg:
		if m.pending > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "d" {
			for i, d := range dayChoices {
				if d == m.days {
					m.days = dayChoices[(i+1)%len(dayChoices)]
					break
				}
			}
			m.pending++
			return m, m.activityCmd(m.days)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.pending > 0 && m.stats.Works == nil && m.activity == nil {
		return components.Loading(m.spinner, m.width, m.height, "Loading dashboard…")
	}
	hint := theme.Muted.Render(fmt.Sprintf("d: activity window (%d days)  ↑/↓: scroll", m.days))
	return lipgloss.JoinVertical(lipgloss.Left, components.Banner(m.err)+m.viewport.View(), hint)
}

func (m Model) render() string {
	s := m.stats
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Dashboard") + "\n\n")
	cells := []string{
		tile("works", fmt.Sprint(s.TotalWorks)),
		tile("views", fmt.Sprint(s.TotalViews)),
		tile("reads", fmt.Sprint(s.TotalReads)),
		tile("ratings", fmt.Sprintf("%d · %.2f", s.TotalRatings, s.AverageRating)),
		tile("followers", fmt.Sprint(s.TotalFollowers)),
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...) + "\n\n")

	sb.WriteString(theme.Title.Render("Works") + "\n")
	if len(s.Works) == 0 {
		sb.WriteString(theme.Muted.Render("no published works yet") + "\n")
	}
	for _, w := range s.Works {
		sb.WriteString(fmt.Sprintf("%-32s %7d views %6d reads %5.1f%% read %s %4d comments %4d saves\n",
			truncate(w.Title, 32), w.Views, w.Reads, w.ReadRate, theme.Stars(w.AverageRating), w.Comments, w.Bookmarks))
	}

	sb.WriteString("\n" + theme.Title.Render(fmt.Sprintf("Activity · last %d days", m.days)) + "\n")
	if len(m.activity) == 0 {
		sb.WriteString(theme.Muted.Render("nothing new") + "\n")
	}
	for _, a := range m.activity {
		sb.WriteString(theme.Muted.Render(a.Timestamp.Local().Format("Jan 2 15:04")) + "  " + theme.Hot.Render(a.Type) + "  " + a.Message + "\n")
	}
	return sb.String()
}

func tile(label, value string) string {
	return theme.Pane.Width(18).Render(theme.Muted.Render(label) + "\n" + theme.Hot.Render(value))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (m Model) statsCmd() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		stats, err := port.Stats(context.Background())
		return StatsLoadedMsg{Stats: stats, Err: err}
	}
}

func (m Model) activityCmd(days int) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		items, err := port.Activity(context.Background(), days)
		return ActivityLoadedMsg{Items: items, Err: err}
	}
}
