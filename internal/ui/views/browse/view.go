package browse

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	browsedto "writerly/internal/modules/browse/dto"
	"writerly/internal/ui/components"
	"writerly/internal/ui/router"
	"writerly/internal/ui/theme"
)

type Port interface {
	Search(ctx context.Context, input browsedto.QueryInput) (browsedto.PageOutput, error)
	Genres(ctx context.Context) ([]browsedto.GenreOutput, error)
}

type PageLoadedMsg struct {
	Page browsedto.PageOutput
	Err  error
}

type GenresLoadedMsg struct {
	Genres []browsedto.GenreOutput
	Err    error
}

type cardItem struct{ card browsedto.CardOutput }

func (i cardItem) Title() string { return i.card.Title }
func (i cardItem) Description() string {
	return fmt.Sprintf("%s · %s · %d words · %s", i.card.AuthorUsername, i.card.Genre, i.card.WordCount, theme.Stars(i.card.RatingAverage))
}
func (i cardItem) FilterValue() string { return i.card.Title }

var sortKeys = []string{"created_at", "rating_average", "views_count", "word_count"}

type Model struct {
	port    Port
	list    list.Model
	search  textinput.Model
	spinner spinner.Model
	query   browsedto.QueryInput
	page    browsedto.PageOutput
	genres  []browsedto.GenreOutput
	loading bool
	err     error
	width   int
	height  int
}

func New(port Port) Model {
	ti := textinput.New()
	ti.Placeholder = "search titles and summaries"
	ti.Prompt = "/ "
	ti.CharLimit = 120
	return Model{
		port:    port,
		list:    newList(),
		search:  ti,
		spinner: components.NewSpinner(),
		query:   browsedto.QueryInput{SortBy: sortKeys[0], SortOrder: "desc", Page: 1, PageSize: 12},
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(m.query), m.loadGenresCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.height-4)

	case PageLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, components.Failed("browse", msg.Err)
		}
		m.err = nil
		m.page = msg.Page
		m.query.Page = msg.Page.Page
		items := make([]list.Item, len(msg.Page.Works))
		for i, c := range msg.Page.Works {
			items[i] = cardItem{card: c}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.list.Title = m.title()

	case GenresLoadedMsg:
		if msg.Err != nil {
			return m, components.Failed("genres", msg.Err)
		}
		m.genres = msg.Genres

	case components.ActionMsg:
		switch msg.Name {
		case "search":
			m.query.Text = strings.TrimSpace(msg.Raw)
			m.search.SetValue(m.query.Text)
			return m.reload(1)
		case "genre":
			m.query.Genre = strings.TrimSpace(msg.Raw)
			return m.reload(1)
		case "refresh":
			return m.reload(m.query.Page)
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if m.search.Focused() {
			switch msg.String() {
			case "enter":
				m.search.Blur()
				m.query.Text = strings.TrimSpace(m.search.Value())
				return m.reload(1)
			case "esc":
				m.search.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "/":
			cmd := m.search.Focus()
			return m, cmd
		case "enter":
			if item, ok := m.list.SelectedItem().(cardItem); ok {
				return m, router.Navigate(router.WorkPath(item.card.ID))
			}
			return m, nil
		case "left", "h":
			if m.query.Page > 1 {
				return m.reload(m.query.Page - 1)
			}
			return m, nil
		case "right", "l":
			if m.query.Page < m.page.TotalPages {
				return m.reload(m.query.Page + 1)
			}
			return m, nil
		case "o":
			m.query.SortBy = nextOf(sortKeys, m.query.SortBy)
			return m.reload(1)
		case "r":
			if m.query.SortOrder == "desc" {
				m.query.SortOrder = "asc"
			} else {
				m.query.SortOrder = "desc"
			}
			return m.reload(1)
		case "g":
			names := make([]string, 0, len(m.genres)+1)
			names = append(names, "")
			for _, g := range m.genres {
				names = append(names, g.Genre)
			}
			m.query.Genre = nextOf(names, m.query.Genre)
			return m.reload(1)
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
	if m.loading && len(m.page.Works) == 0 {
		return components.Loading(m.spinner, m.width, m.height, "Loading works…")
	}
	var head strings.Builder
	head.WriteString(m.search.View() + "\n")
	head.WriteString(components.Banner(m.err))
	body := m.list.View()
	if len(m.page.Works) == 0 {
		body = theme.Muted.Render("No works match. Clear the search with / then enter.")
	}
	footer := m.renderPager()
	return lipgloss.JoinVertical(lipgloss.Left, head.String(), body, footer)
}

// CapturesKeys is true while the search box or list filter is being typed into.
func (m Model) CapturesKeys() bool {
	return m.search.Focused() || m.list.FilterState() == list.Filtering
}

func (m Model) reload(page int) (Model, tea.Cmd) {
	m.loading = true
	m.query.Page = page
	return m, tea.Batch(m.loadCmd(m.query), m.spinner.Tick)
}

func (m Model) title() string {
	parts := []string{"Discover"}
	if m.query.Text != "" {
		parts = append(parts, fmt.Sprintf("%q", m.query.Text))
	}
	if m.query.Genre != "" {
		parts = append(parts, m.query.Genre)
	}
	parts = append(parts, fmt.Sprintf("%s %s", m.query.SortBy, m.query.SortOrder))
	return strings.Join(parts, " · ")
}

func (m Model) renderPager() string {
	if m.page.TotalPages == 0 {
		return ""
	}
	nums := make([]string, len(m.page.Window))
	for i, p := range m.page.Window {
		if p == m.page.Page {
			nums[i] = theme.Hot.Render(fmt.Sprintf("[%d]", p))
		} else {
			nums[i] = theme.Muted.Render(fmt.Sprintf("%d", p))
		}
	}
	return fmt.Sprintf("%s  %s  %s",
		strings.Join(nums, " "),
		theme.Muted.Render(fmt.Sprintf("%d works", m.page.Total)),
		theme.Muted.Render("←/→ page  /: search  g: genre  o: sort  r: order  enter: open"))
}

func (m Model) loadCmd(q browsedto.QueryInput) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		page, err := port.Search(context.Background(), q)
		return PageLoadedMsg{Page: page, Err: err}
	}
}

func (m Model) loadGenresCmd() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		genres, err := port.Genres(context.Background())
		return GenresLoadedMsg{Genres: genres, Err: err}
	}
}

func nextOf(options []string, current string) string {
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func newList() list.Model {
	l := components.NewList("Discover")
	l.SetFilteringEnabled(false)
	return l
}
