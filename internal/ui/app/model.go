package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	hclog "github.com/hashicorp/go-hclog"

	authdto "writerly/internal/modules/auth/dto"
	engagementdto "writerly/internal/modules/engagement/dto"
	notificationsdto "writerly/internal/modules/notifications/dto"
	readingdto "writerly/internal/modules/reading/dto"
	readingin "writerly/internal/modules/reading/port/in"
	worksdto "writerly/internal/modules/works/dto"
	apperrors "writerly/internal/platform/errors"
	"writerly/internal/platform/logging"
	"writerly/internal/ui/components"
	"writerly/internal/ui/router"
	"writerly/internal/ui/theme"
	authview "writerly/internal/ui/views/auth"
	bookmarksview "writerly/internal/ui/views/bookmarks"
	browseview "writerly/internal/ui/views/browse"
	dashboardview "writerly/internal/ui/views/dashboard"
	notificationsview "writerly/internal/ui/views/notifications"
	pluginsview "writerly/internal/ui/views/plugins"
	professionalview "writerly/internal/ui/views/professional"
	profileview "writerly/internal/ui/views/profile"
	uploadview "writerly/internal/ui/views/upload"
	workview "writerly/internal/ui/views/work"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type authPort interface {
	Login(ctx context.Context, email, password string) (authdto.UserOutput, error)
	Register(ctx context.Context, username, email, password string) (authdto.UserOutput, error)
	Logout(ctx context.Context) error
	Status(ctx context.Context) (authdto.StatusOutput, error)
	IsAuthenticated() bool
}

type worksPort interface {
	Get(ctx context.Context, id string) (worksdto.WorkOutput, error)
	Upload(ctx context.Context, input worksdto.UploadInput) (worksdto.WorkOutput, error)
}

type engagementPort interface {
	Bookmarks(ctx context.Context) ([]engagementdto.BookmarkOutput, error)
	IsBookmarked(ctx context.Context, workID string) (bool, error)
	AddBookmark(ctx context.Context, workID string) error
	RemoveBookmark(ctx context.Context, workID string, current []engagementdto.BookmarkOutput) ([]engagementdto.BookmarkOutput, error)
	Comments(ctx context.Context, workID string) ([]engagementdto.CommentOutput, error)
	AddComment(ctx context.Context, workID, content string) ([]engagementdto.CommentOutput, error)
	Rate(ctx context.Context, workID string, score int, review string) error
}

type readingPort interface {
	Validation(ctx context.Context, workID string) (readingdto.UnlockOutput, error)
	Track(workID, sectionID string) (readingin.Tracker, error)
}

type notificationsPort interface {
	List(ctx context.Context, limit int) (notificationsdto.ListOutput, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}

// Ports groups everything the TUI talks to.
type Ports struct {
	Auth          authPort
	Works         worksPort
	Browse        browseview.Port
	Engagement    engagementPort
	Reading       readingPort
	Notifications notificationsPort
	Dashboard     dashboardview.Port
	Profile       profileview.Port
	Professional  professionalview.Port
	Plugin        pluginsview.Port
}

// ─── nav bar ─────────────────────────────────────────────────────────────────

type navLink struct {
	key   string
	label string
	path  string
	name  router.Name
	gated bool
}

var navLinks = []navLink{
	{"H", "Browse", "/", router.Browse, false},
	{"B", "Bookmarks", "/bookmarks", router.Bookmarks, true},
	{"D", "Dashboard", "/dashboard", router.Dashboard, true},
	{"X", "Discover", "/professional/discover", router.Discover, true},
	{"I", "Inbox", "/professional/inbox", router.Inbox, true},
	{"S", "Submissions", "/submissions", router.Submissions, true},
	{"U", "Upload", "/upload", router.Upload, true},
	{"P", "Profile", "/profile/me", router.Profile, true},
}

// ─── async messages ───────────────────────────────────────────────────────────

type userLoadedMsg struct {
	status authdto.StatusOutput
	err    error
}

type loggedOutMsg struct{ err error }

type unreadTickMsg struct{}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Nav     key.Binding
	Notify  key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Back    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Nav:     key.NewBinding(key.WithKeys("H", "B", "D", "X", "I", "S", "U", "P"), key.WithHelp("H/B/D/X/I/S/U/P", "go to page")),
		Notify:  key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "notifications")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Nav, k.Notify, k.Back},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns routing, the nav bar, the
// status bar, the help overlay, and the command palette. Pages are mounted
// per route and torn down when the route changes.
type Model struct {
	ports        Ports
	logger       hclog.Logger
	pollInterval time.Duration

	route router.Route
	page  page

	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	status   string
	failed   bool
	username string
	unread   int
	width    int
	height   int
}

func NewModel(ports Ports, startPath string, pollInterval time.Duration, logger hclog.Logger) Model {
	if pollInterval <= 0 {
		pollInterval = 30 * time.Second
	}
	m := Model{
		ports:        ports,
		logger:       logging.OrNull(logger).Named("tui"),
		pollInterval: pollInterval,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
	m.help.ShowAll = true
	m.route = router.Resolve(startPath, ports.Auth.IsAuthenticated())
	m.page = m.build(m.route)
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.page.Init(),
		m.loadUserCmd(),
		m.fetchUnreadCmd(),
		m.scheduleUnread(),
	)
}

// Route is the currently mounted route.
func (m Model) Route() router.Route { return m.route }

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		var cmd tea.Cmd
		m.page, cmd = m.page.Update(m.contentSize())
		return m, cmd

	case router.NavigateMsg:
		return m.open(msg.Path)

	case components.FailedMsg:
		m.logger.Warn("request failed", "op", msg.Op, "route", m.route.Path, "error", msg.Err)
		m.status = msg.Op + ": " + msg.Err.Error()
		m.failed = true
		if errors.Is(msg.Err, apperrors.ErrUnauthorized) || errors.Is(msg.Err, apperrors.ErrNotAuthenticated) {
			if !m.ports.Auth.IsAuthenticated() && m.route.Name != router.Login {
				m.username = ""
				m.unread = 0
				m.status = "session expired; log in again"
				return m.open("/login")
			}
		}
		return m, nil

	case components.DegradedMsg:
		m.logger.Warn("partial load", "op", msg.Op, "route", m.route.Path, "error", msg.Err)
		return m, nil

	case components.NoticeMsg:
		m.status = msg.Text
		m.failed = false
		return m, nil

	case components.UnreadCountMsg:
		if msg.Err != nil {
			m.logger.Debug("unread count", "error", msg.Err)
			return m, nil
		}
		m.unread = msg.Count
		return m, nil

	case unreadTickMsg:
		return m, tea.Batch(m.fetchUnreadCmd(), m.scheduleUnread())

	case userLoadedMsg:
		if msg.err == nil && msg.status.Authenticated {
			m.username = msg.status.User.Username
		}
		return m, nil

	case loggedOutMsg:
		if msg.err != nil {
			m.logger.Warn("logout", "error", msg.err)
		}
		m.username = ""
		m.unread = 0
		m.status = "logged out"
		m.failed = false
		return m.open("/")

	case authview.LoggedInMsg:
		if msg.Err == nil {
			m.username = msg.User.Username
			m.failed = false
			var cmd tea.Cmd
			m.page, cmd = m.page.Update(msg)
			return m, tea.Batch(cmd, m.fetchUnreadCmd())
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// Yield to the page while it is taking text input.
		if m.page.CapturesKeys() {
			break
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			cmd := m.palette.Open()
			return m, cmd
		case "N":
			return m.open("/notifications")
		}
		for _, link := range navLinks {
			if msg.String() == link.key {
				return m.open(link.path)
			}
		}
	}

	var cmd tea.Cmd
	m.page, cmd = m.page.Update(msg)
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	nav := m.renderNavBar()
	statusBar := m.renderStatusBar()
	contentH := max(1, m.height-lipgloss.Height(nav)-lipgloss.Height(statusBar))

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = lipgloss.NewStyle().Height(contentH).MaxHeight(contentH).Render(m.page.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, nav, content, statusBar)
}

func (m Model) renderNavBar() string {
	authed := m.ports.Auth.IsAuthenticated()
	var parts []string
	for _, link := range navLinks {
		if link.gated && !authed {
			continue
		}
		label := link.key + " " + link.label
		if m.route.Name == link.name {
			parts = append(parts, theme.Hot.Render(" "+label+" "))
		} else {
			parts = append(parts, theme.Muted.Render(" "+label+" "))
		}
	}
	sep := theme.Muted.Render("│")
	bar := "writerly  " + strings.Join(parts, sep)
	if authed {
		bell := theme.Muted.Render("  N ✉")
		if m.unread > 0 {
			bell += " " + theme.Badge.Render(fmt.Sprint(m.unread))
		}
		user := m.username
		if user == "" {
			user = "signed in"
		}
		bar += bell + "  " + theme.Title.Render(user)
	} else {
		bar += "  " + theme.Muted.Render(":login to sign in")
	}
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.failed {
		left = theme.Error.Render(left)
	}
	right := theme.Muted.Render(m.route.Path + "  ?:help  :::palette  q:quit")
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── routing ──────────────────────────────────────────────────────────────────

func (m Model) open(path string) (tea.Model, tea.Cmd) {
	route := router.Resolve(path, m.ports.Auth.IsAuthenticated())
	if m.page != nil {
		m.page.Close()
	}
	m.route = route
	m.page = m.build(route)
	m.showHelp = false
	if route.From != "" {
		m.status = "log in to open " + route.From
		m.failed = false
	}
	var sizeCmd tea.Cmd
	if m.width > 0 {
		m.page, sizeCmd = m.page.Update(m.contentSize())
	}
	return m, tea.Batch(m.page.Init(), sizeCmd)
}

func (m Model) build(route router.Route) page {
	p := m.ports
	authed := p.Auth.IsAuthenticated()
	switch route.Name {
	case router.Login:
		return mount(authview.New(p.Auth, authview.ModeLogin, route.From))
	case router.Register:
		return mount(authview.New(p.Auth, authview.ModeRegister, ""))
	case router.Upload:
		return mount(uploadview.New(p.Works))
	case router.Work:
		return mount(workview.New(workPortBridge{works: p.Works, reading: p.Reading, engagement: p.Engagement}, route.Param, authed))
	case router.Analyze:
		return mount(pluginsview.New(p.Plugin, route.Param))
	case router.Bookmarks:
		return mount(bookmarksview.New(p.Engagement))
	case router.Notifications:
		return mount(notificationsview.New(p.Notifications))
	case router.Dashboard:
		return mount(dashboardview.New(p.Dashboard))
	case router.Profile:
		return mount(profileview.New(p.Profile, route.Param))
	case router.Discover:
		return mount(professionalview.New(p.Professional, professionalview.ModeDiscover))
	case router.Inbox:
		return mount(professionalview.New(p.Professional, professionalview.ModeInbox))
	case router.Submissions:
		return mount(professionalview.New(p.Professional, professionalview.ModeSubmissions))
	default:
		return mount(browseview.New(p.Browse))
	}
}

func (m Model) contentSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: m.width, Height: max(1, m.height-4)}
}

// ─── palette execution ────────────────────────────────────────────────────────

// pageActions are forwarded to the mounted page as ActionMsg.
var pageActions = map[string]bool{
	"refresh":  true,
	"complete": true,
	"comment":  true,
	"rate":     true,
	"bookmark": true,
	"analyze":  true,
	"search":   true,
	"genre":    true,
	"respond":  true,
}

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	input = strings.TrimSpace(input)
	if input == "" {
		return m, nil
	}
	name, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	switch name {
	case "go":
		if rest == "" {
			m.status = "usage: go <path>"
			return m, nil
		}
		return m.open(rest)
	case "login":
		return m.open("/login")
	case "register":
		return m.open("/register")
	case "logout":
		return m, m.logoutCmd()
	case "notifications", "dashboard", "upload", "bookmarks", "submissions":
		return m.open("/" + name)
	case "profile":
		if rest == "" {
			rest = "me"
		}
		return m.open(router.ProfilePath(rest))
	}

	if pageActions[name] {
		var cmd tea.Cmd
		m.page, cmd = m.page.Update(components.ActionMsg{Name: name, Raw: rest})
		return m, cmd
	}
	m.status = "unknown command: " + name
	m.failed = true
	return m, nil
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadUserCmd() tea.Cmd {
	auth := m.ports.Auth
	return func() tea.Msg {
		status, err := auth.Status(context.Background())
		return userLoadedMsg{status: status, err: err}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	auth := m.ports.Auth
	return func() tea.Msg {
		return loggedOutMsg{err: auth.Logout(context.Background())}
	}
}

func (m Model) fetchUnreadCmd() tea.Cmd {
	if !m.ports.Auth.IsAuthenticated() {
		return nil
	}
	notifications := m.ports.Notifications
	return func() tea.Msg {
		n, err := notifications.UnreadCount(context.Background())
		return components.UnreadCountMsg{Count: n, Err: err}
	}
}

func (m Model) scheduleUnread() tea.Cmd {
	return tea.Tick(m.pollInterval, func(time.Time) tea.Msg { return unreadTickMsg{} })
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// The work page talks to three modules; the bridge narrows them to the one
// interface the view declares.

type workPortBridge struct {
	works      worksPort
	reading    readingPort
	engagement engagementPort
}

func (b workPortBridge) Work(ctx context.Context, id string) (worksdto.WorkOutput, error) {
	return b.works.Get(ctx, id)
}
func (b workPortBridge) Validation(ctx context.Context, workID string) (readingdto.UnlockOutput, error) {
	return b.reading.Validation(ctx, workID)
}
func (b workPortBridge) Track(workID, sectionID string) (readingin.Tracker, error) {
	return b.reading.Track(workID, sectionID)
}
func (b workPortBridge) Comments(ctx context.Context, workID string) ([]engagementdto.CommentOutput, error) {
	return b.engagement.Comments(ctx, workID)
}
func (b workPortBridge) AddComment(ctx context.Context, workID, content string) ([]engagementdto.CommentOutput, error) {
	return b.engagement.AddComment(ctx, workID, content)
}
func (b workPortBridge) Rate(ctx context.Context, workID string, score int, review string) error {
	return b.engagement.Rate(ctx, workID, score, review)
}
func (b workPortBridge) IsBookmarked(ctx context.Context, workID string) (bool, error) {
	return b.engagement.IsBookmarked(ctx, workID)
}
func (b workPortBridge) AddBookmark(ctx context.Context, workID string) error {
	return b.engagement.AddBookmark(ctx, workID)
}
func (b workPortBridge) RemoveBookmark(ctx context.Context, workID string, current []engagementdto.BookmarkOutput) ([]engagementdto.BookmarkOutput, error) {
	return b.engagement.RemoveBookmark(ctx, workID, current)
}
