package work

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	engagementdto "writerly/internal/modules/engagement/dto"
	readingdto "writerly/internal/modules/reading/dto"
	readingin "writerly/internal/modules/reading/port/in"
	worksdto "writerly/internal/modules/works/dto"
	"writerly/internal/ui/components"
	"writerly/internal/ui/router"
	"writerly/internal/ui/theme"
)

type Port interface {
	Work(ctx context.Context, id string) (worksdto.WorkOutput, error)
	Validation(ctx context.Context, workID string) (readingdto.UnlockOutput, error)
	Track(workID, sectionID string) (readingin.Tracker, error)
	Comments(ctx context.Context, workID string) ([]engagementdto.CommentOutput, error)
	AddComment(ctx context.Context, workID, content string) ([]engagementdto.CommentOutput, error)
	Rate(ctx context.Context, workID string, score int, review string) error
	IsBookmarked(ctx context.Context, workID string) (bool, error)
	AddBookmark(ctx context.Context, workID string) error
	RemoveBookmark(ctx context.Context, workID string, current []engagementdto.BookmarkOutput) ([]engagementdto.BookmarkOutput, error)
}

const (
	lockedCommentHint = "read the work to unlock comments"
	lockedRateHint    = "read the work to unlock ratings"
	shownComments     = 5
)

// Every message carries the instance that asked for it, so a reply that
// lands after navigating to another work is dropped.

type LoadedMsg struct {
	instance   int64
	Work       worksdto.WorkOutput
	Comments   []engagementdto.CommentOutput
	Unlocks    readingdto.UnlockOutput
	Bookmarked bool
	Err        error
	// PartialErr joins failures of the comments, validation and bookmark
	// fetches. The work still renders.
	PartialErr error
}

type TrackerStartedMsg struct{ instance int64 }

type CompletedMsg struct {
	instance int64
	Unlocks  readingdto.UnlockOutput
	Err      error
}

type CommentsMsg struct {
	instance int64
	Comments []engagementdto.CommentOutput
	Err      error
}

type RatedMsg struct {
	instance int64
	Score    int
	Err      error
}

type BookmarkMsg struct {
	instance   int64
	Bookmarked bool
	Err        error
}

type metricsTickMsg struct{ instance int64 }

var instances atomic.Int64

type Model struct {
	port     Port
	instance int64
	workID   string
	authed   bool

	tracker    readingin.Tracker
	work       worksdto.WorkOutput
	comments   []engagementdto.CommentOutput
	unlocks    readingdto.UnlockOutput
	bookmarked bool

	viewport viewport.Model
	composer textarea.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	loading  bool
	busy     bool
	notice   string
	err      error
	width    int
	height   int
}

// New mounts the view for one work. Reading progress is only tracked for a
// logged-in reader, since the progress endpoints need a session.
func New(port Port, workID string, authenticated bool) Model {
	ta := textarea.New()
	ta.Placeholder = "write a comment…"
	ta.CharLimit = 2000
	ta.ShowLineNumbers = false
	ta.SetHeight(3)

	m := Model{
		port:     port,
		instance: instances.Add(1),
		workID:   workID,
		authed:   authenticated,
		viewport: viewport.New(0, 0),
		composer: ta,
		spinner:  components.NewSpinner(),
		loading:  true,
	}
	if authenticated {
		if tracker, err := port.Track(workID, ""); err == nil {
			m.tracker = tracker
		} else {
			m.err = err
		}
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadCmd(), m.spinner.Tick}
	if m.tracker != nil {
		tracker, instance := m.tracker, m.instance
		cmds = append(cmds, func() tea.Msg {
			tracker.Start(context.Background())
			return TrackerStartedMsg{instance: instance}
		})
	}
	return tea.Batch(cmds...)
}

// Close stops the reading tracker when the view is unmounted.
func (m Model) Close() {
	if m.tracker != nil {
		m.tracker.Stop()
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case LoadedMsg:
		if msg.instance != m.instance {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, components.Failed("load work", msg.Err)
		}
		m.work = msg.Work
		m.comments = msg.Comments
		m.unlocks = msg.Unlocks
		m.bookmarked = msg.Bookmarked
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
		return m, components.Degraded("load work", msg.PartialErr)

	case TrackerStartedMsg:
		if msg.instance != m.instance {
			return m, nil
		}
		return m, m.tickCmd()

	case metricsTickMsg:
		if msg.instance != m.instance || m.tracker == nil || !m.tracker.Metrics().Tracking {
			return m, nil
		}
		return m, m.tickCmd()

	case CompletedMsg:
		if msg.instance != m.instance {
			return m, nil
		}
		m.busy = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, components.Failed("complete reading", msg.Err)
		}
		m.unlocks = msg.Unlocks
		m.notice = "reading completed"
		if msg.Unlocks.Message != "" {
			m.notice += ": " + msg.Unlocks.Message
		}
		return m, nil

	case CommentsMsg:
		if msg.instance != m.instance {
			return m, nil
		}
		m.busy = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, components.Failed("comment", msg.Err)
		}
		m.comments = msg.Comments
		m.composer.Reset()
		m.composer.Blur()
		m.notice = "comment posted"
		return m, nil

	case RatedMsg:
		if msg.instance != m.instance {
			return m, nil
		}
		m.busy = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, components.Failed("rate", msg.Err)
		}
		m.notice = fmt.Sprintf("rated %d/5", msg.Score)
		return m, m.loadCmd()

	case BookmarkMsg:
		if msg.instance != m.instance {
			return m, nil
		}
		m.busy = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, components.Failed("bookmark", msg.Err)
		}
		m.bookmarked = msg.Bookmarked
		if m.bookmarked {
			m.notice = "bookmarked"
		} else {
			m.notice = "bookmark removed"
		}
		return m, nil

	case components.ActionMsg:
		switch msg.Name {
		case "refresh":
			m.loading = true
			return m, tea.Batch(m.loadCmd(), m.spinner.Tick)
		case "complete":
			return m.complete()
		case "comment":
			return m.submitComment(msg.Raw)
		case "rate":
			fields := strings.Fields(msg.Raw)
			if len(fields) == 0 {
				m.err = errors.New("usage: rate <1-5> [review]")
				return m, nil
			}
			score, err := strconv.Atoi(fields[0])
			if err != nil {
				m.err = errors.New("score must be a number from 1 to 5")
				return m, nil
			}
			return m.rate(score, strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(msg.Raw), fields[0])))
		case "bookmark":
			return m.toggleBookmark()
		case "analyze":
			return m, router.Navigate(router.WorkPath(m.workID) + "/analyze")
		}
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if m.composer.Focused() {
			switch msg.String() {
			case "esc":
				m.composer.Blur()
				return m, nil
			case "ctrl+s":
				return m.submitComment(m.composer.Value())
			}
			var cmd tea.Cmd
			m.composer, cmd = m.composer.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "c":
			return m.complete()
		case "n":
			if !m.authed {
				return m, router.Navigate("/login")
			}
			if !m.unlocks.CanComment {
				m.notice = lockedCommentHint
				return m, nil
			}
			cmd := m.composer.Focus()
			return m, cmd
		case "b":
			return m.toggleBookmark()
		case "a":
			return m, router.Navigate(router.WorkPath(m.workID) + "/analyze")
		case "1", "2", "3", "4", "5":
			score, _ := strconv.Atoi(msg.String())
			return m.rate(score, "")
		case "esc":
			return m, router.Navigate("/")
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	if m.tracker != nil && !m.loading {
		m.tracker.ReportScroll(m.viewport.ScrollPercent() * 100)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading && m.work.ID == "" {
		return components.Loading(m.spinner, m.width, m.height, "Loading work…")
	}
	header := m.renderHeader()
	footer := m.renderFooter()
	vp := m.viewport
	vp.Height = max(1, m.height-lipgloss.Height(header)-lipgloss.Height(footer))
	return lipgloss.JoinVertical(lipgloss.Left, header, vp.View(), footer)
}

func (m Model) CapturesKeys() bool { return m.composer.Focused() }

func (m Model) complete() (Model, tea.Cmd) {
	if m.tracker == nil {
		if !m.authed {
			return m, router.Navigate("/login")
		}
		return m, nil
	}
	if m.busy {
		return m, nil
	}
	m.busy = true
	tracker, instance := m.tracker, m.instance
	return m, func() tea.Msg {
		unlocks, err := tracker.Complete(context.Background())
		return CompletedMsg{instance: instance, Unlocks: unlocks, Err: err}
	}
}

func (m Model) submitComment(text string) (Model, tea.Cmd) {
	if !m.authed {
		return m, router.Navigate("/login")
	}
	if !m.unlocks.CanComment {
		m.notice = lockedCommentHint
		return m, nil
	}
	if strings.TrimSpace(text) == "" {
		m.err = errors.New("comment cannot be empty")
		return m, nil
	}
	if m.busy {
		return m, nil
	}
	m.busy = true
	m.err = nil
	port, workID, instance := m.port, m.workID, m.instance
	return m, func() tea.Msg {
		comments, err := port.AddComment(context.Background(), workID, text)
		return CommentsMsg{instance: instance, Comments: comments, Err: err}
	}
}

func (m Model) rate(score int, review string) (Model, tea.Cmd) {
	if !m.authed {
		return m, router.Navigate("/login")
	}
	if !m.unlocks.CanRate {
		m.notice = lockedRateHint
		return m, nil
	}
	if score < 1 || score > 5 {
		m.err = errors.New("score must be between 1 and 5")
		return m, nil
	}
	if m.busy {
		return m, nil
	}
	m.busy = true
	m.err = nil
	port, workID, instance := m.port, m.workID, m.instance
	return m, func() tea.Msg {
		err := port.Rate(context.Background(), workID, score, review)
		return RatedMsg{instance: instance, Score: score, Err: err}
	}
}

func (m Model) toggleBookmark() (Model, tea.Cmd) {
	if !m.authed {
		return m, router.Navigate("/login")
	}
	if m.busy {
		return m, nil
	}
	m.busy = true
	port, workID, instance, was := m.port, m.workID, m.instance, m.bookmarked
	return m, func() tea.Msg {
		if was {
			_, err := port.RemoveBookmark(context.Background(), workID, nil)
			return BookmarkMsg{instance: instance, Bookmarked: err != nil, Err: err}
		}
		err := port.AddBookmark(context.Background(), workID)
		return BookmarkMsg{instance: instance, Bookmarked: err == nil, Err: err}
	}
}

func (m *Model) resize() {
	m.viewport.Width = m.width
	m.viewport.Height = max(1, m.height-8)
	m.composer.SetWidth(max(20, m.width-4))
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(max(20, m.width-4)),
	); err == nil {
		m.renderer = r
	}
	if m.work.ID != "" {
		m.viewport.SetContent(m.renderContent())
	}
}

func (m Model) renderContent() string {
	if strings.TrimSpace(m.work.Content) == "" {
		return theme.Muted.Render("(no content)")
	}
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(m.work.Content); err == nil {
			return rendered
		}
	}
	return m.work.Content
}

func (m Model) renderHeader() string {
	w := m.work
	var sb strings.Builder
	title := theme.Title.Render(w.Title)
	if m.bookmarked {
		title += " " + theme.Hot.Render("◆")
	}
	sb.WriteString(title + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("by %s · %s · %d words · %d views · ", w.AuthorUsername, w.Genre, w.WordCount, w.ViewsCount)))
	sb.WriteString(theme.Stars(w.RatingAverage) + theme.Muted.Render(fmt.Sprintf(" (%d)", w.RatingCount)) + "\n")
	if w.Summary != "" {
		sb.WriteString(theme.Muted.Render(w.Summary) + "\n")
	}
	sb.WriteString(components.Banner(m.err))
	return sb.String()
}

func (m Model) renderFooter() string {
	var sb strings.Builder
	sb.WriteString(m.renderComments())
	if m.composer.Focused() {
		sb.WriteString(m.composer.View() + "\n" + theme.Muted.Render("ctrl+s: post  esc: cancel") + "\n")
	}
	if m.notice != "" {
		sb.WriteString(theme.Good.Render(m.notice) + "\n")
	}
	sb.WriteString(m.renderProgress())
	return sb.String()
}

func (m Model) renderComments() string {
	if len(m.comments) == 0 {
		return theme.Muted.Render("no comments yet") + "\n"
	}
	start := max(0, len(m.comments)-shownComments)
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("Comments (%d)", len(m.comments))) + "\n")
	for _, c := range m.comments[start:] {
		sb.WriteString(theme.Hot.Render(c.Username) + " " + theme.Muted.Render(c.CreatedAt.Local().Format("Jan 2 15:04")) + "  " + c.Content + "\n")
	}
	return sb.String()
}

func (m Model) renderProgress() string {
	parts := []string{fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100)}
	if m.tracker != nil {
		metrics := m.tracker.Metrics()
		parts = append(parts, fmt.Sprintf("%s %s read %.0f%%", metrics.State, (time.Duration(metrics.TimeOnPage)*time.Second).String(), metrics.ScrollDepth))
	}
	if m.authed {
		parts = append(parts, unlockLabel("comment", m.unlocks.CanComment), unlockLabel("rate", m.unlocks.CanRate))
	} else {
		parts = append(parts, "log in to comment and rate")
	}
	parts = append(parts, "c: complete  n: comment  1-5: rate  b: bookmark  a: analyze")
	return theme.Muted.Render(strings.Join(parts, "  "))
}

func unlockLabel(action string, open bool) string {
	if open {
		return theme.Good.Render(action + " ✓")
	}
	return action + " locked"
}

func (m Model) tickCmd() tea.Cmd {
	instance := m.instance
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return metricsTickMsg{instance: instance} })
}

// loadCmd fetches the work and its comments, plus the unlock flags and the
// bookmark state when logged in, in parallel.
func (m Model) loadCmd() tea.Cmd {
	port, workID, authed, instance := m.port, m.workID, m.authed, m.instance
	return func() tea.Msg {
		out := LoadedMsg{instance: instance}
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			w, err := port.Work(ctx, workID)
			out.Work = w
			return err
		})
		// Only the work itself is fatal. The side fetches keep their zero
		// value on failure and are reported separately.
		var commentsErr, unlocksErr, bookmarkErr error
		g.Go(func() error {
			out.Comments, commentsErr = port.Comments(ctx, workID)
			return nil
		})
		if authed {
			g.Go(func() error {
				out.Unlocks, unlocksErr = port.Validation(ctx, workID)
				return nil
			})
			g.Go(func() error {
				out.Bookmarked, bookmarkErr = port.IsBookmarked(ctx, workID)
				return nil
			})
		}
		out.Err = g.Wait()
		if commentsErr != nil {
			out.Comments = nil
		}
		if unlocksErr != nil {
			out.Unlocks = readingdto.UnlockOutput{}
		}
		if bookmarkErr != nil {
			out.Bookmarked = false
		}
		out.PartialErr = errors.Join(
			wrapSide("comments", commentsErr),
			wrapSide("validation", unlocksErr),
			wrapSide("bookmark check", bookmarkErr),
		)
		return out
	}
}

func wrapSide(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
