package upload

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	worksdto "writerly/internal/modules/works/dto"
	"writerly/internal/ui/components"
	"writerly/internal/ui/router"
	"writerly/internal/ui/theme"
)

type Port interface {
	Upload(ctx context.Context, input worksdto.UploadInput) (worksdto.WorkOutput, error)
}

type UploadedMsg struct {
	Work worksdto.WorkOutput
	Err  error
}

const (
	fieldPath = iota
	fieldTitle
	fieldGenre
	fieldSummary
	fieldRating
)

type Model struct {
	port       Port
	inputs     []textinput.Model
	focus      int
	submitting bool
	err        error
	width      int
	height     int
}

func New(port Port) Model {
	labels := []string{"file", "title", "genre", "summary", "rating"}
	placeholders := []string{"path to .md, .txt or .pdf", "from the file when empty", "from the file when empty", "from the file when empty", "general"}
	inputs := make([]textinput.Model, len(labels))
	for i := range labels {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Prompt = lipgloss.NewStyle().Width(9).Render(labels[i]) + " "
		ti.CharLimit = 512
		inputs[i] = ti
	}
	inputs[fieldPath].Focus()
	return Model{port: port, inputs: inputs}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case UploadedMsg:
		m.submitting = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, components.Failed("upload", msg.Err)
		}
		return m, tea.Batch(components.Notice("published "+msg.Work.Title), router.Navigate(router.WorkPath(msg.Work.ID)))

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.move(1)
			return m, nil
		case "shift+tab", "up":
			m.move(-1)
			return m, nil
		case "esc":
			return m, router.Navigate("/")
		case "ctrl+s", "enter":
			if msg.String() == "enter" && m.focus < len(m.inputs)-1 {
				m.move(1)
				return m, nil
			}
			return m.submit()
		}
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Upload a work") + "\n\n")
	for _, in := range m.inputs {
		sb.WriteString(in.View() + "\n")
	}
	sb.WriteString("\n" + components.Banner(m.err))
	if m.submitting {
		sb.WriteString(theme.Muted.Render("uploading…") + "\n")
	}
	sb.WriteString(theme.Muted.Render("Markdown frontmatter fills title, genre and summary.\nenter: next/submit  ctrl+s: submit  esc: cancel"))
	box := theme.PaneActive.Width(min(m.width-4, 80)).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) CapturesKeys() bool { return true }

func (m *Model) move(delta int) {
	n := len(m.inputs)
	m.inputs[m.focus].Blur()
	m.focus = ((m.focus+delta)%n + n) % n
	m.inputs[m.focus].Focus()
}

func (m Model) submit() (Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	input := worksdto.UploadInput{
		Path:          strings.TrimSpace(m.inputs[fieldPath].Value()),
		Title:         strings.TrimSpace(m.inputs[fieldTitle].Value()),
		Genre:         strings.TrimSpace(m.inputs[fieldGenre].Value()),
		Summary:       strings.TrimSpace(m.inputs[fieldSummary].Value()),
		ContentRating: strings.TrimSpace(m.inputs[fieldRating].Value()),
	}
	if input.Path == "" {
		m.err = errors.New("choose a file to upload")
		return m, nil
	}
	m.err = nil
	m.submitting = true
	port := m.port
	return m, func() tea.Msg {
		work, err := port.Upload(context.Background(), input)
		return UploadedMsg{Work: work, Err: err}
	}
}
