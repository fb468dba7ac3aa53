package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authdto "writerly/internal/modules/auth/dto"
	"writerly/internal/ui/components"
	"writerly/internal/ui/router"
	"writerly/internal/ui/theme"
)

type Port interface {
	Login(ctx context.Context, email, password string) (authdto.UserOutput, error)
	Register(ctx context.Context, username, email, password string) (authdto.UserOutput, error)
}

type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

type LoggedInMsg struct {
	User authdto.UserOutput
	Err  error
}

type RegisteredMsg struct {
	User authdto.UserOutput
	Err  error
}

type Model struct {
	port       Port
	mode       Mode
	inputs     []textinput.Model
	focus      int
	submitting bool
	err        error
	hint       string
	width      int
	height     int
}

// New builds the form. from is the gated path that sent the user here, if any.
func New(port Port, mode Mode, from string) Model {
	labels := []string{"email", "password"}
	if mode == ModeRegister {
		labels = []string{"username", "email", "password"}
	}
	inputs := make([]textinput.Model, len(labels))
	for i, label := range labels {
		ti := textinput.New()
		ti.Placeholder = label
		ti.CharLimit = 128
		ti.Prompt = lipgloss.NewStyle().Width(10).Render(label) + " "
		if label == "password" {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		inputs[i] = ti
	}
	inputs[0].Focus()
	m := Model{port: port, mode: mode, inputs: inputs}
	if from != "" {
		m.hint = "log in to open " + from
	}
	return m
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case LoggedInMsg:
		m.submitting = false
		if msg.Err != nil {
			m.err = msg.Err
			m.inputs[len(m.inputs)-1].SetValue("")
			return m, components.Failed("login", msg.Err)
		}
		return m, tea.Batch(components.Notice("signed in as "+msg.User.Username), router.Navigate("/"))

	case RegisteredMsg:
		m.submitting = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, components.Failed("register", msg.Err)
		}
		return m, tea.Batch(components.Notice("account created for "+msg.User.Username+"; log in to continue"), router.Navigate("/login"))

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.setFocus(m.focus + 1)
			return m, nil
		case "shift+tab", "up":
			m.setFocus(m.focus - 1)
			return m, nil
		case "ctrl+n":
			if m.mode == ModeLogin {
				return m, router.Navigate("/register")
			}
			return m, router.Navigate("/login")
		case "enter":
			if m.focus < len(m.inputs)-1 {
				m.setFocus(m.focus + 1)
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
	title := "Log in"
	if m.mode == ModeRegister {
		title = "Create an account"
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(title) + "\n\n")
	if m.hint != "" {
		sb.WriteString(theme.Muted.Render(m.hint) + "\n\n")
	}
	for _, in := range m.inputs {
		sb.WriteString(in.View() + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(components.Banner(m.err))
	if m.submitting {
		sb.WriteString(theme.Muted.Render("submitting…") + "\n")
	}
	switch m.mode {
	case ModeLogin:
		sb.WriteString(theme.Muted.Render("enter: submit  tab: next field  ctrl+n: register"))
	case ModeRegister:
		sb.WriteString(theme.Muted.Render("enter: submit  tab: next field  ctrl+n: log in"))
	}
	box := theme.PaneActive.Width(min(m.width-4, 64)).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// CapturesKeys keeps global single-letter bindings away from the form.
func (m Model) CapturesKeys() bool { return true }

func (m *Model) setFocus(i int) {
	n := len(m.inputs)
	m.inputs[m.focus].Blur()
	m.focus = (i%n + n) % n
	m.inputs[m.focus].Focus()
}

func (m Model) values() map[string]string {
	out := make(map[string]string, len(m.inputs))
	for _, in := range m.inputs {
		out[in.Placeholder] = in.Value()
	}
	return out
}

func (m Model) submit() (Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	v := m.values()
	email := strings.TrimSpace(v["email"])
	password := v["password"]
	username := strings.TrimSpace(v["username"])
	if email == "" || password == "" || (m.mode == ModeRegister && username == "") {
		m.err = errors.New("all fields are required")
		return m, nil
	}
	m.err = nil
	m.submitting = true
	port := m.port
	if m.mode == ModeRegister {
		return m, func() tea.Msg {
			user, err := port.Register(context.Background(), username, email, password)
			return RegisteredMsg{User: user, Err: err}
		}
	}
	return m, func() tea.Msg {
		user, err := port.Login(context.Background(), email, password)
		return LoggedInMsg{User: user, Err: err}
	}
}
