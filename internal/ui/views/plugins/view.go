package plugins

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	plugindto "writerly/internal/modules/plugin/dto"
	"writerly/internal/ui/components"
	"writerly/internal/ui/router"
	"writerly/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the minimal interface this view needs from the plugin use-case.
type Port interface {
	List(ctx context.Context) ([]plugindto.PluginInfo, error)
	ListCommands(ctx context.Context, pluginName string) ([]plugindto.CommandInfo, error)
	Analyze(ctx context.Context, pluginName, commandID, workID string) (plugindto.AnalyzeOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type PluginsLoadedMsg struct {
	Plugins []plugindto.PluginInfo
	Err     error
}

// CommandsLoadedMsg is sent when plugin commands finish loading.
type CommandsLoadedMsg struct {
	PluginName string
	Commands   []plugindto.CommandInfo
	Err        error
}

// AnalyzedMsg is sent when an analyzer finishes.
type AnalyzedMsg struct {
	Out plugindto.AnalyzeOutput
	Err error
}

// ─── list items ──────────────────────────────────────────────────────────────

type pluginItem struct{ p plugindto.PluginInfo }

func (i pluginItem) Title() string { return i.p.Name }
func (i pluginItem) Description() string {
	state := "enabled"
	if !i.p.Enabled {
		state = "disabled"
	}
	return fmt.Sprintf("v%s · %s · %s", i.p.Version, state, strings.Join(i.p.Capabilities, ", "))
}
func (i pluginItem) FilterValue() string { return i.p.Name }

type commandItem struct{ cmd plugindto.CommandInfo }

func (i commandItem) Title() string       { return i.cmd.Title }
func (i commandItem) Description() string { return i.cmd.Description }
func (i commandItem) FilterValue() string { return i.cmd.ID + " " + i.cmd.Title }

// ─── pane ────────────────────────────────────────────────────────────────────

type pane int

const (
	panePlugins  pane = iota // user picks a plugin
	paneCommands             // user picks a command
	paneOutput               // result is displayed
)

// ─── model ───────────────────────────────────────────────────────────────────

// Model runs analyzer plugins against one work.
type Model struct {
	port       Port
	workID     string
	pane       pane
	pluginList list.Model
	cmdList    list.Model
	output     viewport.Model
	spinner    spinner.Model
	pluginName string
	lastOut    plugindto.AnalyzeOutput
	loading    bool
	err        error
	width      int
	height     int
}

func New(port Port, workID string) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	return Model{
		port:       port,
		workID:     workID,
		pane:       panePlugins,
		pluginList: components.NewList("Analyzers"),
		cmdList:    components.NewList("Commands"),
		output:     vp,
		spinner:    components.NewSpinner(),
		loading:    true,
	}
}

func (m Model) Init() tea.Cmd { return tea.Batch(m.loadPluginsCmd(), m.spinner.Tick) }

// Filtering reports whether a list's search filter is active.
func (m Model) Filtering() bool {
	return m.pluginList.FilterState() == list.Filtering || m.cmdList.FilterState() == list.Filtering
}

func (m Model) CapturesKeys() bool { return m.Filtering() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case PluginsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, components.Failed("plugins", msg.Err)
		}
		items := make([]list.Item, 0, len(msg.Plugins))
		for _, p := range msg.Plugins {
			items = append(items, pluginItem{p: p})
		}
		cmds = append(cmds, m.pluginList.SetItems(items))

	case CommandsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, components.Failed("plugin commands", msg.Err)
		}
		m.err = nil
		m.pluginName = msg.PluginName
		items := make([]list.Item, len(msg.Commands))
		for i, c := range msg.Commands {
			items[i] = commandItem{cmd: c}
		}
		cmds = append(cmds, m.cmdList.SetItems(items))
		m.pane = paneCommands

	case AnalyzedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, components.Failed("analyze", msg.Err)
		}
		m.err = nil
		m.lastOut = msg.Out
		m.output.SetContent(m.renderOutput())
		m.output.GotoTop()
		m.pane = paneOutput

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch m.pane {
		case panePlugins:
			switch msg.String() {
			case "enter":
				if item, ok := m.pluginList.SelectedItem().(pluginItem); ok {
					m.loading = true
					return m, tea.Batch(m.loadCommandsCmd(item.p.Name), m.spinner.Tick)
				}
				return m, nil
			case "esc":
				return m, router.Navigate(router.WorkPath(m.workID))
			}
		case paneCommands:
			switch msg.String() {
			case "enter":
				if item, ok := m.cmdList.SelectedItem().(commandItem); ok {
					m.loading = true
					return m, tea.Batch(m.analyzeCmd(m.pluginName, item.cmd.ID), m.spinner.Tick)
				}
				return m, nil
			case "esc":
				m.pane = panePlugins
				return m, nil
			}
		case paneOutput:
			if msg.String() == "esc" {
				m.pane = paneCommands
				return m, nil
			}
		}
	}

	switch m.pane {
	case panePlugins:
		var cmd tea.Cmd
		m.pluginList, cmd = m.pluginList.Update(msg)
		cmds = append(cmds, cmd)
	case paneCommands:
		var cmd tea.Cmd
		m.cmdList, cmd = m.cmdList.Update(msg)
		cmds = append(cmds, cmd)
	case paneOutput:
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return components.Loading(m.spinner, m.width, m.height, "Working…")
	}

	header := m.renderHeader()
	bodyH := max(1, m.height-lipgloss.Height(header))

	var body string
	switch m.pane {
	case panePlugins:
		if len(m.pluginList.Items()) == 0 {
			body = theme.Muted.Render("No analyzers configured. Add one to plugins/plugins.json in the state directory.")
		} else {
			body = m.pluginList.View()
		}
	case paneCommands:
		body = m.cmdList.View()
	case paneOutput:
		vp := m.output
		vp.Height = bodyH - 1
		body = lipgloss.JoinVertical(lipgloss.Left, theme.Muted.Render("esc: back to commands  ↑/↓: scroll"), vp.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	m.pluginList.SetSize(m.width, m.height-3)
	m.cmdList.SetSize(m.width, m.height-3)
	m.output.Width = m.width - 4
	m.output.Height = m.height - 4
}

func (m Model) renderHeader() string {
	name := m.pluginName
	if name == "" {
		name = "(choose one)"
	}
	return theme.Title.Render("Analyze") + "  " +
		theme.Muted.Render("plugin: "+name+"  esc: back") + "\n" + components.Banner(m.err)
}

func (m Model) renderOutput() string {
	out := m.lastOut
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(
		fmt.Sprintf("%s:%s on %q  exit=%d", out.PluginName, out.CommandID, out.WorkTitle, out.ExitCode),
	) + "\n\n")
	if out.Stdout != "" {
		sb.WriteString(out.Stdout + "\n")
	}
	if out.Stderr != "" {
		sb.WriteString(theme.Hot.Render("stderr:\n") + out.Stderr + "\n")
	}
	if out.OutputJSON != "" {
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, []byte(out.OutputJSON), "", "  "); err == nil {
			sb.WriteString(theme.Muted.Render("result:\n") + pretty.String() + "\n")
		} else {
			sb.WriteString(theme.Muted.Render("result:\n") + out.OutputJSON + "\n")
		}
	}
	return sb.String()
}

func (m Model) loadPluginsCmd() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		plugins, err := port.List(context.Background())
		return PluginsLoadedMsg{Plugins: plugins, Err: err}
	}
}

func (m Model) loadCommandsCmd(pluginName string) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		cmds, err := port.ListCommands(context.Background(), pluginName)
		return CommandsLoadedMsg{PluginName: pluginName, Commands: cmds, Err: err}
	}
}

func (m Model) analyzeCmd(pluginName, commandID string) tea.Cmd {
	port, workID := m.port, m.workID
	return func() tea.Msg {
		out, err := port.Analyze(context.Background(), pluginName, commandID, workID)
		return AnalyzedMsg{Out: out, Err: err}
	}
}
