package app

import tea "github.com/charmbracelet/bubbletea"

// page is what the router mounts. Views keep their concrete Update
// signatures; pageOf adapts them.
type page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (page, tea.Cmd)
	View() string
	CapturesKeys() bool
	Close()
}

type viewModel[M any] interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (M, tea.Cmd)
	View() string
}

type pageOf[M viewModel[M]] struct{ m M }

func mount[M viewModel[M]](m M) page { return pageOf[M]{m: m} }

func (p pageOf[M]) Init() tea.Cmd { return p.m.Init() }

func (p pageOf[M]) Update(msg tea.Msg) (page, tea.Cmd) {
	m, cmd := p.m.Update(msg)
	return pageOf[M]{m: m}, cmd
}

func (p pageOf[M]) View() string { return p.m.View() }

func (p pageOf[M]) CapturesKeys() bool {
	if c, ok := any(p.m).(interface{ CapturesKeys() bool }); ok {
		return c.CapturesKeys()
	}
	return false
}

func (p pageOf[M]) Close() {
	if c, ok := any(p.m).(interface{ Close() }); ok {
		c.Close()
	}
}
