package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/goliatone/go-options-menu/pkg/edge"
	"github.com/goliatone/go-options-menu/pkg/menu"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250")).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("240")).Bold(true)
	lineStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// buttons are the four logical inputs, latched by key presses.
type buttons struct {
	up, down, increase, decrease edge.Latch
}

func (b *buttons) pad() *edge.Pad {
	return edge.NewPad(edge.PadSource{
		SelectUp:   b.up.Value,
		SelectDown: b.down.Value,
		Increase:   b.increase.Value,
		Decrease:   b.decrease.Value,
	})
}

func (b *buttons) forKey(key string) *edge.Latch {
	switch key {
	case "up", "k":
		return &b.up
	case "down", "j":
		return &b.down
	case "right", "l", "]", "+":
		return &b.increase
	case "left", "h", "[", "-":
		return &b.decrease
	}
	return nil
}

// editModel is the bubbletea model for the edit command. A key press is
// replayed as a press tick followed by a release tick so the session sees a
// single edge per key.
type editModel struct {
	ctx     context.Context
	ws      *workspace
	buttons *buttons
	session *menu.Session
	frame   []string
	status  string
	err     error
}

func newEditModel(ctx context.Context, ws *workspace) *editModel {
	m := &editModel{ctx: ctx, ws: ws, buttons: &buttons{}}
	m.session = menu.NewSession(m.buttons.pad(), ws.controller, menu.RendererFunc(func(lines []string) error {
		m.frame = lines
		return nil
	}))
	m.session.Setup()
	m.err = m.session.Start()
	return m
}

func (m *editModel) Init() tea.Cmd {
	return nil
}

func (m *editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "s":
		m.status, m.err = "", nil
		if err := m.ws.store.Save(m.ctx); err != nil {
			m.err = err
		} else {
			m.status = "saved " + m.ws.store.Location()
		}
		return m, nil
	case "r":
		m.status, m.err = "", nil
		if err := m.ws.store.Reload(m.ctx); err != nil {
			m.err = err
		} else {
			m.status = "reloaded " + m.ws.store.Location()
		}
		m.frame = m.ws.controller.Render()
		return m, nil
	}
	if latch := m.buttons.forKey(key.String()); latch != nil {
		m.press(latch)
	}
	return m, nil
}

func (m *editModel) press(latch *edge.Latch) {
	m.status, m.err = "", nil
	latch.Set(true)
	if _, err := m.session.Loop(m.ctx); err != nil {
		m.err = err
	}
	latch.Set(false)
	if _, err := m.session.Loop(m.ctx); err != nil && m.err == nil {
		m.err = err
	}
}

func (m *editModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s options  %s", m.ws.settings.Domain, m.ws.store.Location())))
	b.WriteString("\n\n")
	for _, line := range m.frame {
		if strings.HasPrefix(line, ">") {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(lineStyle.Render(line))
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
	case m.status != "":
		b.WriteString(helpStyle.Render(m.status))
	}
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render("up/down select  left/right change  s save  r reload  q quit"))
	b.WriteByte('\n')
	return b.String()
}
