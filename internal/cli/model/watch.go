package model

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/sashes/internal/cli/styles"
)

// Frame is one rebuilt layout: its rendered tree and pane count.
type Frame struct {
	Tree  string
	Panes int
}

// RebuildFunc builds the watched layout from scratch.
type RebuildFunc func() (Frame, error)

// RebuildMsg asks the watch view to rebuild. Send it from outside the
// program when a watched file changes.
type RebuildMsg struct {
	Reason string
}

type frameMsg struct {
	frame  Frame
	err    error
	reason string
	at     time.Time
}

// WatchModel is the live layout view of 'sashes watch'. The last good
// frame stays on screen while the layout is broken.
type WatchModel struct {
	path    string
	rebuild RebuildFunc
	now     func() time.Time

	frame    Frame
	hasFrame bool
	err      error
	reason   string
	builtAt  time.Time
	builds   int

	help  help.Model
	keys  styles.WatchKeyMap
	theme *styles.Theme
}

// NewWatchModel creates the view for path.
func NewWatchModel(theme *styles.Theme, path string, rebuild RebuildFunc) WatchModel {
	return WatchModel{
		path:    path,
		rebuild: rebuild,
		now:     time.Now,
		help:    styles.NewStyledHelp(theme),
		keys:    styles.DefaultWatchKeyMap(),
		theme:   theme,
	}
}

// Init implements tea.Model.
func (m WatchModel) Init() tea.Cmd {
	return m.build("initial build")
}

func (m WatchModel) build(reason string) tea.Cmd {
	return func() tea.Msg {
		frame, err := m.rebuild()
		return frameMsg{frame: frame, err: err, reason: reason, at: m.now()}
	}
}

// Update implements tea.Model.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reload):
			return m, m.build("manual rebuild")
		}
		return m, nil
	case RebuildMsg:
		return m, m.build(msg.Reason)
	case frameMsg:
		m.builds++
		m.reason = msg.reason
		m.builtAt = msg.at
		m.err = msg.err
		if msg.err == nil {
			m.frame = msg.frame
			m.hasFrame = true
		}
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m WatchModel) View() string {
	t := m.theme

	header := lipgloss.JoinHorizontal(lipgloss.Left,
		t.BoxHeader.UnsetMarginBottom().Render(m.path),
		" ",
		t.Subtle.Render(fmt.Sprintf("%d panes", m.frame.Panes)),
	)

	status := t.Subtle.Render("building...")
	if m.builds > 0 {
		status = t.Subtle.Render(fmt.Sprintf("build #%d, %s at %s",
			m.builds, m.reason, m.builtAt.Format(time.TimeOnly)))
	}

	body := t.Subtle.Render("  no layout yet")
	if m.hasFrame {
		body = m.frame.Tree
	}

	parts := []string{header, status, "", body}
	if m.err != nil {
		parts = append(parts, "", t.ErrorStyle.Render("Error: "+m.err.Error()))
	}
	parts = append(parts, "", m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

var _ tea.Model = WatchModel{}
