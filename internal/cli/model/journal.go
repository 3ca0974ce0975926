// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/sashes/internal/cli/styles"
	"github.com/bnema/sashes/internal/domain/entity"
	"github.com/bnema/sashes/internal/domain/repository"
	"github.com/bnema/sashes/internal/logging"
)

// JournalModel is the interactive journal browser. The pane and type
// filters run in the repository; the search query narrows the loaded page.
type JournalModel struct {
	// UI components
	list    list.Model
	search  textinput.Model
	help    help.Model
	keys    styles.JournalKeyMap
	confirm *styles.ConfirmModel

	// State
	entries    []repository.JournalEntry
	filter     repository.JournalFilter
	query      string
	searchMode bool
	showHelp   bool
	status     string
	width      int
	height     int
	err        error

	// Dependencies
	ctx     context.Context
	journal repository.JournalRepository
	theme   *styles.Theme
}

// NewJournalModel creates a browser starting from filter.
func NewJournalModel(
	ctx context.Context,
	theme *styles.Theme,
	journal repository.JournalRepository,
	filter repository.JournalFilter,
) JournalModel {
	search := textinput.New()
	search.Placeholder = "pane, event type or title"
	search.Prompt = "/ "
	search.PromptStyle = theme.Highlight
	search.CharLimit = 128

	m := JournalModel{
		search:  search,
		help:    styles.NewStyledHelp(theme),
		keys:    styles.DefaultJournalKeyMap(),
		filter:  filter,
		ctx:     ctx,
		journal: journal,
		theme:   theme,
		width:   80,
		height:  24,
	}
	m.updateList()
	return m
}

type journalLoadedMsg struct {
	entries []repository.JournalEntry
	err     error
}

type journalClearedMsg struct {
	deleted int64
	err     error
}

// Init implements tea.Model.
func (m JournalModel) Init() tea.Cmd {
	return m.loadEntries
}

func (m JournalModel) loadEntries() tea.Msg {
	log := logging.FromContext(m.ctx)
	entries, err := m.journal.List(m.ctx, m.filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to load journal")
		return journalLoadedMsg{err: err}
	}
	log.Debug().
		Int("count", len(entries)).
		Str("pane_id", m.filter.PaneID).
		Str("event_type", string(m.filter.Type)).
		Msg("loaded journal entries")
	return journalLoadedMsg{entries: entries}
}

func (m JournalModel) clearJournal() tea.Msg {
	deleted, err := m.journal.Clear(m.ctx)
	if err != nil {
		logging.FromContext(m.ctx).Error().Err(err).Msg("failed to clear journal")
	}
	return journalClearedMsg{deleted: deleted, err: err}
}

// Update implements tea.Model.
func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.confirm != nil {
		return m.handleConfirm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateList()
		return m, nil
	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKey(msg)
		}
		return m.handleNormalKey(msg)
	case journalLoadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.entries = msg.entries
		}
		m.updateList()
		return m, nil
	case journalClearedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = fmt.Sprintf("deleted %d events", msg.deleted)
		return m, m.loadEntries
	}
	return m, nil
}

func (m JournalModel) handleConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	confirm, cmd := m.confirm.Update(msg)
	m.confirm = &confirm
	if !m.confirm.Done() {
		return m, cmd
	}
	yes := m.confirm.Result()
	m.confirm = nil
	if yes {
		return m, m.clearJournal
	}
	return m, nil
}

func (m JournalModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchMode = false
		m.search.Blur()
		return m, nil
	case "enter":
		m.searchMode = false
		m.search.Blur()
		m.query = strings.TrimSpace(m.search.Value())
		m.updateList()
		return m, nil
	default:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
}

func (m JournalModel) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.search.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.CycleType):
		m.filter.Type = nextEventType(m.filter.Type)
		return m, m.loadEntries
	case key.Matches(msg, m.keys.PaneFilter):
		if item, ok := m.list.SelectedItem().(styles.JournalItem); ok {
			m.filter.PaneID = item.Event.Pane.ID
			return m, m.loadEntries
		}
		return m, nil
	case key.Matches(msg, m.keys.Reset):
		m.filter.PaneID, m.filter.Type = "", ""
		m.query = ""
		m.search.SetValue("")
		return m, m.loadEntries
	case key.Matches(msg, m.keys.Reload):
		m.status = ""
		return m, m.loadEntries
	case key.Matches(msg, m.keys.Clear):
		confirm := styles.NewConfirm(m.theme, "Delete every recorded event?")
		m.confirm = &confirm
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// nextEventType cycles through no filter and then each event type.
func nextEventType(current entity.EventType) entity.EventType {
	types := entity.EventTypes()
	if current == "" {
		return types[0]
	}
	for i, t := range types {
		if t == current && i+1 < len(types) {
			return types[i+1]
		}
	}
	return ""
}

// visible returns the loaded entries that match the search query.
func (m JournalModel) visible() []styles.JournalItem {
	query := strings.ToLower(m.query)
	items := make([]styles.JournalItem, 0, len(m.entries))
	for _, entry := range m.entries {
		item := styles.NewJournalItem(entry)
		if query != "" && !strings.Contains(strings.ToLower(item.FilterValue()), query) {
			continue
		}
		items = append(items, item)
	}
	return items
}

func (m *JournalModel) updateList() {
	listHeight := m.height - 8 // header, search, status, help
	if listHeight < 4 {
		listHeight = 4
	}
	m.list = styles.NewJournalList(m.theme, m.visible(), m.width, listHeight)
}

// View implements tea.Model.
func (m JournalModel) View() string {
	if m.confirm != nil {
		return m.confirm.View()
	}
	t := m.theme

	header := lipgloss.JoinHorizontal(lipgloss.Left,
		t.BoxHeader.UnsetMarginBottom().Render("Journal"),
		" ",
		t.Subtle.Render(fmt.Sprintf("%d/%d events", len(m.list.Items()), len(m.entries))),
	)
	if badges := m.filterBadges(); badges != "" {
		header += "  " + badges
	}

	var searchBar string
	switch {
	case m.searchMode:
		searchBar = t.InputFocused.Render(m.search.View())
	case m.query != "":
		searchBar = t.Subtle.Render("Search: ") + t.Badge.Render(m.query) + t.Subtle.Render(" (esc to reset)")
	default:
		searchBar = t.Subtle.Render("Press / to search, t to cycle event types, p to pin the selected pane")
	}

	body := m.list.View()
	switch {
	case m.err != nil:
		body = t.ErrorStyle.Render("Error: " + m.err.Error())
	case len(m.list.Items()) == 0:
		body = t.Subtle.Render("  no events recorded")
	}

	status := ""
	if m.status != "" {
		status = t.SuccessStyle.Render(m.status)
	}

	helpView := t.Subtle.Render("? for help • q to quit")
	if m.showHelp {
		helpView = m.help.View(m.keys)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		searchBar,
		"",
		body,
		status,
		helpView,
	)
}

func (m JournalModel) filterBadges() string {
	var badges []string
	if m.filter.Type != "" {
		badges = append(badges, m.theme.Badge.Render(string(m.filter.Type)))
	}
	if m.filter.PaneID != "" {
		badges = append(badges, m.theme.Badge.Render("pane "+m.filter.PaneID))
	}
	return strings.Join(badges, " ")
}

// Ensure interface compliance at compile time.
var _ tea.Model = JournalModel{}
