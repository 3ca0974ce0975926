package styles

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/sashes/internal/domain/entity"
	"github.com/bnema/sashes/internal/domain/repository"
)

const (
	cursorSelected = " > "
	cursorEmpty    = "   "
)

// JournalItem is one journal entry in a list.
type JournalItem struct {
	repository.JournalEntry
	// At is the parsed event timestamp, zero when unparsable.
	At time.Time
}

// NewJournalItem wraps an entry for display.
func NewJournalItem(entry repository.JournalEntry) JournalItem {
	at, _ := time.Parse(entity.TimestampLayout, entry.Event.Timestamp)
	return JournalItem{JournalEntry: entry, At: at}
}

// FilterValue implements list.Item.
func (i JournalItem) FilterValue() string {
	return strings.Join([]string{i.Event.Pane.ID, string(i.Event.Type), i.Event.Pane.Title}, " ")
}

// JournalDelegate renders journal items on two lines: the event type and
// pane, then the geometry and age.
type JournalDelegate struct {
	Theme *Theme
	Now   func() time.Time
}

// Height returns the height of each item.
func (d JournalDelegate) Height() int { return 2 }

// Spacing returns the spacing between items.
func (d JournalDelegate) Spacing() int { return 0 }

// Update handles item-level events.
func (d JournalDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render renders a single list item.
func (d JournalDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ji, ok := item.(JournalItem)
	if !ok {
		return
	}

	t := d.Theme
	event := ji.Event
	selected := index == m.Index()

	cursor := cursorEmpty
	titleStyle := t.ListItemTitle
	descStyle := t.ListItemDesc
	if selected {
		cursor = cursorSelected
		titleStyle = titleStyle.Foreground(t.Accent).Bold(true)
		descStyle = descStyle.Foreground(t.Text)
	}

	title := fmt.Sprintf("%s %s", event.Pane.ID, event.Type)
	if event.Pane.Title != "" {
		title += " " + fmt.Sprintf("%q", event.Pane.Title)
	}

	line1 := lipgloss.JoinHorizontal(
		lipgloss.Left,
		t.Highlight.Render(cursor),
		titleStyle.Render(title),
	)

	age := ""
	if !ji.At.IsZero() && d.Now != nil {
		age = RelativeTime(ji.At, d.Now())
	}
	geometry := fmt.Sprintf("#%d  %dx%d+%d+%d",
		ji.Seq,
		event.Pane.Size.Width, event.Pane.Size.Height,
		event.Pane.Position.X, event.Pane.Position.Y)

	line2 := lipgloss.JoinHorizontal(
		lipgloss.Left,
		strings.Repeat(" ", len(cursorEmpty)),
		descStyle.Render(geometry),
		" ",
		t.StateBadge(event.Pane.State),
		" ",
		t.BadgeMuted.Render(age),
	)

	_, _ = fmt.Fprintf(w, "%s\n%s", line1, line2)
}

// NewJournalList creates a themed list of journal items. The list's own
// filter is disabled; callers filter the items they pass in.
func NewJournalList(theme *Theme, items []JournalItem, width, height int) list.Model {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}

	l := list.New(listItems, JournalDelegate{Theme: theme, Now: time.Now}, width, height)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowFilter(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowPagination(true)

	l.Styles.PaginationStyle = lipgloss.NewStyle().Foreground(theme.Muted)
	l.Styles.ActivePaginationDot = lipgloss.NewStyle().Foreground(theme.Accent)
	l.Styles.InactivePaginationDot = lipgloss.NewStyle().Foreground(theme.Muted)

	return l
}
