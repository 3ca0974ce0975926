package model

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sashes/internal/cli/styles"
	"github.com/bnema/sashes/internal/domain/entity"
	"github.com/bnema/sashes/internal/domain/repository"
)

type memoryJournal struct {
	entries []repository.JournalEntry
	filters []repository.JournalFilter
	cleared int
}

func (j *memoryJournal) Record(_ context.Context, event entity.PaneEvent) error {
	j.entries = append(j.entries, repository.JournalEntry{Seq: int64(len(j.entries) + 1), Event: event})
	return nil
}

func (j *memoryJournal) List(_ context.Context, filter repository.JournalFilter) ([]repository.JournalEntry, error) {
	j.filters = append(j.filters, filter)
	var out []repository.JournalEntry
	for _, e := range j.entries {
		if filter.PaneID != "" && e.Event.Pane.ID != filter.PaneID {
			continue
		}
		if filter.Type != "" && e.Event.Type != filter.Type {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (j *memoryJournal) Count(context.Context) (int64, error) {
	return int64(len(j.entries)), nil
}

func (j *memoryJournal) Clear(context.Context) (int64, error) {
	n := int64(len(j.entries))
	j.entries = nil
	j.cleared++
	return n, nil
}

func seededJournal(t *testing.T) *memoryJournal {
	t.Helper()
	j := &memoryJournal{}
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	events := []struct {
		typ   entity.EventType
		pane  string
		title string
	}{
		{entity.EventPaneAdded, "editor", "main.go"},
		{entity.EventPaneAdded, "term", ""},
		{entity.EventPaneResized, "editor", "main.go"},
		{entity.EventPaneTitleChanged, "term", "htop"},
	}
	for i, e := range events {
		payload := entity.PanePayload{ID: e.pane, Title: e.title, State: entity.PaneStateNormal}
		require.NoError(t, j.Record(context.Background(), entity.NewPaneEvent(e.typ, payload, nil, at.Add(time.Duration(i)*time.Second))))
	}
	return j
}

// run feeds cmd's message back into m, the way the Bubble Tea runtime would.
func run(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	return m
}

func press(m tea.Model, keys string) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
}

func loadedJournalModel(t *testing.T, j *memoryJournal, filter repository.JournalFilter) JournalModel {
	t.Helper()
	m := NewJournalModel(context.Background(), styles.NewTheme(), j, filter)
	return run(t, m, m.Init()).(JournalModel)
}

func TestJournalModel_LoadsWithInitialFilter(t *testing.T) {
	j := seededJournal(t)
	m := loadedJournalModel(t, j, repository.JournalFilter{PaneID: "editor", Limit: 50})

	require.Len(t, m.entries, 2)
	assert.Equal(t, repository.JournalFilter{PaneID: "editor", Limit: 50}, j.filters[0])
	assert.Len(t, m.list.Items(), 2)

	view := m.View()
	assert.Contains(t, view, "2/2 events")
	assert.Contains(t, view, "pane editor")
}

func TestJournalModel_SearchNarrowsLoadedEntries(t *testing.T) {
	m := loadedJournalModel(t, seededJournal(t), repository.JournalFilter{})

	next, _ := press(m, "/")
	m = next.(JournalModel)
	require.True(t, m.searchMode)

	m.search.SetValue("htop")
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(JournalModel)

	assert.False(t, m.searchMode)
	assert.Equal(t, "htop", m.query)
	require.Len(t, m.list.Items(), 1)
	item := m.list.Items()[0].(styles.JournalItem)
	assert.Equal(t, entity.EventPaneTitleChanged, item.Event.Type)
	assert.Contains(t, m.View(), "1/4 events")
}

func TestJournalModel_CycleTypeReloads(t *testing.T) {
	j := seededJournal(t)
	m := loadedJournalModel(t, j, repository.JournalFilter{})

	next, cmd := press(m, "t")
	m = run(t, next, cmd).(JournalModel)

	assert.Equal(t, entity.EventPaneAdded, m.filter.Type)
	assert.Equal(t, entity.EventPaneAdded, j.filters[len(j.filters)-1].Type)
	assert.Len(t, m.entries, 2)

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = run(t, next, cmd).(JournalModel)
	assert.Empty(t, m.filter.Type)
	assert.Len(t, m.entries, 4)
}

func TestNextEventType(t *testing.T) {
	types := entity.EventTypes()
	assert.Equal(t, types[0], nextEventType(""))
	assert.Equal(t, types[1], nextEventType(types[0]))
	assert.Equal(t, entity.EventType(""), nextEventType(types[len(types)-1]))
}

func TestJournalModel_PinSelectedPane(t *testing.T) {
	j := seededJournal(t)
	m := loadedJournalModel(t, j, repository.JournalFilter{})

	next, cmd := press(m, "p")
	m = run(t, next, cmd).(JournalModel)

	assert.Equal(t, "editor", m.filter.PaneID)
	for _, e := range m.entries {
		assert.Equal(t, "editor", e.Event.Pane.ID)
	}
}

func TestJournalModel_ClearAsksFirst(t *testing.T) {
	j := seededJournal(t)
	m := loadedJournalModel(t, j, repository.JournalFilter{})

	next, _ := press(m, "C")
	m = next.(JournalModel)
	require.NotNil(t, m.confirm)
	assert.Contains(t, m.View(), "Delete every recorded event?")

	// Enter on the default answer keeps the journal.
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(JournalModel)
	assert.Nil(t, m.confirm)
	assert.Nil(t, cmd)
	assert.Zero(t, j.cleared)

	next, _ = press(m, "C")
	next, _ = press(next, "y")
	next, cmd = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, next, cmd).(JournalModel)
	assert.Equal(t, 1, j.cleared)
	assert.Equal(t, "deleted 4 events", m.status)

	m = run(t, m, m.loadEntries).(JournalModel)
	assert.Empty(t, m.entries)
	assert.Contains(t, m.View(), "no events recorded")
}

func TestJournalModel_WindowSize(t *testing.T) {
	m := loadedJournalModel(t, seededJournal(t), repository.JournalFilter{})

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(JournalModel)
	assert.Equal(t, 120, m.list.Width())
	assert.Equal(t, 32, m.list.Height())
	assert.Len(t, m.list.Items(), 4)
}
