package styles_test

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/bnema/sashes/internal/cli/styles"
	"github.com/bnema/sashes/internal/domain/entity"
	"github.com/bnema/sashes/internal/domain/repository"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestConfirmModel_DefaultsToNo(t *testing.T) {
	m := styles.NewConfirm(styles.NewTheme(), "Delete?")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.Done())
	assert.False(t, m.Result())
}

func TestConfirmModel_Answers(t *testing.T) {
	m := styles.NewConfirm(styles.NewTheme(), "Delete?")
	m, _ = m.Update(keyRunes("y"))
	assert.True(t, m.Yes)
	assert.False(t, m.Done())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.False(t, m.Yes)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.Result())

	m = styles.NewConfirm(styles.NewTheme(), "Delete?")
	m, _ = m.Update(keyRunes("y"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.Canceled)
	assert.False(t, m.Result())
	assert.Contains(t, m.View(), "Delete?")
}

func TestJournalDelegate_Render(t *testing.T) {
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	entry := repository.JournalEntry{
		Seq: 7,
		Event: entity.NewPaneEvent(entity.EventPaneMinimized, entity.PanePayload{
			ID:       "term",
			Title:    "htop",
			Size:     entity.PaneSize{Width: 500, Height: 300},
			Position: entity.PanePosition{X: 500},
			State:    entity.PaneStateMinimized,
		}, nil, at),
	}
	item := styles.NewJournalItem(entry)
	assert.Equal(t, at, item.At)
	assert.Equal(t, "term onpaneminimized htop", item.FilterValue())

	theme := styles.NewTheme()
	l := styles.NewJournalList(theme, []styles.JournalItem{item}, 80, 10)
	delegate := styles.JournalDelegate{Theme: theme, Now: func() time.Time { return at.Add(2 * time.Hour) }}

	var buf bytes.Buffer
	delegate.Render(&buf, l, 0, item)
	out := buf.String()
	assert.Contains(t, out, `term onpaneminimized "htop"`)
	assert.Contains(t, out, "#7  500x300+500+0")
	assert.Contains(t, out, "minimized")
	assert.Contains(t, out, "2h ago")
}
