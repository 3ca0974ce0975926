package model

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/sashes/internal/cli/styles"
)

// ConfirmModel wraps styles.ConfirmModel as a standalone program that
// quits once the user answers.
type ConfirmModel struct {
	dialog styles.ConfirmModel
}

// NewConfirmModel creates a confirmation program for message.
func NewConfirmModel(theme *styles.Theme, message string) ConfirmModel {
	return ConfirmModel{dialog: styles.NewConfirm(theme, message)}
}

// Init implements tea.Model.
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.dialog, cmd = m.dialog.Update(msg)
	if m.dialog.Done() {
		return m, tea.Quit
	}
	return m, cmd
}

// View implements tea.Model.
func (m ConfirmModel) View() string {
	if m.dialog.Done() {
		return ""
	}
	return m.dialog.View() + "\n"
}

// Confirmed reports whether the user answered yes.
func (m ConfirmModel) Confirmed() bool {
	return m.dialog.Result()
}

var _ tea.Model = ConfirmModel{}
