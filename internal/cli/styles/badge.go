package styles

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/sashes/internal/domain/entity"
)

// PositionBadge renders the side of its parent a sash occupies.
func (t *Theme) PositionBadge(p entity.Position) string {
	if p == entity.PositionRoot {
		return t.Badge.Render(string(p))
	}
	return t.BadgeMuted.Render(string(p))
}

// StateBadge renders a pane state. Normal panes get the muted badge.
func (t *Theme) StateBadge(state entity.PaneState) string {
	switch state {
	case entity.PaneStateMinimized:
		return t.StatusBadge(string(state), t.Background, t.Warning)
	case entity.PaneStateMaximized:
		return t.StatusBadge(string(state), t.Background, t.Accent)
	default:
		return t.BadgeMuted.Render(string(state))
	}
}

// StatusBadge renders a status badge with custom colors.
func (t *Theme) StatusBadge(text string, fg, bg lipgloss.Color) string {
	style := lipgloss.NewStyle().
		Foreground(fg).
		Background(bg).
		Padding(0, 1)
	return style.Render(text)
}

// RelativeTime formats tm relative to now as a short human string.
func RelativeTime(tm, now time.Time) string {
	diff := now.Sub(tm)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	case diff < 30*24*time.Hour:
		return fmt.Sprintf("%dw ago", int(diff.Hours()/(24*7)))
	case diff < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(diff.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy ago", int(diff.Hours()/(24*365)))
	}
}
