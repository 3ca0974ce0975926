package styles

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/sashes/internal/domain/entity"
	"github.com/bnema/sashes/internal/domain/repository"
)

// LayoutRenderer renders sash trees and pane events.
type LayoutRenderer struct {
	theme *Theme
	now   func() time.Time
}

// NewLayoutRenderer creates a new layout renderer with the given theme.
func NewLayoutRenderer(theme *Theme) *LayoutRenderer {
	return &LayoutRenderer{theme: theme, now: time.Now}
}

// RenderTree renders the tree one node per line with its geometry.
func (r *LayoutRenderer) RenderTree(root *entity.Sash) string {
	var sb strings.Builder
	r.renderNode(&sb, root, "", true, true)
	return strings.TrimRight(sb.String(), "\n")
}

func (r *LayoutRenderer) renderNode(sb *strings.Builder, s *entity.Sash, prefix string, last, isRoot bool) {
	branch, childPrefix := "", prefix
	if !isRoot {
		if last {
			branch, childPrefix = "└── ", prefix+"    "
		} else {
			branch, childPrefix = "├── ", prefix+"│   "
		}
	}

	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	icon := IconPane
	idStyle := r.theme.Title
	if s.IsSplit() {
		icon = IconSplit
		idStyle = r.theme.Subtitle
	}

	line := fmt.Sprintf("%s%s%s %s %s %s",
		r.theme.Subtle.Render(prefix),
		r.theme.Subtle.Render(branch),
		iconStyle.Render(icon),
		idStyle.Render(s.ID),
		r.theme.PositionBadge(s.Position),
		r.theme.Subtle.Render(formatRect(s.Rect())),
	)
	if title := s.Store.Title(); title != "" {
		line += " " + r.theme.Highlight.Render(title)
	}
	if minW, minH := s.CalcMinWidth(), s.CalcMinHeight(); minW > 0 || minH > 0 {
		line += " " + r.theme.Subtle.Render(fmt.Sprintf("min %gx%g", minW, minH))
	}
	sb.WriteString(line)
	sb.WriteString("\n")

	for i, child := range s.Children {
		r.renderNode(sb, child, childPrefix, i == len(s.Children)-1, false)
	}
}

func formatRect(rect entity.Rect) string {
	return fmt.Sprintf("%gx%g+%g+%g", rect.Width, rect.Height, rect.Left, rect.Top)
}

// RenderEvent renders one pane event on a single line.
func (r *LayoutRenderer) RenderEvent(event entity.PaneEvent) string {
	typeStyle := r.theme.Highlight
	switch event.Type {
	case entity.EventPaneRemoved:
		typeStyle = r.theme.ErrorStyle
	case entity.EventPaneResized, entity.EventPaneOrderChanged:
		typeStyle = r.theme.WarningStyle
	}

	parts := []string{
		r.theme.Subtle.Render(event.Timestamp),
		typeStyle.Render(fmt.Sprintf("%-20s", event.Type)),
		r.theme.Title.Render(event.Pane.ID),
		r.theme.Subtle.Render(fmt.Sprintf("%dx%d+%d+%d",
			event.Pane.Size.Width, event.Pane.Size.Height,
			event.Pane.Position.X, event.Pane.Position.Y)),
		r.theme.StateBadge(event.Pane.State),
	}
	if event.Pane.GroupID != nil && event.Pane.Index != nil {
		parts = append(parts, r.theme.Subtle.Render(fmt.Sprintf("%s[%d]", *event.Pane.GroupID, *event.Pane.Index)))
	}
	if ctx := event.Context; ctx != nil && ctx.PreviousTitle != nil {
		parts = append(parts, r.theme.Subtle.Render(fmt.Sprintf("was %q", *ctx.PreviousTitle)))
	}
	return strings.Join(parts, " ")
}

// RenderJournal renders journal entries, one per line, prefixed by their
// sequence number.
func (r *LayoutRenderer) RenderJournal(entries []repository.JournalEntry) string {
	if len(entries) == 0 {
		return r.theme.Subtle.Render("  no events recorded")
	}
	now := r.now()
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		age := ""
		if at, err := time.Parse(entity.TimestampLayout, entry.Event.Timestamp); err == nil {
			age = RelativeTime(at, now)
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			r.theme.Subtle.Render(fmt.Sprintf("%6d", entry.Seq)),
			r.theme.Subtle.Render(fmt.Sprintf("%-9s", age)),
			r.RenderEvent(entry.Event),
		))
	}
	return strings.Join(lines, "\n")
}

// RenderError renders an error message.
func (r *LayoutRenderer) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Error)
	return fmt.Sprintf("%s %s", iconStyle.Render(IconX), r.theme.ErrorStyle.Render(err.Error()))
}

// RenderOK renders a success line.
func (r *LayoutRenderer) RenderOK(msg string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf("%s %s", iconStyle.Render(IconCheck), r.theme.Normal.Render(msg))
}
