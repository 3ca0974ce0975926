package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/sashes/internal/infrastructure/config"
)

// ConfigRenderer renders config status messages with styled output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderConfigInfo renders the config file path and the effective values.
func (r *ConfigRenderer) RenderConfigInfo(path string, cfg *config.Config) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	keyStyle := r.theme.Subtle
	valStyle := r.theme.Highlight

	rows := [][2]string{
		{"logging.level", cfg.Logging.Level},
		{"logging.format", cfg.Logging.Format},
		{"layout.default_first_position", cfg.Layout.DefaultFirstPosition},
		{"layout.default_resize_strategy", cfg.Layout.DefaultResizeStrategy},
		{"layout.min_pane_width", fmt.Sprintf("%g", cfg.Layout.MinPaneWidth)},
		{"layout.min_pane_height", fmt.Sprintf("%g", cfg.Layout.MinPaneHeight)},
		{"layout.drop_zone_margin", fmt.Sprintf("%g", cfg.Layout.DropZoneMargin)},
		{"layout.fit_interval_ms", fmt.Sprintf("%d", cfg.Layout.FitIntervalMs)},
		{"events.resize_debounce_ms", fmt.Sprintf("%d", cfg.Events.ResizeDebounceMs)},
		{"events.journal.enabled", fmt.Sprintf("%t", cfg.Events.Journal.Enabled)},
		{"events.journal.path", cfg.Events.Journal.Path},
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n  %s Config %s\n\n", iconStyle.Render(IconConfig), keyStyle.Render(path))
	for _, row := range rows {
		fmt.Fprintf(&sb, "    %s %s\n", keyStyle.Render(fmt.Sprintf("%-32s", row[0])), valStyle.Render(row[1]))
	}
	return sb.String()
}

// RenderSchemaWritten renders the path of a generated schema file.
func (r *ConfigRenderer) RenderSchemaWritten(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf("\n  %s Schema written to %s\n", iconStyle.Render(IconCheck), r.theme.Subtle.Render(path))
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Error)
	return fmt.Sprintf("\n  %s %s\n", iconStyle.Render(IconX), r.theme.ErrorStyle.Render(err.Error()))
}
