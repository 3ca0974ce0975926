package config

import (
	"time"

	"github.com/bnema/sashes/internal/logging"
)

// Config represents the complete configuration for sashes.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" toml:"logging" json:"logging"`
	// Layout holds the defaults applied when building and editing trees.
	Layout LayoutConfig `mapstructure:"layout" yaml:"layout" toml:"layout" json:"layout"`
	Events EventsConfig `mapstructure:"events" yaml:"events" toml:"events" json:"events"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled"`
	Format string `mapstructure:"format" yaml:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
}

// LayoutConfig holds layout engine defaults.
type LayoutConfig struct {
	// DefaultFirstPosition is where the first child of a split goes when
	// neither child names a position.
	DefaultFirstPosition string `mapstructure:"default_first_position" yaml:"default_first_position" toml:"default_first_position" json:"default_first_position" jsonschema:"enum=top,enum=right,enum=bottom,enum=left"`
	DefaultResizeStrategy string `mapstructure:"default_resize_strategy" yaml:"default_resize_strategy" toml:"default_resize_strategy" json:"default_resize_strategy" jsonschema:"enum=classic,enum=natural"`
	// MinPaneWidth and MinPaneHeight are the floors given to panes that
	// declare none, in pixels.
	MinPaneWidth  float64 `mapstructure:"min_pane_width" yaml:"min_pane_width" toml:"min_pane_width" json:"min_pane_width" jsonschema:"minimum=0"`
	MinPaneHeight float64 `mapstructure:"min_pane_height" yaml:"min_pane_height" toml:"min_pane_height" json:"min_pane_height" jsonschema:"minimum=0"`
	// DropZoneMargin is the fraction of a pane taken by the centre drop zone.
	DropZoneMargin float64 `mapstructure:"drop_zone_margin" yaml:"drop_zone_margin" toml:"drop_zone_margin" json:"drop_zone_margin" jsonschema:"exclusiveMinimum=0,exclusiveMaximum=1"`
	FitIntervalMs  int     `mapstructure:"fit_interval_ms" yaml:"fit_interval_ms" toml:"fit_interval_ms" json:"fit_interval_ms" jsonschema:"minimum=1"`
}

// EventsConfig controls lifecycle event delivery.
type EventsConfig struct {
	ResizeDebounceMs int           `mapstructure:"resize_debounce_ms" yaml:"resize_debounce_ms" toml:"resize_debounce_ms" json:"resize_debounce_ms" jsonschema:"minimum=0"`
	Journal          JournalConfig `mapstructure:"journal" yaml:"journal" toml:"journal" json:"journal"`
}

// JournalConfig controls the SQLite event journal.
type JournalConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" toml:"enabled" json:"enabled"`
	// Path defaults to $XDG_DATA_HOME/sashes/journal.db when empty.
	Path string `mapstructure:"path" yaml:"path" toml:"path" json:"path,omitempty"`
}

// FitInterval returns the auto-fit coalescing interval.
func (l LayoutConfig) FitInterval() time.Duration {
	return time.Duration(l.FitIntervalMs) * time.Millisecond
}

// ResizeDebounce returns the trailing delay for resize events.
func (e EventsConfig) ResizeDebounce() time.Duration {
	return time.Duration(e.ResizeDebounceMs) * time.Millisecond
}

// LoggerConfig converts the logging section for logging.New.
func (l LoggingConfig) LoggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(l.Level, cfg.Level)
	if l.Format == logging.FormatJSON {
		cfg.Format = logging.FormatJSON
	}
	return cfg
}
